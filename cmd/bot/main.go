package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/badwolf01/downloader-bot/internal/bot"
	"github.com/badwolf01/downloader-bot/internal/config"
	"github.com/badwolf01/downloader-bot/internal/database"
	"github.com/badwolf01/downloader-bot/internal/database/repository"
	"github.com/badwolf01/downloader-bot/internal/delivery"
	"github.com/badwolf01/downloader-bot/internal/downloader"
	"github.com/badwolf01/downloader-bot/internal/handler"
	"github.com/badwolf01/downloader-bot/internal/lockfile"
	"github.com/badwolf01/downloader-bot/internal/logx"
	"github.com/badwolf01/downloader-bot/internal/metrics"
	"github.com/badwolf01/downloader-bot/internal/session"
	"github.com/badwolf01/downloader-bot/internal/splitter"
	"github.com/badwolf01/downloader-bot/internal/subscription"
)

func main() {
	_ = godotenv.Load()
	logx.Setup(logx.FromEnv("bot"))

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	lock, err := lockfile.Acquire(cfg.LockPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to acquire instance lock")
	}
	defer func() {
		if err := lock.Release(); err != nil {
			log.Warn().Err(err).Msg("failed to remove lock file")
		}
	}()

	if err := os.MkdirAll(cfg.DownloadDir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("failed to create download directory")
	}
	sweepDownloads(cfg.DownloadDir)

	db, err := database.New(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	users := repository.NewUserRepository(db.DB)
	downloads := repository.NewDownloadRepository(db.DB)
	stats := repository.NewStatsRepository(users, downloads)

	m := metrics.New(nil)
	go func() {
		if err := metrics.Serve(cfg.MetricsAddr); err != nil {
			log.Error().Err(err).Msg("metrics listener stopped")
		}
	}()

	b, err := bot.New(cfg.Token)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create bot")
	}

	gate := subscription.NewGate(b.API(), cfg.ChannelUsername)
	cache := session.NewURLCache(session.DefaultTTL)
	sender := delivery.NewSender(b.API(), splitter.New(cfg.MaxFileSize), m)
	pipeline := handler.NewPipeline(
		downloader.NewYtDlp(cfg.DownloadDir),
		downloader.NewSpotify(cfg.DownloadDir),
		sender,
		downloads,
		m,
	)

	b.RegisterHandler(handler.NewStartHandler(cfg, users, stats, gate, m))
	b.RegisterHandler(handler.NewHelpHandler())
	b.RegisterHandler(handler.NewFormatsHandler())
	b.RegisterHandler(handler.NewAdminHandler(cfg))
	b.RegisterHandler(handler.NewStatsHandler(cfg, stats))
	b.RegisterHandler(handler.NewCallbackHandler(cfg, gate, cache, pipeline))
	b.RegisterHandler(handler.NewURLHandler(cfg, gate, cache, downloader.NewFormatProbe(), pipeline))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	b.Run(ctx)
}

// sweepDownloads removes leftovers from a previous run so stale files are
// never mistaken for fresh output.
func sweepDownloads(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Warn().Err(err).Msg("failed to read download directory")
		return
	}
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		if err := os.RemoveAll(path); err != nil {
			log.Warn().Err(err).Str("file", path).Msg("failed to remove leftover")
		}
	}
}

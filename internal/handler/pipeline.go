package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/badwolf01/downloader-bot/internal/database/repository"
	"github.com/badwolf01/downloader-bot/internal/delivery"
	"github.com/badwolf01/downloader-bot/internal/downloader"
	"github.com/badwolf01/downloader-bot/internal/metrics"
	"github.com/badwolf01/downloader-bot/internal/platform"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// Pipeline runs one download end to end: extract, log, split, deliver.
// Shared by the direct-download path and the quality-menu callback.
type Pipeline struct {
	ytdlp     downloader.Downloader
	spotify   downloader.Downloader
	sender    *delivery.Sender
	downloads *repository.DownloadRepository
	m         *metrics.Metrics
}

// NewPipeline wires the download orchestration.
func NewPipeline(ytdlp, spotify downloader.Downloader, sender *delivery.Sender, downloads *repository.DownloadRepository, m *metrics.Metrics) *Pipeline {
	return &Pipeline{ytdlp: ytdlp, spotify: spotify, sender: sender, downloads: downloads, m: m}
}

// Run downloads url at the requested quality and delivers the result to
// chatID, editing statusMsgID with progress along the way. Every failure
// is terminal for this request; there is no retry.
func (p *Pipeline) Run(bot *tgbotapi.BotAPI, chatID int64, statusMsgID int, userID int64, url string, quality platform.Quality) {
	edit := func(text string) {
		if _, err := bot.Send(tgbotapi.NewEditMessageText(chatID, statusMsgID, text)); err != nil {
			log.Debug().Err(err).Msg("failed to edit status message")
		}
	}

	edit("⏳ Downloading and processing...")

	plat := platform.Detect(url)
	dl := p.ytdlp
	if plat == platform.Spotify {
		dl = p.spotify
	}

	start := time.Now()
	files, err := dl.Download(context.Background(), url, quality)
	p.m.DownloadSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		p.m.DownloadsTotal.WithLabelValues(string(plat), "error").Inc()
		log.Error().Err(err).Str("url", url).Msg("download failed")
		edit("❌ Download failed: " + err.Error())
		return
	}
	if len(files) == 0 {
		p.m.DownloadsTotal.WithLabelValues(string(plat), "empty").Inc()
		edit("❌ No content found to download.")
		return
	}
	p.m.DownloadsTotal.WithLabelValues(string(plat), "success").Inc()

	// Ledger failures never block delivery.
	if err := p.downloads.Record(userID, string(plat), url); err != nil {
		log.Error().Err(err).Msg("failed to record download")
	}

	edit(fmt.Sprintf("✅ Download complete! Sending (%d files)...", len(files)))

	sent, attempted := p.sender.Deliver(chatID, files)
	log.Info().Int("sent", sent).Int("attempted", attempted).Str("platform", string(plat)).Msg("delivery finished")

	if sent > 0 {
		edit(fmt.Sprintf("✅ Sent %d file(s)!", sent))
	} else {
		edit("❌ No files were sent.")
	}
}

package handler

import (
	"fmt"
	"strings"

	"github.com/badwolf01/downloader-bot/internal/config"
	"github.com/badwolf01/downloader-bot/internal/downloader"
	"github.com/badwolf01/downloader-bot/internal/platform"
	"github.com/badwolf01/downloader-bot/internal/session"
	"github.com/badwolf01/downloader-bot/internal/subscription"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// URLHandler turns free-text messages into download prompts or direct
// downloads.
type URLHandler struct {
	cfg      *config.Config
	gate     *subscription.Gate
	cache    *session.URLCache
	probe    *downloader.FormatProbe
	pipeline *Pipeline
}

// NewURLHandler creates the URL message handler.
func NewURLHandler(cfg *config.Config, gate *subscription.Gate, cache *session.URLCache, probe *downloader.FormatProbe, pipeline *Pipeline) *URLHandler {
	return &URLHandler{cfg: cfg, gate: gate, cache: cache, probe: probe, pipeline: pipeline}
}

func (h *URLHandler) CanHandle(update tgbotapi.Update) bool {
	return update.Message != nil && !update.Message.IsCommand() && update.Message.Text != ""
}

func (h *URLHandler) Handle(bot *tgbotapi.BotAPI, update tgbotapi.Update) {
	user := update.Message.From
	chatID := update.Message.Chat.ID

	send := func(c tgbotapi.Chattable) {
		if _, err := bot.Send(c); err != nil {
			log.Error().Err(err).Msg("failed to send message")
		}
	}

	if !h.gate.IsSubscribed(user.ID) {
		msg := tgbotapi.NewMessage(chatID, subscribeRequired)
		msg.ReplyMarkup = subscribeKeyboard(h.cfg)
		send(msg)
		return
	}

	text := strings.TrimSpace(update.Message.Text)
	if !platform.IsValidURL(text) {
		send(tgbotapi.NewMessage(chatID, "❌ Please send a valid link."))
		return
	}

	url := platform.CleanURL(text)
	plat := platform.Detect(url)
	playlist := plat == platform.YouTube && platform.IsYouTubePlaylist(text)

	if playlist {
		send(tgbotapi.NewMessage(chatID,
			"🔄 YouTube playlist detected. All videos in the list will be downloaded.\n"+
				"⚠️ This may take a while depending on the number of videos."))
	}

	options := platform.QualityOptions(plat)
	if len(options) == 1 {
		msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("⏳ Downloading from %s...", plat))
		sent, err := bot.Send(msg)
		if err != nil {
			log.Error().Err(err).Msg("failed to send progress message")
			return
		}
		h.pipeline.Run(bot, chatID, sent.MessageID, user.ID, url, options[0].Quality)
		return
	}

	key := h.cache.Put(url)
	labels := h.menuLabels(plat, playlist, url, options)

	var rows [][]tgbotapi.InlineKeyboardButton
	for i, opt := range options {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(labels[i], buildDownloadCallback(plat, opt.Quality, key)),
		))
	}

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("🔍 Choose the download quality from %s:", plat))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	send(msg)
}

// menuLabels annotates the quality buttons with approximate sizes for
// single YouTube videos. Probe failures fall back to the plain labels.
func (h *URLHandler) menuLabels(plat platform.Platform, playlist bool, url string, options []platform.QualityOption) []string {
	labels := make([]string, len(options))
	for i, opt := range options {
		labels[i] = opt.Label
	}

	if h.probe == nil || plat != platform.YouTube || playlist {
		return labels
	}
	sizes, err := h.probe.TierSizes(url)
	if err != nil {
		log.Debug().Err(err).Str("url", url).Msg("format probe failed")
		return labels
	}
	for i, opt := range options {
		if size, ok := sizes[opt.Quality]; ok {
			labels[i] += downloader.SizeLabel(size)
		}
	}
	return labels
}

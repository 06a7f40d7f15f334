package handler

import (
	"strings"

	"github.com/badwolf01/downloader-bot/internal/config"
	"github.com/badwolf01/downloader-bot/internal/session"
	"github.com/badwolf01/downloader-bot/internal/subscription"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// CallbackHandler reacts to inline-keyboard presses: subscription
// verification and quality selections.
type CallbackHandler struct {
	cfg      *config.Config
	gate     *subscription.Gate
	cache    *session.URLCache
	pipeline *Pipeline
}

// NewCallbackHandler creates the callback-query handler.
func NewCallbackHandler(cfg *config.Config, gate *subscription.Gate, cache *session.URLCache, pipeline *Pipeline) *CallbackHandler {
	return &CallbackHandler{cfg: cfg, gate: gate, cache: cache, pipeline: pipeline}
}

func (h *CallbackHandler) CanHandle(update tgbotapi.Update) bool {
	if update.CallbackQuery == nil {
		return false
	}
	data := update.CallbackQuery.Data
	return data == checkSubscriptionCallback || strings.HasPrefix(data, "dl|")
}

func (h *CallbackHandler) Handle(bot *tgbotapi.BotAPI, update tgbotapi.Update) {
	cb := update.CallbackQuery
	if cb.Data == checkSubscriptionCallback {
		h.handleVerify(bot, cb)
		return
	}
	h.handleDownload(bot, cb)
}

func (h *CallbackHandler) handleVerify(bot *tgbotapi.BotAPI, cb *tgbotapi.CallbackQuery) {
	if !h.gate.IsSubscribed(cb.From.ID) {
		alert := tgbotapi.NewCallbackWithAlert(cb.ID, "Your channel membership was not found. Please join first.")
		if _, err := bot.Request(alert); err != nil {
			log.Error().Err(err).Msg("failed to answer callback")
		}
		return
	}

	edit := tgbotapi.NewEditMessageText(cb.Message.Chat.ID, cb.Message.MessageID,
		"✅ Subscription verified!\n\n"+
			"🎬 You can now use the bot.\n"+
			"Send any video or audio link to download it.")
	if _, err := bot.Send(edit); err != nil {
		log.Error().Err(err).Msg("failed to edit verification message")
	}
}

func (h *CallbackHandler) handleDownload(bot *tgbotapi.BotAPI, cb *tgbotapi.CallbackQuery) {
	quality, key, ok := parseDownloadCallback(cb.Data)
	if !ok {
		log.Warn().Str("data", cb.Data).Msg("malformed download callback")
		return
	}

	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID

	// The gate runs again here: the prompt may be old and membership can
	// lapse between menu and button press.
	if !h.gate.IsSubscribed(cb.From.ID) {
		alert := tgbotapi.NewCallbackWithAlert(cb.ID, "You must join the channel first!")
		if _, err := bot.Request(alert); err != nil {
			log.Error().Err(err).Msg("failed to answer callback")
		}
		edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, subscribeRequired, subscribeKeyboard(h.cfg))
		if _, err := bot.Send(edit); err != nil {
			log.Error().Err(err).Msg("failed to edit subscribe prompt")
		}
		return
	}

	url, found := h.cache.Get(key)
	if !found {
		alert := tgbotapi.NewCallbackWithAlert(cb.ID, "Error: link not found. Please send the link again.")
		if _, err := bot.Request(alert); err != nil {
			log.Error().Err(err).Msg("failed to answer callback")
		}
		return
	}

	if _, err := bot.Request(tgbotapi.NewCallback(cb.ID, "Downloading "+string(quality)+"...")); err != nil {
		log.Error().Err(err).Msg("failed to answer callback")
	}

	h.pipeline.Run(bot, chatID, messageID, cb.From.ID, url, quality)
}

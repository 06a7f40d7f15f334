package handler

import (
	"fmt"

	"github.com/badwolf01/downloader-bot/internal/config"
	"github.com/badwolf01/downloader-bot/internal/database/repository"
	"github.com/badwolf01/downloader-bot/internal/metrics"
	"github.com/badwolf01/downloader-bot/internal/subscription"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// StartHandler greets users, records first contact and notifies the admin
// about new users.
type StartHandler struct {
	cfg   *config.Config
	users *repository.UserRepository
	stats *repository.StatsRepository
	gate  *subscription.Gate
	m     *metrics.Metrics
}

// NewStartHandler creates the /start handler.
func NewStartHandler(cfg *config.Config, users *repository.UserRepository, stats *repository.StatsRepository, gate *subscription.Gate, m *metrics.Metrics) *StartHandler {
	return &StartHandler{cfg: cfg, users: users, stats: stats, gate: gate, m: m}
}

func (h *StartHandler) CanHandle(update tgbotapi.Update) bool {
	return update.Message != nil && update.Message.IsCommand() && update.Message.Command() == "start"
}

func (h *StartHandler) Handle(bot *tgbotapi.BotAPI, update tgbotapi.Update) {
	user := update.Message.From
	chatID := update.Message.Chat.ID

	isNew, err := h.users.AddFromTelegram(user)
	if err != nil {
		// A broken ledger must not block the greeting.
		log.Error().Err(err).Int64("user_id", user.ID).Msg("failed to record user")
	}
	if isNew {
		h.m.NewUsersTotal.Inc()
		h.notifyAdmin(bot, user)
	}

	if !h.gate.IsSubscribed(user.ID) {
		msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("👋 Hi %s! 🎉\n\n%s", displayName(user), subscribeRequired))
		msg.ReplyMarkup = subscribeKeyboard(h.cfg)
		if _, err := bot.Send(msg); err != nil {
			log.Error().Err(err).Msg("failed to send subscribe prompt")
		}
		return
	}

	welcome := fmt.Sprintf(
		"👋 Hi %s! 🎉\n\n"+
			"🎬 Send me a link from any platform to download it:\n"+
			"▪️ YouTube\n▪️ Facebook\n▪️ Instagram\n▪️ TikTok\n"+
			"▪️ Twitter (X)\n▪️ SoundCloud\n▪️ Spotify\n▪️ Snapchat\n\n"+
			"🔍 Videos and audio in different qualities.\n"+
			"📚 Playlists and albums are supported.\n\n"+
			"/help - more information",
		displayName(user),
	)
	if _, err := bot.Send(tgbotapi.NewMessage(chatID, welcome)); err != nil {
		log.Error().Err(err).Msg("failed to send welcome")
	}
}

// notifyAdmin sends the new-user notification with quick-contact links.
func (h *StartHandler) notifyAdmin(bot *tgbotapi.BotAPI, user *tgbotapi.User) {
	adminID := h.cfg.AdminID()
	if adminID == 0 {
		return
	}

	overview := h.stats.Overview()

	username := user.UserName
	if username == "" {
		username = "none"
	}
	text := fmt.Sprintf(
		"👤 <b>New user!</b>\n\n"+
			"• <b>Name:</b> %s %s\n"+
			"• <b>Username:</b> @%s\n"+
			"• <b>ID:</b> <code>%d</code>\n\n"+
			"📊 <b>Total users:</b> %d",
		user.FirstName, user.LastName, username, user.ID, overview.TotalUsers,
	)

	var rows [][]tgbotapi.InlineKeyboardButton
	if user.UserName != "" {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("👤 Open profile", "https://t.me/"+user.UserName),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonURL("💬 Message", fmt.Sprintf("tg://user?id=%d", user.ID)),
	))

	msg := tgbotapi.NewMessage(adminID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := bot.Send(msg); err != nil {
		log.Error().Err(err).Msg("failed to notify admin about new user")
	}
}

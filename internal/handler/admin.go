package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/badwolf01/downloader-bot/internal/config"
	"github.com/badwolf01/downloader-bot/internal/database/repository"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// AdminHandler manages the admin identity via /admin.
type AdminHandler struct {
	cfg *config.Config
}

// NewAdminHandler creates the /admin handler.
func NewAdminHandler(cfg *config.Config) *AdminHandler {
	return &AdminHandler{cfg: cfg}
}

func (h *AdminHandler) CanHandle(update tgbotapi.Update) bool {
	return update.Message != nil && update.Message.IsCommand() && update.Message.Command() == "admin"
}

func (h *AdminHandler) Handle(bot *tgbotapi.BotAPI, update tgbotapi.Update) {
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	args := strings.Fields(update.Message.CommandArguments())
	current := h.cfg.AdminID()

	reply := func(text string) {
		if _, err := bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
			log.Error().Err(err).Msg("failed to send admin reply")
		}
	}

	if len(args) == 0 {
		switch {
		case current == 0:
			// Unclaimed bot: first caller becomes the admin.
			if err := h.cfg.SetAdminID(userID); err != nil {
				log.Error().Err(err).Msg("failed to set admin")
				reply("❌ Failed to set the admin.")
				return
			}
			reply("✅ You are now the bot admin! Admin commands are available to you.")
		case current == userID:
			reply("✅ You are the current bot admin.\n\nTo assign a new admin use:\n/admin <user id>")
		default:
			reply("⛔️ You are not the admin. Only the current admin can change settings.")
		}
		return
	}

	if current != 0 && current != userID {
		reply("⛔️ Only the current admin can reassign the admin role.")
		return
	}

	newID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		reply("❌ Invalid user ID.")
		return
	}
	if err := h.cfg.SetAdminID(newID); err != nil {
		log.Error().Err(err).Msg("failed to update admin")
		reply("❌ Failed to update the admin.")
		return
	}
	reply(fmt.Sprintf("✅ User %d is now the bot admin.", newID))
}

// StatsHandler shows usage statistics to the admin via /stats.
type StatsHandler struct {
	cfg   *config.Config
	stats *repository.StatsRepository
}

// NewStatsHandler creates the /stats handler.
func NewStatsHandler(cfg *config.Config, stats *repository.StatsRepository) *StatsHandler {
	return &StatsHandler{cfg: cfg, stats: stats}
}

func (h *StatsHandler) CanHandle(update tgbotapi.Update) bool {
	return update.Message != nil && update.Message.IsCommand() && update.Message.Command() == "stats"
}

func (h *StatsHandler) Handle(bot *tgbotapi.BotAPI, update tgbotapi.Update) {
	chatID := update.Message.Chat.ID

	if update.Message.From.ID != h.cfg.AdminID() {
		if _, err := bot.Send(tgbotapi.NewMessage(chatID, "⛔️ This command is admin-only.")); err != nil {
			log.Error().Err(err).Msg("failed to send stats refusal")
		}
		return
	}

	overview := h.stats.Overview()

	var platforms strings.Builder
	for _, pc := range overview.PlatformStats {
		fmt.Fprintf(&platforms, "• %s: %d\n", pc.Platform, pc.Count)
	}
	if platforms.Len() == 0 {
		platforms.WriteString("• no data yet\n")
	}

	var users strings.Builder
	for _, u := range overview.RecentUsers {
		display := u.FirstName
		if u.Username != "" {
			display = "@" + u.Username
		}
		fmt.Fprintf(&users, "• %s - %d\n", display, u.ID)
	}
	if users.Len() == 0 {
		users.WriteString("• no users yet\n")
	}

	text := fmt.Sprintf(
		"📊 <b>Bot statistics</b>\n\n"+
			"👥 <b>Total users:</b> %d\n"+
			"📥 <b>Total downloads:</b> %d\n\n"+
			"<b>Downloads by platform:</b>\n%s\n"+
			"<b>Recent users:</b>\n%s",
		overview.TotalUsers, overview.TotalDownloads, platforms.String(), users.String(),
	)

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := bot.Send(msg); err != nil {
		log.Error().Err(err).Msg("failed to send stats")
	}
}

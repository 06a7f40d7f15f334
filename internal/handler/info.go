package handler

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

const helpText = "📋 *How to use the bot:*\n\n" +
	"1️⃣ Send a link from any supported platform\n" +
	"2️⃣ Pick a download quality (when available)\n" +
	"3️⃣ Wait for the file to be downloaded and sent\n\n" +
	"*Supported platforms:*\n" +
	"▪️ YouTube - videos and playlists\n" +
	"▪️ Facebook - public videos\n" +
	"▪️ Instagram - posts, stories and reels\n" +
	"▪️ TikTok - videos\n" +
	"▪️ Twitter (X) - video tweets\n" +
	"▪️ SoundCloud - tracks and albums\n" +
	"▪️ Spotify - songs, albums and playlists\n" +
	"▪️ Snapchat - public stories\n\n" +
	"*Notes:*\n" +
	"▪️ Maximum file size: 50 MB\n" +
	"▪️ Larger files are split automatically\n" +
	"▪️ Some protected content cannot be downloaded\n\n" +
	"/start - back to the beginning\n" +
	"/formats - supported download qualities"

const formatsText = "🎞 *Supported download qualities:*\n\n" +
	"*Video:*\n" +
	"▪️ High: 1080p (Full HD)\n" +
	"▪️ Medium: 720p (HD)\n" +
	"▪️ Low: 480p (SD)\n" +
	"▪️ Audio only: MP3\n\n" +
	"*Audio:*\n" +
	"▪️ MP3 at 192kbps\n\n" +
	"*Note:* some qualities may be unavailable depending on the platform and content."

// HelpHandler answers /help.
type HelpHandler struct{}

func NewHelpHandler() *HelpHandler { return &HelpHandler{} }

func (h *HelpHandler) CanHandle(update tgbotapi.Update) bool {
	return update.Message != nil && update.Message.IsCommand() && update.Message.Command() == "help"
}

func (h *HelpHandler) Handle(bot *tgbotapi.BotAPI, update tgbotapi.Update) {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, helpText)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := bot.Send(msg); err != nil {
		log.Error().Err(err).Msg("failed to send help")
	}
}

// FormatsHandler answers /formats.
type FormatsHandler struct{}

func NewFormatsHandler() *FormatsHandler { return &FormatsHandler{} }

func (h *FormatsHandler) CanHandle(update tgbotapi.Update) bool {
	return update.Message != nil && update.Message.IsCommand() && update.Message.Command() == "formats"
}

func (h *FormatsHandler) Handle(bot *tgbotapi.BotAPI, update tgbotapi.Update) {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, formatsText)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := bot.Send(msg); err != nil {
		log.Error().Err(err).Msg("failed to send formats")
	}
}

// Package handler implements the bot's features: commands, URL messages
// and inline-keyboard callbacks.
package handler

import (
	"github.com/badwolf01/downloader-bot/internal/config"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const checkSubscriptionCallback = "check_subscription"

// subscribeKeyboard builds the join-channel prompt keyboard.
func subscribeKeyboard(cfg *config.Config) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("✨ Join the channel ✨", cfg.ChannelLink),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ I joined (verify)", checkSubscriptionCallback),
		),
	)
}

const subscribeRequired = "⚠️ You need to join our channel before using the bot.\n\n" +
	"1️⃣ Tap \"Join the channel\" below\n" +
	"2️⃣ Then come back and tap \"I joined (verify)\"\n\n" +
	"Thanks for the support! 🙏"

func displayName(u *tgbotapi.User) string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.UserName
}

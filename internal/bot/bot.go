// Package bot runs the update loop and dispatches to registered handlers.
package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// Handler is one feature of the bot. The first handler whose CanHandle
// returns true processes the update.
type Handler interface {
	CanHandle(update tgbotapi.Update) bool
	Handle(bot *tgbotapi.BotAPI, update tgbotapi.Update)
}

// Bot wraps the Telegram API client and the handler registry.
type Bot struct {
	api      *tgbotapi.BotAPI
	handlers []Handler
}

// New authorizes against the Telegram API.
func New(token string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Info().Str("username", api.Self.UserName).Msg("bot authorized")

	return &Bot{
		api:      api,
		handlers: make([]Handler, 0),
	}, nil
}

// API exposes the underlying client for wiring the gate and sender.
func (b *Bot) API() *tgbotapi.BotAPI {
	return b.api
}

// RegisterHandler appends a handler to the registry.
func (b *Bot) RegisterHandler(h Handler) {
	b.handlers = append(b.handlers, h)
	log.Info().Str("handler", fmt.Sprintf("%T", h)).Msg("registered handler")
}

// Run polls for updates until ctx is canceled. Updates are handled one at
// a time: a long download blocks the loop, which keeps the pipeline's
// shared state single-owner.
func (b *Bot) Run(ctx context.Context) {
	log.Info().Int("handlers", len(b.handlers)).Msg("starting bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		if update.Message == nil && update.CallbackQuery == nil {
			continue
		}
		if update.Message != nil {
			log.Debug().
				Str("from", update.Message.From.UserName).
				Str("text", update.Message.Text).
				Msg("message received")
		}
		if update.CallbackQuery != nil {
			log.Debug().
				Str("from", update.CallbackQuery.From.UserName).
				Str("data", update.CallbackQuery.Data).
				Msg("callback received")
		}

		handled := false
		for _, handler := range b.handlers {
			if handler.CanHandle(update) {
				handler.Handle(b.api, update)
				handled = true
				break
			}
		}
		if !handled {
			log.Debug().Msg("no handler found for update")
		}
	}

	log.Info().Msg("update loop stopped")
}

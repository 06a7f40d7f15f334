// Package subscription gates downloads behind channel membership.
package subscription

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// MemberChecker is the slice of the Telegram API the gate needs.
type MemberChecker interface {
	GetChatMember(config tgbotapi.GetChatMemberConfig) (tgbotapi.ChatMember, error)
}

// Gate checks whether a user is subscribed to the required channel.
type Gate struct {
	api     MemberChecker
	channel string // username without @
}

// NewGate creates a gate for the given channel username.
func NewGate(api MemberChecker, channel string) *Gate {
	return &Gate{api: api, channel: channel}
}

// IsSubscribed reports channel membership for the user. Any lookup error
// counts as not subscribed — the gate fails closed.
func (g *Gate) IsSubscribed(userID int64) bool {
	member, err := g.api.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			SuperGroupUsername: "@" + g.channel,
			UserID:             userID,
		},
	})
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("subscription check failed")
		return false
	}
	switch member.Status {
	case "member", "administrator", "creator":
		return true
	default:
		return false
	}
}

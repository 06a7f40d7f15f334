package subscription

import (
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type fakeChecker struct {
	status string
	err    error
	asked  tgbotapi.GetChatMemberConfig
}

func (f *fakeChecker) GetChatMember(config tgbotapi.GetChatMemberConfig) (tgbotapi.ChatMember, error) {
	f.asked = config
	if f.err != nil {
		return tgbotapi.ChatMember{}, f.err
	}
	return tgbotapi.ChatMember{Status: f.status}, nil
}

func TestIsSubscribedStatuses(t *testing.T) {
	tests := []struct {
		status   string
		expected bool
	}{
		{"member", true},
		{"administrator", true},
		{"creator", true},
		{"left", false},
		{"kicked", false},
		{"restricted", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			gate := NewGate(&fakeChecker{status: tt.status}, "mychannel")
			if got := gate.IsSubscribed(1); got != tt.expected {
				t.Errorf("IsSubscribed with status %q = %v, want %v", tt.status, got, tt.expected)
			}
		})
	}
}

func TestIsSubscribedFailsClosed(t *testing.T) {
	gate := NewGate(&fakeChecker{err: errors.New("network down")}, "mychannel")
	if gate.IsSubscribed(1) {
		t.Error("lookup failure must never count as subscribed")
	}
}

func TestIsSubscribedQueriesChannel(t *testing.T) {
	f := &fakeChecker{status: "member"}
	gate := NewGate(f, "mychannel")
	gate.IsSubscribed(42)

	if f.asked.SuperGroupUsername != "@mychannel" {
		t.Errorf("queried channel %q, want %q", f.asked.SuperGroupUsername, "@mychannel")
	}
	if f.asked.UserID != 42 {
		t.Errorf("queried user %d, want 42", f.asked.UserID)
	}
}

package delivery

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/badwolf01/downloader-bot/internal/downloader"
	"github.com/badwolf01/downloader-bot/internal/splitter"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// fakeAPI records every send and fails the configured chattable kinds.
type fakeAPI struct {
	sent      []tgbotapi.Chattable
	failAudio bool
	failVideo bool
	failDoc   bool
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	switch c.(type) {
	case tgbotapi.AudioConfig:
		if f.failAudio {
			return tgbotapi.Message{}, errors.New("audio rejected")
		}
	case tgbotapi.VideoConfig:
		if f.failVideo {
			return tgbotapi.Message{}, errors.New("video rejected")
		}
	case tgbotapi.DocumentConfig:
		if f.failDoc {
			return tgbotapi.Message{}, errors.New("document rejected")
		}
	}
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func writeFile(t *testing.T, dir, name string, size int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDeliverSmallVideoUnsplit(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "clip.mp4", 10*1024)

	api := &fakeAPI{}
	s := NewSender(api, splitter.New(50*1024), nil)

	sent, attempted := s.Deliver(1, []downloader.File{{Path: path}})
	if sent != 1 || attempted != 1 {
		t.Errorf("sent/attempted = %d/%d, want 1/1", sent, attempted)
	}
	if len(api.sent) != 1 {
		t.Fatalf("expected 1 send, got %d", len(api.sent))
	}
	if _, ok := api.sent[0].(tgbotapi.VideoConfig); !ok {
		t.Errorf("expected a video send, got %T", api.sent[0])
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("local file should be removed after delivery")
	}
}

func TestDeliverAudioByFlag(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "track.mp3", 1024)

	api := &fakeAPI{}
	s := NewSender(api, splitter.New(50*1024), nil)

	sent, _ := s.Deliver(1, []downloader.File{{Path: path, Audio: true}})
	if sent != 1 {
		t.Fatalf("sent = %d, want 1", sent)
	}
	audio, ok := api.sent[0].(tgbotapi.AudioConfig)
	if !ok {
		t.Fatalf("expected an audio send, got %T", api.sent[0])
	}
	if audio.Performer != performer {
		t.Errorf("performer = %q", audio.Performer)
	}
}

func TestDeliverFallsBackToDocument(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "clip.mp4", 1024)

	api := &fakeAPI{failVideo: true}
	s := NewSender(api, splitter.New(50*1024), nil)

	sent, attempted := s.Deliver(1, []downloader.File{{Path: path}})
	if sent != 1 || attempted != 1 {
		t.Errorf("sent/attempted = %d/%d, want 1/1", sent, attempted)
	}
	if _, ok := api.sent[0].(tgbotapi.DocumentConfig); !ok {
		t.Errorf("expected document fallback, got %T", api.sent[0])
	}
}

func TestDeliverFailureNotice(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "clip.mp4", 1024)

	api := &fakeAPI{failVideo: true, failDoc: true}
	s := NewSender(api, splitter.New(50*1024), nil)

	sent, attempted := s.Deliver(1, []downloader.File{{Path: path}})
	if sent != 0 || attempted != 1 {
		t.Errorf("sent/attempted = %d/%d, want 0/1", sent, attempted)
	}
	msg, ok := api.sent[len(api.sent)-1].(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("expected a plain-text notice, got %T", api.sent[len(api.sent)-1])
	}
	if !strings.Contains(msg.Text, "Failed to send file") {
		t.Errorf("unexpected notice text %q", msg.Text)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("local file should be removed even after a failed send")
	}
}

func TestDeliverFailureDoesNotAbortBatch(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.mp3", 1024)
	good := writeFile(t, dir, "good.mp4", 1024)

	api := &fakeAPI{failAudio: true, failDoc: true}
	s := NewSender(api, splitter.New(50*1024), nil)

	sent, attempted := s.Deliver(1, []downloader.File{
		{Path: bad, Audio: true},
		{Path: good},
	})
	if attempted != 2 {
		t.Errorf("attempted = %d, want 2", attempted)
	}
	if sent != 1 {
		t.Errorf("sent = %d, want 1 (the video after the audio failure)", sent)
	}
}

func TestDeliverSplitsOversizedAudio(t *testing.T) {
	dir := t.TempDir()
	// 150KB file against a 50KB threshold: three parts, like an oversized
	// download against the real 50MB limit.
	path := writeFile(t, dir, "long.mp3", 150*1024)

	api := &fakeAPI{}
	s := NewSender(api, splitter.New(50*1024), nil)

	sent, attempted := s.Deliver(1, []downloader.File{{Path: path, Audio: true}})
	if sent != 3 || attempted != 3 {
		t.Errorf("sent/attempted = %d/%d, want 3/3", sent, attempted)
	}

	first, ok := api.sent[0].(tgbotapi.AudioConfig)
	if !ok {
		t.Fatalf("expected audio chunk sends, got %T", api.sent[0])
	}
	if !strings.HasPrefix(first.Caption, "part 1/3") {
		t.Errorf("chunk caption = %q", first.Caption)
	}

	leftovers, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(leftovers) != 0 {
		t.Errorf("expected no local files after delivery, found %d", len(leftovers))
	}
}

func TestDeliverSkipsVanishedFile(t *testing.T) {
	api := &fakeAPI{}
	s := NewSender(api, splitter.New(50*1024), nil)

	sent, attempted := s.Deliver(1, []downloader.File{{Path: filepath.Join(t.TempDir(), "gone.mp4")}})
	if sent != 0 || attempted != 0 {
		t.Errorf("sent/attempted = %d/%d, want 0/0", sent, attempted)
	}
	if len(api.sent) != 0 {
		t.Errorf("nothing should be sent for a vanished file, got %d sends", len(api.sent))
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abc", 5); got != "abc" {
		t.Errorf("truncate short = %q", got)
	}
	long := strings.Repeat("x", 2000)
	if got := truncate(long, captionLimit); len(got) != captionLimit {
		t.Errorf("truncate long = %d chars, want %d", len(got), captionLimit)
	}
}

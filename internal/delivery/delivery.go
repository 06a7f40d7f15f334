// Package delivery sends downloaded files to a chat, splitting oversized
// ones first and always removing local copies afterwards.
package delivery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/badwolf01/downloader-bot/internal/downloader"
	"github.com/badwolf01/downloader-bot/internal/metrics"
	"github.com/badwolf01/downloader-bot/internal/splitter"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

const (
	captionLimit = 1024
	titleLimit   = 64
	performer    = "Downloaded by Downloader Bot"
)

var videoSendExts = map[string]bool{".mp4": true, ".avi": true, ".mov": true, ".mkv": true}

// MediaSender is the slice of the Telegram API delivery needs.
type MediaSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Sender delivers files to chats.
type Sender struct {
	api   MediaSender
	split *splitter.Splitter
	m     *metrics.Metrics
}

// NewSender creates a Sender using split for oversized files.
func NewSender(api MediaSender, split *splitter.Splitter, m *metrics.Metrics) *Sender {
	return &Sender{api: api, split: split, m: m}
}

// Deliver sends every file to the chat and reports how many went through.
// A failure on one file never aborts the rest; local copies are removed
// whether or not their send succeeded.
func (s *Sender) Deliver(chatID int64, files []downloader.File) (sent, attempted int) {
	for _, f := range files {
		info, err := os.Stat(f.Path)
		if err != nil {
			log.Warn().Str("file", f.Path).Msg("downloaded file vanished before send")
			continue
		}
		name := filepath.Base(f.Path)

		if info.Size() > s.split.MaxSize {
			chunks, err := s.split.Split(f.Path)
			if err != nil {
				log.Error().Err(err).Str("file", f.Path).Msg("failed to split file")
				os.Remove(f.Path)
				attempted++
				continue
			}
			if s.m != nil && len(chunks) > 1 {
				s.m.ChunksTotal.Add(float64(len(chunks)))
			}
			for i, chunk := range chunks {
				attempted++
				caption := fmt.Sprintf("part %d/%d — %s", i+1, len(chunks), name)
				if s.sendFile(chatID, chunk, f.Audio, caption) {
					sent++
				}
				os.Remove(chunk)
			}
			os.Remove(f.Path)
			continue
		}

		attempted++
		if s.sendFile(chatID, f.Path, f.Audio, name) {
			sent++
		}
		os.Remove(f.Path)
	}

	if s.m != nil {
		s.m.FilesSentTotal.Add(float64(sent))
	}
	return sent, attempted
}

// sendFile picks a send strategy by type, falling back to a generic
// document and finally to a plain-text failure notice.
func (s *Sender) sendFile(chatID int64, path string, audio bool, caption string) bool {
	switch {
	case audio:
		msg := tgbotapi.NewAudio(chatID, tgbotapi.FilePath(path))
		msg.Caption = truncate(caption, captionLimit)
		msg.Title = truncate(strings.TrimSuffix(caption, filepath.Ext(caption)), titleLimit)
		msg.Performer = performer
		_, err := s.api.Send(msg)
		if err == nil {
			return true
		}
		log.Error().Err(err).Str("file", path).Msg("audio send failed, trying document")
	case videoSendExts[strings.ToLower(filepath.Ext(path))]:
		msg := tgbotapi.NewVideo(chatID, tgbotapi.FilePath(path))
		msg.Caption = truncate(caption, captionLimit)
		_, err := s.api.Send(msg)
		if err == nil {
			return true
		}
		log.Error().Err(err).Str("file", path).Msg("video send failed, trying document")
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(path))
	doc.Caption = truncate(caption, captionLimit)
	_, err := s.api.Send(doc)
	if err == nil {
		return true
	}
	log.Error().Err(err).Str("file", path).Msg("document send failed")

	notice := tgbotapi.NewMessage(chatID, "❌ Failed to send file: "+caption)
	if _, err := s.api.Send(notice); err != nil {
		log.Error().Err(err).Msg("failed to send failure notice")
	}
	return false
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}

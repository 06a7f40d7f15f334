package handler

import (
	"testing"

	"github.com/badwolf01/downloader-bot/internal/platform"
	"github.com/badwolf01/downloader-bot/internal/session"
)

func TestDownloadCallbackRoundTrip(t *testing.T) {
	cache := session.NewURLCache(0)
	url := "https://youtube.com/watch?v=abc"
	key := cache.Put(url)

	data := buildDownloadCallback(platform.YouTube, platform.QualityMedium, key)
	if data != "dl|You|medium|"+key {
		t.Errorf("unexpected payload %q", data)
	}
	if len(data) > 64 {
		t.Errorf("payload %d bytes exceeds the Telegram callback-data limit", len(data))
	}

	quality, parsedKey, ok := parseDownloadCallback(data)
	if !ok {
		t.Fatal("failed to parse payload")
	}
	if quality != platform.QualityMedium {
		t.Errorf("quality = %q, want %q", quality, platform.QualityMedium)
	}

	got, found := cache.Get(parsedKey)
	if !found {
		t.Fatal("URL not found under parsed key")
	}
	if got != url {
		t.Errorf("resolved URL %q, want %q", got, url)
	}
}

func TestParseDownloadCallbackRejectsGarbage(t *testing.T) {
	tests := []string{
		"",
		"check_subscription",
		"dl|You|medium",
		"dl|You|medium|hash|extra",
		"xx|You|medium|hash",
	}
	for _, data := range tests {
		if _, _, ok := parseDownloadCallback(data); ok {
			t.Errorf("parseDownloadCallback(%q) accepted malformed payload", data)
		}
	}
}

package handler

import (
	"fmt"
	"strings"

	"github.com/badwolf01/downloader-bot/internal/platform"
)

// Callback payloads are pipe-delimited so they stay well under Telegram's
// 64-byte callback-data limit: dl|<plat3>|<quality>|<url key>.

func buildDownloadCallback(p platform.Platform, q platform.Quality, key string) string {
	return fmt.Sprintf("dl|%s|%s|%s", p.Code(), q, key)
}

// parseDownloadCallback splits a dl| payload into quality tag and URL key.
// The platform code is display-only; the real platform is re-detected from
// the resolved URL.
func parseDownloadCallback(data string) (quality platform.Quality, key string, ok bool) {
	parts := strings.Split(data, "|")
	if len(parts) != 4 || parts[0] != "dl" {
		return "", "", false
	}
	return platform.Quality(parts[2]), parts[3], true
}

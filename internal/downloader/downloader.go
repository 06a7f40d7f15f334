package downloader

import (
	"context"

	"github.com/badwolf01/downloader-bot/internal/platform"
)

// File is one produced media file and whether it should be sent as audio.
type File struct {
	Path  string
	Audio bool
}

// Downloader fetches media from a URL at the requested quality tier.
type Downloader interface {
	Download(ctx context.Context, url string, quality platform.Quality) ([]File, error)
}

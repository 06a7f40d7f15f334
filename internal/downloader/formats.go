package downloader

import (
	"fmt"
	"strings"

	"github.com/badwolf01/downloader-bot/internal/platform"
	youtube "github.com/kkdai/youtube/v2"
)

// FormatProbe inspects a YouTube video's available formats so the quality
// menu can show approximate sizes. Downloads themselves still go through
// yt-dlp; this is a cheap metadata query.
type FormatProbe struct {
	client youtube.Client
}

// NewFormatProbe creates a probe with a default client.
func NewFormatProbe() *FormatProbe {
	return &FormatProbe{client: youtube.Client{}}
}

// TierSizes returns the approximate download size for each video quality
// tier of a single YouTube video. Tiers with no matching format are absent
// from the map.
func (p *FormatProbe) TierSizes(url string) (map[platform.Quality]int64, error) {
	video, err := p.client.GetVideo(url)
	if err != nil {
		return nil, fmt.Errorf("failed to get video info: %w", err)
	}

	formats := video.Formats.WithAudioChannels()
	if len(formats) == 0 {
		formats = video.Formats
	}

	sizes := make(map[platform.Quality]int64)
	heights := make(map[platform.Quality]int)
	for _, f := range formats {
		if !strings.Contains(f.MimeType, "video/mp4") || f.Height == 0 || f.ContentLength == 0 {
			continue
		}
		tier, ok := tierForHeight(f.Height)
		if !ok {
			continue
		}
		// Keep the tallest format under each tier's ceiling; that is what
		// the "height<=N" download expression would pick.
		if f.Height > heights[tier] {
			heights[tier] = f.Height
			sizes[tier] = f.ContentLength
		}
	}
	return sizes, nil
}

func tierForHeight(h int) (platform.Quality, bool) {
	switch {
	case h <= 480:
		return platform.QualityLow, true
	case h <= 720:
		return platform.QualityMedium, true
	case h <= 1080:
		return platform.QualityHigh, true
	default:
		return "", false
	}
}

// SizeLabel renders a human size suffix for menu buttons, like the
// " (~12MB)" annotations on the quality keyboard. Empty for unknown sizes.
func SizeLabel(size int64) string {
	if size <= 0 {
		return ""
	}
	if mb := size / (1024 * 1024); mb > 0 {
		return fmt.Sprintf(" (~%dMB)", mb)
	}
	return fmt.Sprintf(" (~%dKB)", size/1024)
}

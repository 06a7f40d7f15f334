package platform

import (
	"regexp"
	"strings"
)

// Platform is a named media source detected from a URL.
type Platform string

const (
	Spotify    Platform = "Spotify"
	YouTube    Platform = "YouTube"
	Facebook   Platform = "Facebook"
	Instagram  Platform = "Instagram"
	TikTok     Platform = "TikTok"
	SoundCloud Platform = "SoundCloud"
	Twitter    Platform = "Twitter"
	Snapchat   Platform = "Snapchat"
	Vimeo      Platform = "Vimeo"
	Reddit     Platform = "Reddit"
	Twitch     Platform = "Twitch"
	Unknown    Platform = "Unknown"
)

// Quality is a named download preference mapped to a concrete
// format-selection expression by the downloader.
type Quality string

const (
	QualityHigh   Quality = "high"
	QualityMedium Quality = "medium"
	QualityLow    Quality = "low"
	QualityAudio  Quality = "audio"
	QualityBest   Quality = "best"
)

// detection order matters: spotify before youtube etc. mirrors the
// substring priority the bot has always used.
var detections = []struct {
	subs []string
	p    Platform
}{
	{[]string{"spotify.com"}, Spotify},
	{[]string{"youtube.com", "youtu.be"}, YouTube},
	{[]string{"facebook.com", "fb.com"}, Facebook},
	{[]string{"instagram.com"}, Instagram},
	{[]string{"tiktok.com"}, TikTok},
	{[]string{"soundcloud.com"}, SoundCloud},
	{[]string{"twitter.com", "x.com"}, Twitter},
	{[]string{"snapchat.com"}, Snapchat},
	{[]string{"vimeo.com"}, Vimeo},
	{[]string{"reddit.com"}, Reddit},
	{[]string{"twitch.tv"}, Twitch},
}

// Detect maps a URL to its platform by first matching substring.
// Unrecognized URLs fall through to Unknown, never an error.
func Detect(url string) Platform {
	u := strings.ToLower(url)
	for _, d := range detections {
		for _, s := range d.subs {
			if strings.Contains(u, s) {
				return d.p
			}
		}
	}
	return Unknown
}

var urlPattern = regexp.MustCompile(`^https?://\S+$`)

// IsValidURL reports whether text looks like a downloadable http(s) URL.
func IsValidURL(text string) bool {
	return urlPattern.MatchString(text)
}

// CleanURL strips the query string and fragment. Idempotent.
func CleanURL(url string) string {
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		return url[:i]
	}
	return url
}

// IsYouTubePlaylist reports whether the URL points at a playlist rather
// than a single video.
func IsYouTubePlaylist(url string) bool {
	u := strings.ToLower(url)
	return strings.Contains(u, "youtube.com/playlist") || strings.Contains(u, "list=")
}

// QualityOption is one entry of the quality-selection menu.
type QualityOption struct {
	Quality Quality
	Label   string
}

// QualityOptions returns the menu shown for a platform, in display order.
func QualityOptions(p Platform) []QualityOption {
	switch p {
	case YouTube, Facebook, Vimeo:
		return []QualityOption{
			{QualityHigh, "High Quality (1080p)"},
			{QualityMedium, "Medium Quality (720p)"},
			{QualityLow, "Low Quality (480p)"},
			{QualityAudio, "Audio Only (MP3)"},
		}
	case Instagram, TikTok, Twitter:
		return []QualityOption{
			{QualityBest, "Best Quality"},
			{QualityAudio, "Audio Only (MP3)"},
		}
	case SoundCloud, Spotify:
		return []QualityOption{
			{QualityBest, "Best Quality Audio"},
		}
	default:
		return []QualityOption{
			{QualityBest, "Best Quality"},
			{QualityAudio, "Audio Only (MP3)"},
		}
	}
}

// Code returns the truncated platform tag used inside callback payloads.
func (p Platform) Code() string {
	s := string(p)
	if len(s) > 3 {
		return s[:3]
	}
	return s
}

package platform

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://open.spotify.com/track/abc", Spotify},
		{"https://www.youtube.com/watch?v=abc", YouTube},
		{"https://youtu.be/abc", YouTube},
		{"https://www.facebook.com/watch/?v=1", Facebook},
		{"https://fb.com/video/1", Facebook},
		{"https://www.instagram.com/reel/abc/", Instagram},
		{"https://www.tiktok.com/@user/video/1", TikTok},
		{"https://soundcloud.com/artist/track", SoundCloud},
		{"https://twitter.com/user/status/1", Twitter},
		{"https://x.com/user/status/1", Twitter},
		{"https://www.snapchat.com/add/user", Snapchat},
		{"https://vimeo.com/123", Vimeo},
		{"https://www.reddit.com/r/videos/abc", Reddit},
		{"https://www.twitch.tv/streamer", Twitch},
		{"https://example.com/video.mp4", Unknown},
		{"https://YOUTUBE.com/watch?v=abc", YouTube},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := Detect(tt.url); got != tt.expected {
				t.Errorf("Detect(%q) = %q, want %q", tt.url, got, tt.expected)
			}
		})
	}
}

func TestIsValidURL(t *testing.T) {
	tests := []struct {
		text     string
		expected bool
	}{
		{"https://youtube.com/watch?v=abc", true},
		{"http://example.com", true},
		{"ftp://example.com", false},
		{"just some text", false},
		{"https://has space.com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := IsValidURL(tt.text); got != tt.expected {
				t.Errorf("IsValidURL(%q) = %v, want %v", tt.text, got, tt.expected)
			}
		})
	}
}

func TestCleanURL(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"https://youtube.com/watch?v=abc&t=10", "https://youtube.com/watch"},
		{"https://example.com/page#section", "https://example.com/page"},
		{"https://example.com/page", "https://example.com/page"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := CleanURL(tt.url); got != tt.expected {
				t.Errorf("CleanURL(%q) = %q, want %q", tt.url, got, tt.expected)
			}
		})
	}
}

func TestCleanURLIdempotent(t *testing.T) {
	urls := []string{
		"https://youtube.com/watch?v=abc",
		"https://example.com/page#frag",
		"https://example.com/plain",
	}
	for _, url := range urls {
		once := CleanURL(url)
		twice := CleanURL(once)
		if once != twice {
			t.Errorf("CleanURL not idempotent for %q: %q != %q", url, once, twice)
		}
	}
}

func TestIsYouTubePlaylist(t *testing.T) {
	tests := []struct {
		url      string
		expected bool
	}{
		{"https://www.youtube.com/playlist?list=PLabc", true},
		{"https://www.youtube.com/watch?v=abc&list=PLabc", true},
		{"https://www.youtube.com/watch?v=abc", false},
	}

	for _, tt := range tests {
		if got := IsYouTubePlaylist(tt.url); got != tt.expected {
			t.Errorf("IsYouTubePlaylist(%q) = %v, want %v", tt.url, got, tt.expected)
		}
	}
}

func TestQualityOptions(t *testing.T) {
	tests := []struct {
		platform Platform
		count    int
		first    Quality
	}{
		{YouTube, 4, QualityHigh},
		{Facebook, 4, QualityHigh},
		{Vimeo, 4, QualityHigh},
		{Instagram, 2, QualityBest},
		{TikTok, 2, QualityBest},
		{Twitter, 2, QualityBest},
		{SoundCloud, 1, QualityBest},
		{Spotify, 1, QualityBest},
		{Unknown, 2, QualityBest},
		{Reddit, 2, QualityBest},
	}

	for _, tt := range tests {
		t.Run(string(tt.platform), func(t *testing.T) {
			opts := QualityOptions(tt.platform)
			if len(opts) != tt.count {
				t.Errorf("QualityOptions(%q) has %d options, want %d", tt.platform, len(opts), tt.count)
			}
			if opts[0].Quality != tt.first {
				t.Errorf("first option = %q, want %q", opts[0].Quality, tt.first)
			}
			for _, opt := range opts {
				if opt.Label == "" {
					t.Errorf("option %q has empty label", opt.Quality)
				}
			}
		})
	}
}

func TestPlatformCode(t *testing.T) {
	tests := []struct {
		platform Platform
		expected string
	}{
		{YouTube, "You"},
		{TikTok, "Tik"},
		{Spotify, "Spo"},
	}
	for _, tt := range tests {
		if got := tt.platform.Code(); got != tt.expected {
			t.Errorf("%q.Code() = %q, want %q", tt.platform, got, tt.expected)
		}
	}
}

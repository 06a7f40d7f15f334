package downloader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/badwolf01/downloader-bot/internal/platform"
	"github.com/rs/zerolog/log"
)

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) " +
	"Chrome/121.0.0.0 Safari/537.36"

var mediaExts = map[string]bool{
	".mp4": true, ".mkv": true, ".mp3": true,
	".m4a": true, ".wav": true, ".webm": true,
}

var audioOnlyExts = map[string]bool{".mp3": true, ".m4a": true, ".wav": true}

// YtDlp invokes the yt-dlp binary for every platform except Spotify.
type YtDlp struct {
	Path    string
	Dir     string // working directory downloads land in
	Timeout time.Duration
}

// NewYtDlp returns an invoker writing into dir.
func NewYtDlp(dir string) *YtDlp {
	return &YtDlp{
		Path:    "yt-dlp",
		Dir:     dir,
		Timeout: 10 * time.Minute,
	}
}

// Download runs yt-dlp and resolves the files it produced.
func (d *YtDlp) Download(ctx context.Context, url string, quality platform.Quality) ([]File, error) {
	p := platform.Detect(url)
	isAudio := quality == platform.QualityAudio || p == platform.SoundCloud || p == platform.Spotify

	args := d.buildArgs(url, quality, p, isAudio)
	log.Info().Str("url", url).Str("quality", string(quality)).Strs("args", args).Msg("starting yt-dlp")

	ctx, cancel := context.WithTimeout(ctx, d.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, d.Path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := lastLine(stderr.String())
		return nil, fmt.Errorf("yt-dlp failed: %w: %s", err, msg)
	}

	var info ytdlpInfo
	if err := json.Unmarshal(stdout.Bytes(), &info); err != nil {
		return nil, fmt.Errorf("failed to parse yt-dlp output: %w", err)
	}

	entries := info.Entries
	if len(entries) == 0 {
		entries = []ytdlpInfo{info}
		log.Info().Msg("found single item")
	} else {
		log.Info().Int("items", len(entries)).Msg("found playlist")
	}

	var files []File
	for _, entry := range entries {
		path := d.resolveFile(entry, isAudio)
		if path == "" {
			continue
		}
		files = append(files, File{Path: path, Audio: isAudio || audioOnlyExts[strings.ToLower(filepath.Ext(path))]})
	}

	// Last resort: nothing resolved through metadata, scan for any media
	// files left in the working directory.
	if len(files) == 0 {
		files = d.scanDir(isAudio)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("yt-dlp produced no usable output for %s", url)
	}
	return files, nil
}

// buildArgs assembles the yt-dlp command line for a URL and quality tier.
func (d *YtDlp) buildArgs(url string, quality platform.Quality, p platform.Platform, isAudio bool) []string {
	args := []string{
		"-J", "--no-simulate",
		"-o", filepath.Join(d.Dir, "%(title)s.%(ext)s"),
		"--socket-timeout", "120",
		"--no-check-certificates",
		"--user-agent", browserUserAgent,
		"--add-header", "Accept:text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
		"--add-header", "Accept-Language:en-US,en;q=0.5",
		"--add-header", "Upgrade-Insecure-Requests:1",
		"--add-header", "Sec-Fetch-Dest:document",
		"--add-header", "Sec-Fetch-Mode:navigate",
		"--add-header", "Sec-Fetch-Site:cross-site",
	}

	// TikTok blocks default clients without a referer and session cookies.
	if p == platform.TikTok {
		args = append(args,
			"--add-header", "Referer:https://www.tiktok.com/",
			"--add-header", "Cookie:tt_webid_v2=randomhash; tt_webid=randomhash; ttwid=randomhash;",
		)
	}

	if isAudio {
		args = append(args,
			"-f", "bestaudio/best",
			"-x", "--audio-format", "mp3", "--audio-quality", "192K",
		)
	} else {
		args = append(args,
			"-f", formatExpr(quality),
			"--merge-output-format", "mp4",
		)
	}

	return append(args, url)
}

// formatExpr maps a quality tier to a yt-dlp format-selection expression.
func formatExpr(quality platform.Quality) string {
	switch quality {
	case platform.QualityHigh:
		return "bestvideo[height<=1080]+bestaudio/best[height<=1080]/best"
	case platform.QualityMedium:
		return "bestvideo[height<=720]+bestaudio/best[height<=720]/best"
	case platform.QualityLow:
		return "bestvideo[height<=480]+bestaudio/best[height<=480]/best"
	default:
		return "bestvideo+bestaudio/best"
	}
}

type ytdlpInfo struct {
	ID                 string          `json:"id"`
	Title              string          `json:"title"`
	Ext                string          `json:"ext"`
	Filename           string          `json:"filename"`
	Entries            []ytdlpInfo     `json:"entries"`
	RequestedDownloads []requestedFile `json:"requested_downloads"`
}

type requestedFile struct {
	Filepath string `json:"filepath"`
}

// resolveFile locates the file an entry produced. Three strategies, in
// order: the path yt-dlp reported, a fuzzy title match in the working
// directory, nothing (the caller falls back to a directory scan).
func (d *YtDlp) resolveFile(entry ytdlpInfo, isAudio bool) string {
	var path string
	for _, rd := range entry.RequestedDownloads {
		if rd.Filepath != "" {
			path = rd.Filepath
			break
		}
	}
	if path == "" && entry.Filename != "" {
		path = entry.Filename
	}

	if path == "" || !exists(path) {
		path = d.matchByTitle(entry.Title)
	}
	if path == "" {
		return ""
	}

	// Audio post-processing replaces the container: prefer the mp3 sibling
	// when the reported name still carries the source extension.
	if isAudio && !strings.HasSuffix(strings.ToLower(path), ".mp3") {
		mp3 := strings.TrimSuffix(path, filepath.Ext(path)) + ".mp3"
		if exists(mp3) {
			path = mp3
		}
	}

	if !exists(path) {
		return ""
	}
	log.Info().Str("file", path).Msg("resolved downloaded file")
	return path
}

// matchByTitle finds a file in the working directory whose name contains
// the entry title.
func (d *YtDlp) matchByTitle(title string) string {
	if title == "" {
		return ""
	}
	names, err := os.ReadDir(d.Dir)
	if err != nil {
		return ""
	}
	lower := strings.ToLower(title)
	for _, e := range names {
		if e.IsDir() {
			continue
		}
		if strings.Contains(strings.ToLower(e.Name()), lower) {
			return filepath.Join(d.Dir, e.Name())
		}
	}
	return ""
}

// scanDir collects every media file in the working directory.
func (d *YtDlp) scanDir(isAudio bool) []File {
	names, err := os.ReadDir(d.Dir)
	if err != nil {
		return nil
	}
	var files []File
	for _, e := range names {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if !mediaExts[ext] {
			continue
		}
		path := filepath.Join(d.Dir, e.Name())
		files = append(files, File{Path: path, Audio: isAudio || audioOnlyExts[ext]})
		log.Info().Str("file", path).Msg("found media file in directory scan")
	}
	return files
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) == 0 {
		return ""
	}
	return strings.TrimSpace(lines[len(lines)-1])
}

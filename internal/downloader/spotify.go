package downloader

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/badwolf01/downloader-bot/internal/platform"
	"github.com/rs/zerolog/log"
)

// Spotify shells out to spotdl, which has no structured output; produced
// tracks are discovered by diffing the working directory.
type Spotify struct {
	Path    string
	Dir     string
	Timeout time.Duration
}

// NewSpotify returns a spotdl invoker writing into dir.
func NewSpotify(dir string) *Spotify {
	return &Spotify{
		Path:    "spotdl",
		Dir:     dir,
		Timeout: 10 * time.Minute,
	}
}

// Download fetches Spotify tracks. The quality tier is ignored: spotdl
// always produces its best audio.
func (s *Spotify) Download(ctx context.Context, url string, _ platform.Quality) ([]File, error) {
	before := s.snapshot()

	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, s.Path, url, "--output", s.Dir)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	log.Info().Str("url", url).Msg("starting spotdl")
	if err := cmd.Run(); err != nil {
		log.Error().Err(err).Str("stderr", stderr.String()).Msg("spotdl failed")
		return nil, fmt.Errorf("spotdl failed: %w: %s", err, lastLine(stderr.String()))
	}

	var files []File
	names, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read download directory: %w", err)
	}
	for _, e := range names {
		if e.IsDir() || before[e.Name()] {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".mp3" || ext == ".m4a" {
			files = append(files, File{Path: filepath.Join(s.Dir, e.Name()), Audio: true})
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("spotdl produced no audio files for %s", url)
	}
	return files, nil
}

// snapshot records the files already present so only new tracks are picked up.
func (s *Spotify) snapshot() map[string]bool {
	seen := make(map[string]bool)
	names, err := os.ReadDir(s.Dir)
	if err != nil {
		return seen
	}
	for _, e := range names {
		seen[e.Name()] = true
	}
	return seen
}

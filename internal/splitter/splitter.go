// Package splitter cuts oversized downloads into transport-sized pieces.
// Video files are segmented by time with ffmpeg (stream copy, no
// re-encode); audio files are sliced by byte offset.
package splitter

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

var videoExts = map[string]bool{".mp4": true, ".avi": true, ".mkv": true, ".mov": true}
var audioExts = map[string]bool{".mp3": true, ".m4a": true, ".wav": true}

// Splitter partitions files larger than MaxSize. FFmpegPath and
// FFprobePath default to the binaries on PATH.
type Splitter struct {
	MaxSize     int64
	FFmpegPath  string
	FFprobePath string
}

// New returns a Splitter with the given size threshold.
func New(maxSize int64) *Splitter {
	return &Splitter{
		MaxSize:     maxSize,
		FFmpegPath:  "ffmpeg",
		FFprobePath: "ffprobe",
	}
}

// Split returns the file itself when it fits under the threshold, or the
// ordered list of produced parts otherwise. Unrecognized oversized
// extensions are returned unchanged and left to the delivery layer.
func (s *Splitter) Split(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.Size() <= s.MaxSize {
		return []string{path}, nil
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case videoExts[ext]:
		return s.splitVideo(path, info.Size())
	case audioExts[ext]:
		return s.splitBinary(path, info.Size())
	default:
		log.Warn().Str("file", path).Str("ext", ext).Msg("oversized file with unsplittable extension")
		return []string{path}, nil
	}
}

// splitVideo cuts sequential segments sized so each lands under MaxSize.
func (s *Splitter) splitVideo(path string, size int64) ([]string, error) {
	duration, err := s.probeDuration(path)
	if err != nil {
		return nil, err
	}

	seg := SegmentSeconds(s.MaxSize, size, duration)
	base := strings.TrimSuffix(path, filepath.Ext(path))
	ext := filepath.Ext(path)

	var chunks []string
	part := 1
	for start := 0; start < int(duration); start += seg {
		chunkPath := fmt.Sprintf("%s_part%d%s", base, part, ext)
		cmd := exec.Command(s.FFmpegPath,
			"-ss", strconv.Itoa(start),
			"-t", strconv.Itoa(seg),
			"-i", path,
			"-c", "copy",
			"-y", chunkPath,
		)
		if out, err := cmd.CombinedOutput(); err != nil {
			return nil, fmt.Errorf("ffmpeg segment %d failed: %w: %s", part, err, strings.TrimSpace(string(out)))
		}
		chunks = append(chunks, chunkPath)
		part++
	}
	log.Info().Str("file", path).Int("parts", len(chunks)).Int("segment_seconds", seg).Msg("video split complete")
	return chunks, nil
}

// probeDuration asks ffprobe for the container duration in seconds.
func (s *Splitter) probeDuration(path string) (float64, error) {
	cmd := exec.Command(s.FFprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}
	duration, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe duration %q: %w", strings.TrimSpace(string(out)), err)
	}
	return duration, nil
}

// SegmentSeconds computes the per-segment duration so that each segment's
// share of the file stays under maxSize. Never returns less than one
// second, which guards against degenerate ratios and zero durations.
func SegmentSeconds(maxSize, fileSize int64, duration float64) int {
	seg := int(float64(maxSize) / float64(fileSize) * duration)
	if seg < 1 {
		seg = 1
	}
	return seg
}

// splitBinary slices the file into MaxSize-byte numbered siblings whose
// concatenation reproduces the original exactly.
func (s *Splitter) splitBinary(path string, size int64) ([]string, error) {
	src, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	base := strings.TrimSuffix(path, filepath.Ext(path))
	ext := filepath.Ext(path)
	total := (size + s.MaxSize - 1) / s.MaxSize

	chunks := make([]string, 0, total)
	for i := int64(0); i < total; i++ {
		chunkPath := fmt.Sprintf("%s_part%d%s", base, i+1, ext)
		dst, err := os.Create(chunkPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create chunk: %w", err)
		}
		_, err = io.CopyN(dst, src, s.MaxSize)
		dst.Close()
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to write chunk %d: %w", i+1, err)
		}
		chunks = append(chunks, chunkPath)
	}
	log.Info().Str("file", path).Int("parts", len(chunks)).Msg("binary split complete")
	return chunks, nil
}

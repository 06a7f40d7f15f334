// Package lockfile prevents two bot instances from polling the same token.
// The lock is a plain "pid:timestamp" file considered stale after a minute;
// it is a best-effort guard, not a distributed lock.
package lockfile

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// StaleAfter is how old a lock may be before it is treated as abandoned.
const StaleAfter = 60 * time.Second

// Lock is an acquired instance lock.
type Lock struct {
	path string
}

// Acquire takes the lock at path. It fails if a fresh lock written by
// another process exists; stale or malformed locks are overwritten.
func Acquire(path string) (*Lock, error) {
	if data, err := os.ReadFile(path); err == nil {
		if pid, ok := freshOwner(string(data), time.Now()); ok {
			return nil, fmt.Errorf("another bot instance is already running (PID: %d)", pid)
		}
	}

	content := fmt.Sprintf("%d:%d", os.Getpid(), time.Now().Unix())
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write lock file: %w", err)
	}
	return &Lock{path: path}, nil
}

// Release removes the lock file.
func (l *Lock) Release() error {
	return os.Remove(l.path)
}

// freshOwner parses "pid:timestamp" and reports whether the lock is still
// within the staleness window. Malformed content counts as stale.
func freshOwner(content string, now time.Time) (int, bool) {
	parts := strings.SplitN(strings.TrimSpace(content), ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	pid, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	ts, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, false
	}
	if now.Sub(time.Unix(ts, 0)) >= StaleAfter {
		return 0, false
	}
	return pid, true
}

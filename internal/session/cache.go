// Package session keeps short-lived hash→URL mappings alive between the
// quality-selection prompt and the button press, so callback payloads stay
// under Telegram's 64-byte limit without carrying the full URL.
package session

import (
	"fmt"
	"hash/fnv"
	"sync"
	"time"
)

// DefaultTTL bounds how long a quality prompt stays actionable.
const DefaultTTL = 30 * time.Minute

type entry struct {
	url     string
	expires time.Time
}

// URLCache is a thread-safe TTL cache of pending download URLs keyed by
// a 64-bit hash of the URL.
type URLCache struct {
	mu  sync.Mutex
	ttl time.Duration
	m   map[string]entry
	now func() time.Time
}

// NewURLCache creates a cache with the given TTL; ttl <= 0 uses DefaultTTL.
func NewURLCache(ttl time.Duration) *URLCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &URLCache{
		ttl: ttl,
		m:   make(map[string]entry),
		now: time.Now,
	}
}

// Key returns the cache key for a URL: the full FNV-1a 64 digest in hex.
// 16 hex characters keep the callback payload short while making an
// accidental collision between two live prompts negligible.
func Key(url string) string {
	h := fnv.New64a()
	h.Write([]byte(url))
	return fmt.Sprintf("%016x", h.Sum64())
}

// Put stores the URL and returns its key.
func (c *URLCache) Put(url string) string {
	key := Key(url)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evictLocked()
	c.m[key] = entry{url: url, expires: c.now().Add(c.ttl)}
	return key
}

// Get returns the URL stored under key, if it exists and has not expired.
func (c *URLCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.m[key]
	if !ok || c.now().After(e.expires) {
		delete(c.m, key)
		return "", false
	}
	return e.url, true
}

// Len reports the number of live entries.
func (c *URLCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evictLocked()
	return len(c.m)
}

func (c *URLCache) evictLocked() {
	now := c.now()
	for k, e := range c.m {
		if now.After(e.expires) {
			delete(c.m, k)
		}
	}
}

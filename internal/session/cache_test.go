package session

import (
	"testing"
	"time"
)

func TestKeyFormat(t *testing.T) {
	key := Key("https://youtube.com/watch?v=abc")
	if len(key) != 16 {
		t.Errorf("expected 16-char key, got %d: %q", len(key), key)
	}
	for _, c := range key {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			t.Errorf("key %q contains non-hex character %q", key, c)
		}
	}
	if key != Key("https://youtube.com/watch?v=abc") {
		t.Error("Key is not deterministic")
	}
}

func TestURLCachePutGet(t *testing.T) {
	c := NewURLCache(time.Minute)

	url := "https://youtube.com/watch?v=abc"
	key := c.Put(url)

	got, ok := c.Get(key)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got != url {
		t.Errorf("Get returned %q, want %q", got, url)
	}
}

func TestURLCacheMiss(t *testing.T) {
	c := NewURLCache(time.Minute)
	if _, ok := c.Get("deadbeefdeadbeef"); ok {
		t.Error("expected miss for unknown key")
	}
}

func TestURLCacheExpiry(t *testing.T) {
	c := NewURLCache(time.Minute)
	now := time.Now()
	c.now = func() time.Time { return now }

	key := c.Put("https://example.com/a")

	now = now.Add(2 * time.Minute)
	if _, ok := c.Get(key); ok {
		t.Error("expected expired entry to miss")
	}
	if c.Len() != 0 {
		t.Errorf("expected empty cache after expiry, got %d entries", c.Len())
	}
}

func TestURLCacheDistinctURLs(t *testing.T) {
	c := NewURLCache(time.Minute)

	k1 := c.Put("https://example.com/a")
	k2 := c.Put("https://example.com/b")
	if k1 == k2 {
		t.Fatal("distinct URLs mapped to the same key")
	}

	got1, _ := c.Get(k1)
	got2, _ := c.Get(k2)
	if got1 != "https://example.com/a" || got2 != "https://example.com/b" {
		t.Errorf("cache mixed up entries: %q, %q", got1, got2)
	}
}

// Package config loads bot settings from the environment and keeps the
// admin identity in a small JSON file that survives restarts.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync"
)

// Config holds everything the bot needs at startup. It is built once in
// main and passed explicitly to every constructor.
type Config struct {
	Token           string
	ChannelUsername string // without the leading @
	ChannelLink     string
	DownloadDir     string
	DBPath          string
	ConfigPath      string
	LockPath        string
	MetricsAddr     string
	MaxFileSize     int64 // Telegram bot API upload limit

	mu      sync.Mutex
	adminID int64
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt64(k string, def int64) int64 {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

// Load reads the environment and the JSON config file. The file wins for
// the admin ID so /admin reassignment survives restarts.
func Load() (*Config, error) {
	c := &Config{
		Token:           os.Getenv("TELEGRAM_BOT_TOKEN"),
		ChannelUsername: getenv("CHANNEL_USERNAME", "bad_wolf_01"),
		ChannelLink:     getenv("CHANNEL_LINK", "https://t.me/bad_wolf_01"),
		DownloadDir:     getenv("DOWNLOAD_DIR", "downloads"),
		DBPath:          getenv("DB_PATH", "bot_users.db"),
		ConfigPath:      getenv("CONFIG_PATH", "bot_config.json"),
		LockPath:        getenv("LOCK_PATH", "bot_instance.lock"),
		MetricsAddr:     getenv("METRICS_ADDR", ":8080"),
		MaxFileSize:     getenvInt64("MAX_FILE_SIZE", 50*1024*1024),
		adminID:         getenvInt64("ADMIN_ID", 0),
	}
	if c.Token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is not set")
	}
	if err := c.loadFile(); err != nil {
		return nil, err
	}
	return c, nil
}

type fileConfig struct {
	AdminID int64 `json:"admin_id,omitempty"`
}

func (c *Config) loadFile() error {
	data, err := os.ReadFile(c.ConfigPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	if fc.AdminID != 0 {
		c.adminID = fc.AdminID
	}
	return nil
}

// AdminID returns the current admin identity, 0 when unset.
func (c *Config) AdminID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.adminID
}

// SetAdminID updates the admin identity and rewrites the config file.
func (c *Config) SetAdminID(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := json.Marshal(fileConfig{AdminID: id})
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.ConfigPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to save config file: %w", err)
	}
	c.adminID = id
	return nil
}

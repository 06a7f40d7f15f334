package database

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// Migrate runs all database migrations.
func (db *DB) Migrate() error {
	log.Info().Msg("running migrations")

	migrations := []string{
		// Users table: id is the Telegram user ID, assigned on first contact.
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY,
			username TEXT,
			first_name TEXT,
			last_name TEXT,
			join_date DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_users_join_date ON users(join_date)`,

		// Download log, append-only.
		`CREATE TABLE IF NOT EXISTS downloads (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			platform TEXT NOT NULL,
			url TEXT NOT NULL,
			timestamp DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_downloads_user_id ON downloads(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_downloads_platform ON downloads(platform)`,
		`CREATE INDEX IF NOT EXISTS idx_downloads_timestamp ON downloads(timestamp)`,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}

	log.Info().Msg("migrations completed")
	return nil
}

package repository

import (
	"database/sql"
	"fmt"
	"time"
)

// DownloadRepository handles the append-only download log.
type DownloadRepository struct {
	db *sql.DB
}

// NewDownloadRepository creates a new DownloadRepository.
func NewDownloadRepository(db *sql.DB) *DownloadRepository {
	return &DownloadRepository{db: db}
}

// Record appends a download event for the user.
func (r *DownloadRepository) Record(userID int64, platform, url string) error {
	_, err := r.db.Exec(
		`INSERT INTO downloads (user_id, platform, url, timestamp) VALUES (?, ?, ?, ?)`,
		userID, platform, url, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to record download: %w", err)
	}
	return nil
}

// TotalDownloads returns the number of downloads by all users.
func (r *DownloadRepository) TotalDownloads() (int64, error) {
	var count int64
	err := r.db.QueryRow("SELECT COUNT(*) FROM downloads").Scan(&count)
	return count, err
}

// PlatformCount pairs a platform with its download count.
type PlatformCount struct {
	Platform string
	Count    int64
}

// CountByPlatform returns download totals grouped by platform,
// most popular first.
func (r *DownloadRepository) CountByPlatform() ([]PlatformCount, error) {
	rows, err := r.db.Query(`
		SELECT platform, COUNT(*) as count
		FROM downloads
		GROUP BY platform
		ORDER BY count DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to count downloads by platform: %w", err)
	}
	defer rows.Close()

	var results []PlatformCount
	for rows.Next() {
		var pc PlatformCount
		if err := rows.Scan(&pc.Platform, &pc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan platform count: %w", err)
		}
		results = append(results, pc)
	}
	return results, rows.Err()
}

package repository

import (
	"github.com/badwolf01/downloader-bot/internal/database/models"
	"github.com/rs/zerolog/log"
)

// Overview aggregates everything /stats and the new-user notification
// display.
type Overview struct {
	TotalUsers     int64
	TotalDownloads int64
	PlatformStats  []PlatformCount
	RecentUsers    []models.User
}

// StatsRepository composes the user and download repositories into
// read-only reporting queries.
type StatsRepository struct {
	users     *UserRepository
	downloads *DownloadRepository
}

// NewStatsRepository creates a new StatsRepository.
func NewStatsRepository(users *UserRepository, downloads *DownloadRepository) *StatsRepository {
	return &StatsRepository{users: users, downloads: downloads}
}

// Overview collects the current totals. Individual query failures are
// logged and degrade to zero values so a broken stats page never blocks
// the bot.
func (r *StatsRepository) Overview() Overview {
	var o Overview
	var err error

	if o.TotalUsers, err = r.users.TotalUsers(); err != nil {
		log.Error().Err(err).Msg("failed to count users")
	}
	if o.TotalDownloads, err = r.downloads.TotalDownloads(); err != nil {
		log.Error().Err(err).Msg("failed to count downloads")
	}
	if o.PlatformStats, err = r.downloads.CountByPlatform(); err != nil {
		log.Error().Err(err).Msg("failed to count downloads by platform")
	}
	if o.RecentUsers, err = r.users.RecentUsers(5); err != nil {
		log.Error().Err(err).Msg("failed to list recent users")
	}
	return o
}

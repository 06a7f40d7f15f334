package repository_test

import (
	"testing"

	"github.com/badwolf01/downloader-bot/internal/database/repository"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func TestDownloadRepository_RecordAndCount(t *testing.T) {
	db := setupTestDB(t)
	users := repository.NewUserRepository(db)
	downloads := repository.NewDownloadRepository(db)

	if _, err := users.AddFromTelegram(&tgbotapi.User{ID: 1, FirstName: "A"}); err != nil {
		t.Fatal(err)
	}

	records := []struct {
		platform string
		url      string
	}{
		{"YouTube", "https://youtube.com/watch?v=a"},
		{"YouTube", "https://youtube.com/watch?v=b"},
		{"TikTok", "https://tiktok.com/@u/video/1"},
	}
	for _, r := range records {
		if err := downloads.Record(1, r.platform, r.url); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	total, err := downloads.TotalDownloads()
	if err != nil {
		t.Fatalf("TotalDownloads failed: %v", err)
	}
	if total != 3 {
		t.Errorf("TotalDownloads = %d, want 3", total)
	}

	byPlatform, err := downloads.CountByPlatform()
	if err != nil {
		t.Fatalf("CountByPlatform failed: %v", err)
	}
	if len(byPlatform) != 2 {
		t.Fatalf("expected 2 platforms, got %d", len(byPlatform))
	}
	if byPlatform[0].Platform != "YouTube" || byPlatform[0].Count != 2 {
		t.Errorf("most popular platform = %+v, want YouTube/2", byPlatform[0])
	}
}

func TestDownloadRepository_ForeignKey(t *testing.T) {
	db := setupTestDB(t)
	downloads := repository.NewDownloadRepository(db)

	// No such user: the nominal foreign key must reject the event.
	if err := downloads.Record(42, "YouTube", "https://youtube.com/watch?v=a"); err == nil {
		t.Error("expected foreign key violation for unknown user")
	}
}

func TestStatsRepository_Overview(t *testing.T) {
	db := setupTestDB(t)
	users := repository.NewUserRepository(db)
	downloads := repository.NewDownloadRepository(db)
	stats := repository.NewStatsRepository(users, downloads)

	if _, err := users.AddFromTelegram(&tgbotapi.User{ID: 1, FirstName: "A", UserName: "a"}); err != nil {
		t.Fatal(err)
	}
	if err := downloads.Record(1, "Spotify", "https://open.spotify.com/track/x"); err != nil {
		t.Fatal(err)
	}

	o := stats.Overview()
	if o.TotalUsers != 1 {
		t.Errorf("TotalUsers = %d, want 1", o.TotalUsers)
	}
	if o.TotalDownloads != 1 {
		t.Errorf("TotalDownloads = %d, want 1", o.TotalDownloads)
	}
	if len(o.PlatformStats) != 1 || o.PlatformStats[0].Platform != "Spotify" {
		t.Errorf("unexpected platform stats: %+v", o.PlatformStats)
	}
	if len(o.RecentUsers) != 1 || o.RecentUsers[0].Username != "a" {
		t.Errorf("unexpected recent users: %+v", o.RecentUsers)
	}
}

func TestStatsRepository_EmptyDatabase(t *testing.T) {
	db := setupTestDB(t)
	stats := repository.NewStatsRepository(
		repository.NewUserRepository(db),
		repository.NewDownloadRepository(db),
	)

	o := stats.Overview()
	if o.TotalUsers != 0 || o.TotalDownloads != 0 {
		t.Errorf("empty database should yield zero totals, got %+v", o)
	}
}

package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/badwolf01/downloader-bot/internal/database/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// UserRepository handles user data persistence.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// AddFromTelegram inserts the user on first contact. Returns true exactly
// once per user ID; existing users are left untouched.
func (r *UserRepository) AddFromTelegram(tgUser *tgbotapi.User) (bool, error) {
	if tgUser == nil {
		return false, fmt.Errorf("telegram user is nil")
	}

	res, err := r.db.Exec(`
		INSERT INTO users (id, username, first_name, last_name, join_date)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING`,
		tgUser.ID,
		tgUser.UserName,
		tgUser.FirstName,
		tgUser.LastName,
		time.Now(),
	)
	if err != nil {
		return false, fmt.Errorf("failed to add user: %w", err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read insert result: %w", err)
	}
	return inserted > 0, nil
}

// GetByID retrieves a user by Telegram user ID, (nil, nil) when absent.
func (r *UserRepository) GetByID(id int64) (*models.User, error) {
	user := &models.User{}
	var username, firstName, lastName sql.NullString

	err := r.db.QueryRow(`
		SELECT id, username, first_name, last_name, join_date
		FROM users WHERE id = ?`, id).Scan(
		&user.ID,
		&username,
		&firstName,
		&lastName,
		&user.JoinDate,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.Username = username.String
	user.FirstName = firstName.String
	user.LastName = lastName.String
	return user, nil
}

// TotalUsers returns the number of unique users seen.
func (r *UserRepository) TotalUsers() (int64, error) {
	var count int64
	err := r.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}

// RecentUsers returns the newest users first, at most limit of them.
func (r *UserRepository) RecentUsers(limit int) ([]models.User, error) {
	rows, err := r.db.Query(`
		SELECT id, username, first_name, last_name, join_date
		FROM users ORDER BY join_date DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		var username, firstName, lastName sql.NullString
		if err := rows.Scan(&u.ID, &username, &firstName, &lastName, &u.JoinDate); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		u.Username = username.String
		u.FirstName = firstName.String
		u.LastName = lastName.String
		users = append(users, u)
	}
	return users, rows.Err()
}

package models

import "time"

// User represents a Telegram user stored in the database. Created on
// first interaction, never mutated afterwards.
type User struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
	JoinDate  time.Time
}

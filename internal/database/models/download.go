package models

import "time"

// Download is one entry of the append-only download log.
type Download struct {
	ID        int64
	UserID    int64
	Platform  string
	URL       string
	Timestamp time.Time
}

package models

import "time"

// Settings are per-session defaults applied to new posts.
type Settings struct {
	PostingTime string    `json:"posting_time"` // HH:MM
	Category    string    `json:"category"`
	UpdatedAt   time.Time `json:"updated_at"`
}

package queue

import (
	"github.com/maheshrc27/postcal/internal/repository"
)

// Queue runs background tasks against live sessions.
type Queue struct {
	sr repository.SessionRepository
}

func NewQueue(sr repository.SessionRepository) *Queue {
	return &Queue{sr: sr}
}

const TaskTypePostReminder = "post:reminder"

// PostReminderPayload identifies a post by session and position, plus the values
// it had when the reminder was queued so stale reminders can be dropped.
type PostReminderPayload struct {
	SessionID   string `json:"session_id"`
	Index       int    `json:"index"`
	Platform    string `json:"platform"`
	ScheduledAt string `json:"scheduled_at"`
	Email       string `json:"email"`
}

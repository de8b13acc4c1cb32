package queue

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/maheshrc27/postcal/internal/models"
)

func (q *Queue) HandlePostReminderTask(ctx context.Context, task *asynq.Task) error {
	var payload PostReminderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	_, err := q.Remind(payload)
	return err
}

// Remind reports whether the reminder was delivered. Reminders for ended sessions
// or for posts edited since queuing are dropped.
func (q *Queue) Remind(payload PostReminderPayload) (bool, error) {
	st, ok := q.sr.GetByID(payload.SessionID)
	if !ok {
		log.Printf("Dropping reminder, session %s is gone", payload.SessionID)
		return false, nil
	}

	post, err := st.Posts.Get(payload.Index)
	if err != nil {
		log.Printf("Dropping reminder for session %s: %v", payload.SessionID, err)
		return false, nil
	}

	if post.ScheduledAt.Format(models.ScheduledAtLayout) != payload.ScheduledAt ||
		post.Email != payload.Email || post.Platform != payload.Platform {
		log.Printf("Dropping stale reminder for session %s post %d", payload.SessionID, payload.Index)
		return false, nil
	}

	slog.Info("post due",
		"session_id", payload.SessionID,
		"index", payload.Index,
		"platform", post.Platform,
		"scheduled_at", payload.ScheduledAt,
		"notify", post.Email,
	)
	return true, nil
}

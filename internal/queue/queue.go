package queue

import (
	"encoding/json"
	"log"
	"time"

	"github.com/hibiken/asynq"
	"github.com/maheshrc27/postcal/internal/models"
)

// NewReminderPayload builds the reminder for the post at index.
func NewReminderPayload(sessionID string, index int, post models.Post) PostReminderPayload {
	return PostReminderPayload{
		SessionID:   sessionID,
		Index:       index,
		Platform:    post.Platform,
		ScheduledAt: post.ScheduledAt.Format(models.ScheduledAtLayout),
		Email:       post.Email,
	}
}

// ReminderTime maps a timezone-naive schedule onto the server's local clock.
func ReminderTime(scheduledAt time.Time) time.Time {
	y, m, d := scheduledAt.Date()
	h, mi, s := scheduledAt.Clock()
	return time.Date(y, m, d, h, mi, s, 0, time.Local)
}

func EnqueueReminder(asynqClient *asynq.Client, payload PostReminderPayload, processAt time.Time) error {
	taskPayload, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	task := asynq.NewTask(TaskTypePostReminder, taskPayload)

	_, err = asynqClient.Enqueue(task, asynq.ProcessAt(processAt))
	if err != nil {
		return err
	}

	log.Printf("Reminder scheduled: %+v", payload)
	return nil
}

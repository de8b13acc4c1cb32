package job

import (
	"context"
	"log/slog"

	"github.com/maheshrc27/postcal/internal/service"
)

// SessionSweepJob discards sessions that have been idle longer than the session TTL.
type SessionSweepJob struct {
	ss service.SessionService
}

func NewSessionSweepJob(ss service.SessionService) *SessionSweepJob {
	return &SessionSweepJob{ss: ss}
}

func (j *SessionSweepJob) SweepSessions() {
	removed := j.ss.SweepIdle(context.Background())
	if removed > 0 {
		slog.Info("idle sessions discarded", "count", removed)
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	config "github.com/maheshrc27/postcal/configs"
	"github.com/maheshrc27/postcal/internal/models"
	"github.com/maheshrc27/postcal/internal/repository"
	"github.com/maheshrc27/postcal/pkg/utils"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

type SessionService interface {
	Create(ctx context.Context) (*repository.SessionState, string, error)
	Resolve(ctx context.Context, token string) (*repository.SessionState, string, error)
	Get(ctx context.Context, sessionID string) (*repository.SessionState, error)
	End(ctx context.Context, sessionID string) error
	SweepIdle(ctx context.Context) int
}

type sessionService struct {
	cfg config.Config
	sr  repository.SessionRepository
	now func() time.Time
}

func NewSessionService(cfg config.Config, sr repository.SessionRepository) SessionService {
	return &sessionService{cfg: cfg, sr: sr, now: time.Now}
}

// Create starts a new session and returns it with its signed cookie token.
func (s *sessionService) Create(ctx context.Context) (*repository.SessionState, string, error) {
	id, err := gonanoid.New()
	if err != nil {
		slog.Info(err.Error())
		return nil, "", err
	}

	token, err := utils.GenerateToken(s.cfg.SecretKey, id, s.cfg.SessionTTL)
	if err != nil {
		return nil, "", fmt.Errorf("error signing session token: %w", err)
	}

	session := models.NewSession(id, s.now(), models.Settings{
		PostingTime: s.cfg.DefaultPostingTime,
	})
	st, err := s.sr.CreateWithin(session, s.cfg.MaxSessions)
	if errors.Is(err, repository.ErrSessionLimit) && s.SweepIdle(ctx) > 0 {
		st, err = s.sr.CreateWithin(session, s.cfg.MaxSessions)
	}
	if err != nil {
		slog.Error(err.Error(), "max_sessions", s.cfg.MaxSessions)
		return nil, "", err
	}
	slog.Info("session created", "session_id", id)
	return st, token, nil
}

// Resolve returns the live session named by token. When the token is past half
// its lifetime a fresh one is returned as well; otherwise the second value is empty.
func (s *sessionService) Resolve(ctx context.Context, token string) (*repository.SessionState, string, error) {
	claims, err := utils.ValidateToken(s.cfg.SecretKey, token)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrSessionNotFound, err)
	}
	st, err := s.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, "", err
	}

	now := s.now()
	st.Session.Touch(now)

	if !utils.NeedsRefresh(claims, now) {
		return st, "", nil
	}
	refreshed, err := utils.GenerateToken(s.cfg.SecretKey, claims.SessionID, s.cfg.SessionTTL)
	if err != nil {
		slog.Info(err.Error())
		return st, "", nil
	}
	return st, refreshed, nil
}

func (s *sessionService) Get(ctx context.Context, sessionID string) (*repository.SessionState, error) {
	st, ok := s.sr.GetByID(sessionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return st, nil
}

func (s *sessionService) End(ctx context.Context, sessionID string) error {
	if !s.sr.Remove(sessionID) {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	slog.Info("session ended", "session_id", sessionID)
	return nil
}

// SweepIdle discards sessions not seen within the configured TTL and returns how many.
func (s *sessionService) SweepIdle(ctx context.Context) int {
	ids := s.sr.ListIdleSince(s.now().Add(-s.cfg.SessionTTL))
	removed := 0
	for _, id := range ids {
		if s.sr.Remove(id) {
			removed++
		}
	}
	return removed
}

package service

import (
	"context"
	"time"

	"github.com/maheshrc27/postcal/internal/models"
)

type SettingsService interface {
	GetSettingsInfo(ctx context.Context, sessionID string) (*models.Settings, error)
	UpdateSettings(ctx context.Context, sessionID string, postingTime string, category string) (*models.Settings, error)
}

type settingsService struct {
	ss SessionService
}

func NewSettingsService(ss SessionService) SettingsService {
	return &settingsService{
		ss: ss,
	}
}

func (s *settingsService) GetSettingsInfo(ctx context.Context, sessionID string) (*models.Settings, error) {
	st, err := s.ss.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	settings := st.Session.Settings()
	return &settings, nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, sessionID string, postingTime string, category string) (*models.Settings, error) {
	st, err := s.ss.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	settings := st.Session.Settings()
	if postingTime != "" {
		h, m, sec, err := parseClock(postingTime)
		if err != nil {
			return nil, err
		}
		settings.PostingTime = time.Date(0, 1, 1, h, m, sec, 0, time.UTC).Format(clockLayout(sec))
	}
	settings.Category = category
	settings.UpdatedAt = time.Now()

	st.Session.SetSettings(settings)
	return &settings, nil
}

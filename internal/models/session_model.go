package models

import (
	"sync"
	"time"
)

// Session is the calendar state owned by one browser session. The session's posts
// live next to it in the session repository.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu           sync.Mutex
	lastSeen     time.Time
	selectedDate *time.Time
	settings     Settings
}

func NewSession(id string, now time.Time, settings Settings) *Session {
	return &Session{
		ID:        id,
		CreatedAt: now,
		lastSeen:  now,
		settings:  settings,
	}
}

func (s *Session) Touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// SelectedDate returns the selected calendar date, initializing it to today on first use.
func (s *Session) SelectedDate(today time.Time) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selectedDate == nil {
		d := today
		s.selectedDate = &d
	}
	return *s.selectedDate
}

func (s *Session) SelectDate(d time.Time) {
	s.mu.Lock()
	s.selectedDate = &d
	s.mu.Unlock()
}

func (s *Session) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

func (s *Session) SetSettings(st Settings) {
	s.mu.Lock()
	s.settings = st
	s.mu.Unlock()
}

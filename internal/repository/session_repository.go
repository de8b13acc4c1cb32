package repository

import (
	"errors"
	"sync"
	"time"

	"github.com/maheshrc27/postcal/internal/models"
)

var ErrSessionLimit = errors.New("session limit reached")

// SessionState is everything a session owns.
type SessionState struct {
	Session *models.Session
	Posts   PostStore
}

type SessionRepository interface {
	Create(session *models.Session) *SessionState
	CreateWithin(session *models.Session, limit int) (*SessionState, error)
	GetByID(id string) (*SessionState, bool)
	Remove(id string) bool
	ListIdleSince(cutoff time.Time) []string
	Count() int
}

type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*SessionState
}

func NewSessionRepository() SessionRepository {
	return &sessionRepository{sessions: make(map[string]*SessionState)}
}

// Create registers session with an empty post store.
func (r *sessionRepository) Create(session *models.Session) *SessionState {
	st, _ := r.CreateWithin(session, 0)
	return st
}

// CreateWithin is Create, refused with ErrSessionLimit when limit sessions are
// already live. A limit of zero means no limit.
func (r *sessionRepository) CreateWithin(session *models.Session, limit int) (*SessionState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if limit > 0 && len(r.sessions) >= limit {
		return nil, ErrSessionLimit
	}
	st := &SessionState{Session: session, Posts: NewPostStore()}
	r.sessions[session.ID] = st
	return st, nil
}

func (r *sessionRepository) GetByID(id string) (*SessionState, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	st, ok := r.sessions[id]
	return st, ok
}

func (r *sessionRepository) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return false
	}
	delete(r.sessions, id)
	return true
}

// ListIdleSince returns the IDs of sessions last seen before cutoff.
func (r *sessionRepository) ListIdleSince(cutoff time.Time) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []string
	for id, st := range r.sessions {
		if st.Session.LastSeen().Before(cutoff) {
			ids = append(ids, id)
		}
	}
	return ids
}

func (r *sessionRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

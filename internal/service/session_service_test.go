package service

import (
	"context"
	"testing"
	"time"

	config "github.com/maheshrc27/postcal/configs"
	"github.com/maheshrc27/postcal/internal/repository"
	"github.com/maheshrc27/postcal/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionCreateResolveEnd(t *testing.T) {
	ctx := context.Background()
	ss := NewSessionService(config.Config{SecretKey: "k", SessionTTL: time.Hour, DefaultPostingTime: "08:30"}, repository.NewSessionRepository())

	st, token, err := ss.Create(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, st.Session.ID)
	assert.Equal(t, "08:30", st.Session.Settings().PostingTime)

	got, refreshed, err := ss.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Same(t, st, got)
	assert.Empty(t, refreshed)

	require.NoError(t, ss.End(ctx, st.Session.ID))
	_, _, err = ss.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, ss.End(ctx, st.Session.ID), ErrSessionNotFound)
}

func TestResolveRejectsForeignToken(t *testing.T) {
	ss := NewSessionService(config.Config{SecretKey: "k", SessionTTL: time.Hour}, repository.NewSessionRepository())

	token, err := utils.GenerateToken("other-key", "abc", time.Hour)
	require.NoError(t, err)

	_, _, err = ss.Resolve(context.Background(), token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSweepIdle(t *testing.T) {
	ctx := context.Background()
	sr := repository.NewSessionRepository()
	ss := NewSessionService(config.Config{SecretKey: "k", SessionTTL: time.Hour}, sr).(*sessionService)

	start := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	ss.now = func() time.Time { return start }
	_, _, err := ss.Create(ctx)
	require.NoError(t, err)

	ss.now = func() time.Time { return start.Add(30 * time.Minute) }
	assert.Equal(t, 0, ss.SweepIdle(ctx))

	ss.now = func() time.Time { return start.Add(2 * time.Hour) }
	assert.Equal(t, 1, ss.SweepIdle(ctx))
	assert.Equal(t, 0, sr.Count())
}

func TestResolveRefreshesAgingToken(t *testing.T) {
	ctx := context.Background()
	ss := NewSessionService(config.Config{SecretKey: "k", SessionTTL: time.Hour}, repository.NewSessionRepository()).(*sessionService)

	st, token, err := ss.Create(ctx)
	require.NoError(t, err)

	ss.now = func() time.Time { return time.Now().Add(40 * time.Minute) }
	got, refreshed, err := ss.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Same(t, st, got)
	require.NotEmpty(t, refreshed)

	claims, err := utils.ValidateToken("k", refreshed)
	require.NoError(t, err)
	assert.Equal(t, st.Session.ID, claims.SessionID)
}

func TestCreateRespectsSessionLimit(t *testing.T) {
	ctx := context.Background()
	sr := repository.NewSessionRepository()
	ss := NewSessionService(config.Config{SecretKey: "k", SessionTTL: time.Hour, MaxSessions: 2}, sr).(*sessionService)

	start := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	ss.now = func() time.Time { return start }
	for i := 0; i < 2; i++ {
		_, _, err := ss.Create(ctx)
		require.NoError(t, err)
	}

	_, _, err := ss.Create(ctx)
	assert.ErrorIs(t, err, repository.ErrSessionLimit)
	assert.Equal(t, 2, sr.Count())

	// idle sessions are swept to make room
	ss.now = func() time.Time { return start.Add(2 * time.Hour) }
	_, _, err = ss.Create(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sr.Count())
}

package service

import (
	"context"
	"testing"

	"github.com/maheshrc27/postcal/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateSettingsAppliesToNewPosts(t *testing.T) {
	ps, sid := newTestPostService(t)
	ctx := context.Background()
	settings := NewSettingsService(ps.ss)

	updated, err := settings.UpdateSettings(ctx, sid, "17:45", "Promo")
	require.NoError(t, err)
	assert.Equal(t, "17:45", updated.PostingTime)

	_, view, err := ps.AddPost(ctx, sid, &transfer.PostCreation{Platform: "Twitter", Date: "2024-06-11"})
	require.NoError(t, err)
	require.Len(t, view.Posts, 1)
	assert.Equal(t, "2024-06-11 17:45:00", view.Posts[0].ScheduledAt)
	assert.Equal(t, "Promo", view.Posts[0].Post.Category)

	got, err := settings.GetSettingsInfo(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, "Promo", got.Category)
}

func TestUpdateSettingsRejectsBadTime(t *testing.T) {
	ps, sid := newTestPostService(t)
	settings := NewSettingsService(ps.ss)

	_, err := settings.UpdateSettings(context.Background(), sid, "25:99", "")
	assert.ErrorIs(t, err, ErrValidation)

	got, err := settings.GetSettingsInfo(context.Background(), sid)
	require.NoError(t, err)
	assert.Equal(t, "09:00", got.PostingTime)
}

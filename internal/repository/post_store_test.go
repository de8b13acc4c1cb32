package repository

import (
	"testing"
	"time"

	"github.com/maheshrc27/postcal/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func post(platform, content string, at time.Time) models.Post {
	return models.Post{Platform: platform, Content: content, ScheduledAt: at}
}

func TestPostStoreAddThenListForDate(t *testing.T) {
	s := NewPostStore()
	at := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

	idx := s.Add(post("Twitter", "Hello", at))
	assert.Equal(t, 0, idx)
	s.Add(post("Facebook", "Other day", at.AddDate(0, 0, 1)))
	s.Add(post("LinkedIn", "Evening", at.Add(10*time.Hour)))

	got := s.ListForDate(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].Index)
	assert.Equal(t, "Hello", got[0].Post.Content)
	assert.Equal(t, 2, got[1].Index)
	assert.Equal(t, "Evening", got[1].Post.Content)
}

func TestPostStoreZeroDateListsAll(t *testing.T) {
	s := NewPostStore()
	at := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	s.Add(post("Twitter", "a", at))
	s.Add(post("Twitter", "b", at.AddDate(1, 0, 0)))

	assert.Len(t, s.ListForDate(time.Time{}), 2)
}

func TestPostStoreUpdateReplacesInPlace(t *testing.T) {
	s := NewPostStore()
	at := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	s.Add(post("Twitter", "first", at))
	s.Add(post("Twitter", "second", at))

	require.NoError(t, s.Update(0, post("Instagram", "edited", at)))

	got := s.ListForDate(at)
	require.Len(t, got, 2)
	assert.Equal(t, "edited", got[0].Post.Content)
	assert.Equal(t, "Instagram", got[0].Post.Platform)
	assert.Equal(t, "second", got[1].Post.Content)
}

func TestPostStoreUpdateOutOfRange(t *testing.T) {
	s := NewPostStore()
	at := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	s.Add(post("Twitter", "only", at))

	for _, i := range []int{-1, 1, 5} {
		err := s.Update(i, post("Facebook", "nope", at))
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
	}
	assert.Equal(t, []models.Post{post("Twitter", "only", at)}, s.All())

	_, err := s.Get(3)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestPostStoreAppendAllIsAdditive(t *testing.T) {
	s := NewPostStore()
	at := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	s.Add(post("Twitter", "a", at))
	s.Add(post("Twitter", "a", at))

	n := s.AppendAll([]models.Post{post("Twitter", "a", at), post("Facebook", "b", at)})
	assert.Equal(t, 4, n)
	assert.Equal(t, 4, s.Len())
}

func TestPostStoreAllReturnsCopy(t *testing.T) {
	s := NewPostStore()
	s.Add(post("Twitter", "a", time.Now()))

	all := s.All()
	all[0].Content = "mutated"

	got, err := s.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Content)
}

package repository

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/maheshrc27/postcal/internal/calendar"
	"github.com/maheshrc27/postcal/internal/models"
)

var ErrIndexOutOfRange = errors.New("post index out of range")

// PostStore is the ordered, in-memory list of a session's scheduled posts.
// A post's position is its identity for Get and Update.
type PostStore interface {
	Add(post models.Post) int
	AppendAll(posts []models.Post) int
	Update(index int, post models.Post) error
	Get(index int) (models.Post, error)
	ListForDate(date time.Time) []IndexedPost
	All() []models.Post
	Len() int
}

// IndexedPost pairs a post with its position in the store.
type IndexedPost struct {
	Index int         `json:"index"`
	Post  models.Post `json:"post"`
}

type postStore struct {
	mu    sync.RWMutex
	posts []models.Post
}

func NewPostStore() PostStore {
	return &postStore{}
}

// Add appends post and returns its index.
func (r *postStore) Add(post models.Post) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.posts = append(r.posts, post)
	return len(r.posts) - 1
}

// AppendAll appends posts in order under a single lock and returns the new length.
func (r *postStore) AppendAll(posts []models.Post) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.posts = append(r.posts, posts...)
	return len(r.posts)
}

func (r *postStore) Update(index int, post models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if index < 0 || index >= len(r.posts) {
		return fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(r.posts))
	}
	r.posts[index] = post
	return nil
}

func (r *postStore) Get(index int) (models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if index < 0 || index >= len(r.posts) {
		return models.Post{}, fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(r.posts))
	}
	return r.posts[index], nil
}

// ListForDate returns the posts scheduled on date in store order.
// A zero date matches every post.
func (r *postStore) ListForDate(date time.Time) []IndexedPost {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]IndexedPost, 0, len(r.posts))
	for i, p := range r.posts {
		if !date.IsZero() && !calendar.SameDate(p.ScheduledAt, date) {
			continue
		}
		out = append(out, IndexedPost{Index: i, Post: p})
	}
	return out
}

func (r *postStore) All() []models.Post {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Post, len(r.posts))
	copy(out, r.posts)
	return out
}

func (r *postStore) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.posts)
}

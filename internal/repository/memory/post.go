// Package memory implements the domain repositories over in-memory
// collections. It backs unit tests and demo setups where no database
// file is wanted; the sqlite package is the durable equivalent.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhalloran/inkwell/internal/domain"
)

// PostRepository implements domain.PostRepository with an ordered slice
// plus an ID index. New posts are prepended so iteration order is
// newest-created-first.
type PostRepository struct {
	mu    sync.RWMutex
	posts []domain.Post
	index map[string]int
}

// NewPostRepository creates an empty in-memory PostRepository.
func NewPostRepository() *PostRepository {
	return &PostRepository{index: make(map[string]int)}
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if post.PublishedAt.IsZero() {
		post.PublishedAt = now
	}
	post.CreatedAt = now

	r.posts = append([]domain.Post{*post}, r.posts...)
	r.reindex()
	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	post := r.posts[i]
	return &post, nil
}

func (r *PostRepository) ListAll(ctx context.Context) ([]domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Post, len(r.posts))
	copy(out, r.posts)
	return out, nil
}

func (r *PostRepository) ListPublished(ctx context.Context) ([]domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Post
	for _, p := range r.posts {
		if p.Published {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *PostRepository) Update(ctx context.Context, post *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[post.ID]
	if !ok {
		return domain.ErrNotFound
	}
	r.posts[i] = *post
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return nil // no-op for unknown IDs
	}
	r.posts = append(r.posts[:i], r.posts[i+1:]...)
	r.reindex()
	return nil
}

func (r *PostRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.posts), nil
}

// reindex rebuilds the ID index after any positional change.
func (r *PostRepository) reindex() {
	r.index = make(map[string]int, len(r.posts))
	for i, p := range r.posts {
		r.index[p.ID] = i
	}
}

package domain

import (
	"context"
	"time"
)

// Post is a blog post. Content is HTML produced by the admin editor;
// Excerpt is either author-supplied or derived from Content.
type Post struct {
	ID            string
	Title         string
	Content       string
	Excerpt       string
	Author        string
	Category      string
	Tags          []string
	CoverImageURL string
	Published     bool
	PublishedAt   time.Time
	CreatedAt     time.Time
}

// PostUpdate carries a partial-field merge for an existing post.
// Nil fields are left unchanged.
type PostUpdate struct {
	Title         *string
	Content       *string
	Excerpt       *string
	Author        *string
	Category      *string
	Tags          []string
	CoverImageURL *string
	Published     *bool
	PublishedAt   *time.Time
}

// PostRepository defines persistence operations for posts.
// ListAll and ListPublished return newest-created-first.
type PostRepository interface {
	Create(ctx context.Context, post *Post) error
	GetByID(ctx context.Context, id string) (*Post, error)
	ListAll(ctx context.Context) ([]Post, error)
	ListPublished(ctx context.Context) ([]Post, error)
	Update(ctx context.Context, post *Post) error
	// Delete removes the post with the given ID. Deleting an unknown ID
	// is a no-op, not an error.
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

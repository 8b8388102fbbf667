package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhalloran/inkwell/internal/domain"
)

// excerptLength is how many characters of content stand in for a missing
// excerpt.
const excerptLength = 200

// PostService handles post CRUD, the excerpt-defaulting rule, and the
// search/filter contract used by the reading surface.
type PostService struct {
	posts domain.PostRepository
}

// NewPostService creates a new PostService.
func NewPostService(posts domain.PostRepository) *PostService {
	return &PostService{posts: posts}
}

// PostInput carries the author-supplied fields for a new post.
type PostInput struct {
	Title         string
	Content       string
	Excerpt       string
	Author        string
	Category      string
	Tags          []string
	CoverImageURL string
	Published     bool
	PublishedAt   time.Time
}

// Stats summarises the collection for the admin dashboard.
type Stats struct {
	Total     int
	Published int
	Drafts    int
}

// Create validates the input, assigns a fresh identifier, defaults the
// excerpt from content when absent, and prepends the post to the
// collection.
func (s *PostService) Create(ctx context.Context, in PostInput) (*domain.Post, error) {
	if in.Title == "" || in.Content == "" || in.Author == "" {
		return nil, fmt.Errorf("%w: title, content, and author are required", domain.ErrInvalidInput)
	}

	post := &domain.Post{
		ID:            uuid.NewString(),
		Title:         in.Title,
		Content:       in.Content,
		Excerpt:       in.Excerpt,
		Author:        in.Author,
		Category:      in.Category,
		Tags:          normalizeTags(in.Tags),
		CoverImageURL: in.CoverImageURL,
		Published:     in.Published,
		PublishedAt:   in.PublishedAt,
	}
	if post.Excerpt == "" {
		post.Excerpt = makeExcerpt(post.Content)
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// GetByID returns a post by ID, or domain.ErrNotFound; callers render the
// latter as a normal "not found" state.
func (s *PostService) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	return s.posts.GetByID(ctx, id)
}

// ListAll returns every post, newest-created-first.
func (s *PostService) ListAll(ctx context.Context) ([]domain.Post, error) {
	return s.posts.ListAll(ctx)
}

// ListPublished returns only published posts, newest-created-first.
func (s *PostService) ListPublished(ctx context.Context) ([]domain.Post, error) {
	return s.posts.ListPublished(ctx)
}

// Update merges the provided fields over the existing record. Fields left
// nil in upd are unchanged; an excerpt explicitly cleared to "" is
// re-derived from the merged content, matching the create rule.
func (s *PostService) Update(ctx context.Context, id string, upd domain.PostUpdate) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		post.Title = *upd.Title
	}
	if upd.Content != nil {
		post.Content = *upd.Content
	}
	if upd.Excerpt != nil {
		post.Excerpt = *upd.Excerpt
	}
	if upd.Author != nil {
		post.Author = *upd.Author
	}
	if upd.Category != nil {
		post.Category = *upd.Category
	}
	if upd.Tags != nil {
		post.Tags = normalizeTags(upd.Tags)
	}
	if upd.CoverImageURL != nil {
		post.CoverImageURL = *upd.CoverImageURL
	}
	if upd.Published != nil {
		post.Published = *upd.Published
	}
	if upd.PublishedAt != nil {
		post.PublishedAt = *upd.PublishedAt
	}

	if post.Title == "" || post.Content == "" || post.Author == "" {
		return nil, fmt.Errorf("%w: title, content, and author are required", domain.ErrInvalidInput)
	}
	if post.Excerpt == "" {
		post.Excerpt = makeExcerpt(post.Content)
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return post, nil
}

// Delete removes a post; deleting an unknown ID is a no-op.
func (s *PostService) Delete(ctx context.Context, id string) error {
	return s.posts.Delete(ctx, id)
}

// Search filters published posts with a case-insensitive substring match
// against title or excerpt, ANDed with an exact category match. An empty
// query matches everything, as does category "all" (or "").
func (s *PostService) Search(ctx context.Context, query, category string) ([]domain.Post, error) {
	posts, err := s.posts.ListPublished(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	out := make([]domain.Post, 0, len(posts))
	for _, p := range posts {
		matchesSearch := q == "" ||
			strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Excerpt), q)
		matchesCategory := category == "" || category == "all" || p.Category == category
		if matchesSearch && matchesCategory {
			out = append(out, p)
		}
	}
	return out, nil
}

// Stats returns total/published/draft counts for the dashboard.
func (s *PostService) Stats(ctx context.Context) (Stats, error) {
	posts, err := s.posts.ListAll(ctx)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{Total: len(posts)}
	for _, p := range posts {
		if p.Published {
			stats.Published++
		} else {
			stats.Drafts++
		}
	}
	return stats, nil
}

// makeExcerpt truncates content to the excerpt length and appends an
// ellipsis marker.
func makeExcerpt(content string) string {
	runes := []rune(content)
	if len(runes) > excerptLength {
		runes = runes[:excerptLength]
	}
	return string(runes) + "..."
}

// normalizeTags trims each tag and drops empties.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

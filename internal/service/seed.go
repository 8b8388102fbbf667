package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jhalloran/inkwell/internal/domain"
)

// Seeder populates an empty database with sample content and the
// bootstrap admin account. Both operations are idempotent: they only act
// when the relevant table is empty.
type Seeder struct {
	posts domain.PostRepository
	users domain.UserRepository
	auth  *AuthService
}

// NewSeeder creates a new Seeder.
func NewSeeder(posts domain.PostRepository, users domain.UserRepository, auth *AuthService) *Seeder {
	return &Seeder{posts: posts, users: users, auth: auth}
}

// BootstrapAdmin creates the initial admin account when no users exist.
// With no admin there is no way into the admin area, so a fresh install
// gets one from the environment.
func (s *Seeder) BootstrapAdmin(ctx context.Context, email, password string) error {
	if email == "" {
		return nil
	}

	count, err := s.users.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  "Administrator",
		IsAdmin:      true,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return fmt.Errorf("create bootstrap admin: %w", err)
	}

	slog.Info("bootstrap admin created", "email", email)
	return nil
}

// SeedSamplePosts inserts the demo posts when the post table is empty.
func (s *Seeder) SeedSamplePosts(ctx context.Context) error {
	count, err := s.posts.Count(ctx)
	if err != nil {
		return fmt.Errorf("count posts: %w", err)
	}
	if count > 0 {
		return nil
	}

	// Oldest first so the newest-first ordering matches the sample set.
	for i := len(samplePosts) - 1; i >= 0; i-- {
		post := samplePosts[i]
		post.ID = uuid.NewString()
		if err := s.posts.Create(ctx, &post); err != nil {
			return fmt.Errorf("seed post %q: %w", post.Title, err)
		}
	}

	slog.Info("sample posts seeded", "count", len(samplePosts))
	return nil
}

var samplePosts = []domain.Post{
	{
		Title: "Getting Started with Modern Web Development",
		Content: "<p>Web development has evolved tremendously over the past few years. " +
			"In this comprehensive guide, we'll explore the modern tools and techniques " +
			"that are shaping the future of web development.</p>" +
			"<h2>The Modern Stack</h2>" +
			"<p>Today's web developers have access to powerful frameworks and tools that " +
			"make building complex applications more manageable than ever before.</p>" +
			"<h2>Best Practices</h2>" +
			"<p>When building modern web applications, it's crucial to follow established " +
			"best practices: write clean, maintainable code, implement proper error " +
			"handling, and make sure your applications are accessible to all users.</p>",
		Excerpt: "Explore the modern tools and techniques that are shaping the future " +
			"of web development in this comprehensive guide.",
		Author:      "Alex Johnson",
		Category:    "Technology",
		Tags:        []string{"React", "JavaScript", "Web Development"},
		Published:   true,
		PublishedAt: time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC),
	},
	{
		Title: "The Art of Clean Code",
		Content: "<p>Writing clean, readable code is one of the most important skills a " +
			"developer can master. Clean code not only makes your applications more " +
			"maintainable but also makes collaboration with other developers much smoother.</p>" +
			"<h2>Principles of Clean Code</h2>" +
			"<p>Clean code follows several key principles: it should be readable, simple, " +
			"and focused. Each function should do one thing well, and variable names " +
			"should clearly express their purpose.</p>",
		Excerpt: "Learn the essential principles of writing clean, maintainable code " +
			"that will make you a better developer.",
		Author:      "Sarah Chen",
		Category:    "Programming",
		Tags:        []string{"Clean Code", "Best Practices", "Software Development"},
		Published:   true,
		PublishedAt: time.Date(2024, 6, 12, 14, 30, 0, 0, time.UTC),
	},
	{
		Title: "Building Responsive User Interfaces",
		Content: "<p>In today's multi-device world, creating responsive user interfaces " +
			"is not just a nice-to-have feature, it's essential. Users expect seamless " +
			"experiences across all their devices.</p>" +
			"<h2>Mobile-First Approach</h2>" +
			"<p>Starting with mobile design constraints forces you to prioritize the most " +
			"important content and features, which often leads to cleaner designs.</p>",
		Excerpt: "Master the art of creating responsive user interfaces that work " +
			"beautifully on all devices.",
		Author:      "Mike Rodriguez",
		Category:    "Design",
		Tags:        []string{"UI/UX", "Responsive Design", "CSS"},
		Published:   true,
		PublishedAt: time.Date(2024, 6, 10, 9, 15, 0, 0, time.UTC),
	},
}

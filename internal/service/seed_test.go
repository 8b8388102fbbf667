package service_test

import (
	"context"
	"testing"

	"github.com/jhalloran/inkwell/internal/repository/memory"
	"github.com/jhalloran/inkwell/internal/service"
	"github.com/stretchr/testify/require"
)

func newSeeder(t *testing.T) (*service.Seeder, *memory.PostRepository, *memory.UserRepository, *service.AuthService) {
	t.Helper()
	posts := memory.NewPostRepository()
	users := memory.NewUserRepository()
	auth := service.NewAuthService(users, testJWTSecret, testBcryptCost)
	return service.NewSeeder(posts, users, auth), posts, users, auth
}

func TestSeeder_SeedSamplePosts(t *testing.T) {
	seeder, posts, _, _ := newSeeder(t)
	ctx := context.Background()

	require.NoError(t, seeder.SeedSamplePosts(ctx))

	all, err := posts.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "Getting Started with Modern Web Development", all[0].Title,
		"newest sample post should come first")

	// Second run is a no-op.
	require.NoError(t, seeder.SeedSamplePosts(ctx))
	all, _ = posts.ListAll(ctx)
	require.Len(t, all, 3)
}

func TestSeeder_BootstrapAdmin(t *testing.T) {
	seeder, _, users, auth := newSeeder(t)
	ctx := context.Background()

	require.NoError(t, seeder.BootstrapAdmin(ctx, "admin@example.com", "bootstrap-pass"))

	admin, err := users.GetByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	require.True(t, admin.IsAdmin)

	// The configured password works for sign-in.
	_, err = auth.SignIn(ctx, "admin@example.com", "bootstrap-pass")
	require.NoError(t, err)
}

func TestSeeder_BootstrapAdmin_SkippedWhenUsersExist(t *testing.T) {
	seeder, _, users, _ := newSeeder(t)
	ctx := context.Background()

	require.NoError(t, seeder.BootstrapAdmin(ctx, "first@example.com", "pass1"))
	require.NoError(t, seeder.BootstrapAdmin(ctx, "second@example.com", "pass2"))

	count, _ := users.Count(ctx)
	require.Equal(t, 1, count, "bootstrap must not run once users exist")
}

func TestSeeder_BootstrapAdmin_NoEmailConfigured(t *testing.T) {
	seeder, _, users, _ := newSeeder(t)
	ctx := context.Background()

	require.NoError(t, seeder.BootstrapAdmin(ctx, "", ""))
	count, _ := users.Count(ctx)
	require.Equal(t, 0, count)
}

package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhalloran/inkwell/internal/domain"
	"github.com/jhalloran/inkwell/internal/repository/memory"
	"github.com/jhalloran/inkwell/internal/service"
	"github.com/stretchr/testify/require"
)

// failingUserRepo rejects every update, modelling an unreachable backend.
type failingUserRepo struct {
	domain.UserRepository
}

var errRemote = errors.New("remote write failed")

func (r *failingUserRepo) Update(ctx context.Context, user *domain.User) error {
	return errRemote
}

func newSessionFixture(t *testing.T) (*service.SessionContext, *service.AuthService, *memory.UserRepository) {
	t.Helper()
	users := memory.NewUserRepository()
	auth := service.NewAuthService(users, testJWTSecret, testBcryptCost)
	sc := service.NewSessionContext(auth, users)
	sc.Start(context.Background())
	t.Cleanup(sc.Stop)
	return sc, auth, users
}

func TestSessionContext_PopulatedOnSignIn(t *testing.T) {
	sc, auth, users := newSessionFixture(t)
	user := createTestUser(t, auth, users, "session@example.com", "password123", true)

	require.Nil(t, sc.Identity(), "no identity before sign-in")

	_, err := auth.SignIn(context.Background(), "session@example.com", "password123")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		id := sc.Identity()
		return id != nil && id.UserID == user.ID
	}, time.Second, 5*time.Millisecond, "identity not populated after sign-in")

	profile := sc.Profile()
	require.NotNil(t, profile)
	require.Equal(t, user.Email, profile.Email)
}

func TestSessionContext_ClearedOnSignOut(t *testing.T) {
	sc, auth, users := newSessionFixture(t)
	createTestUser(t, auth, users, "out@example.com", "password123", false)

	identity, err := auth.SignIn(context.Background(), "out@example.com", "password123")
	require.NoError(t, err)

	require.Eventually(t, func() bool { return sc.Identity() != nil }, time.Second, 5*time.Millisecond)

	require.NoError(t, auth.SignOut(context.Background(), identity.Token))

	require.Eventually(t, func() bool { return sc.Identity() == nil }, time.Second, 5*time.Millisecond,
		"identity not cleared after sign-out")
	require.Nil(t, sc.Profile())
}

func TestSessionContext_UpdateProfile(t *testing.T) {
	sc, auth, users := newSessionFixture(t)
	createTestUser(t, auth, users, "edit@example.com", "password123", true)

	_, err := auth.SignIn(context.Background(), "edit@example.com", "password123")
	require.NoError(t, err)
	require.Eventually(t, func() bool { return sc.Profile() != nil }, time.Second, 5*time.Millisecond)

	name := "New Name"
	updated, err := sc.UpdateProfile(context.Background(), domain.ProfileUpdate{DisplayName: &name})
	require.NoError(t, err)
	require.Equal(t, "New Name", updated.DisplayName)

	// The write went through to the repository.
	stored, err := users.GetByEmail(context.Background(), "edit@example.com")
	require.NoError(t, err)
	require.Equal(t, "New Name", stored.DisplayName)
}

func TestSessionContext_UpdateProfile_RemoteFailureKeepsPriorState(t *testing.T) {
	users := memory.NewUserRepository()
	auth := service.NewAuthService(users, testJWTSecret, testBcryptCost)
	createTestUser(t, auth, users, "fail@example.com", "password123", true)

	sc := service.NewSessionContext(auth, &failingUserRepo{UserRepository: users})
	sc.Start(context.Background())
	t.Cleanup(sc.Stop)

	_, err := auth.SignIn(context.Background(), "fail@example.com", "password123")
	require.NoError(t, err)
	require.Eventually(t, func() bool { return sc.Profile() != nil }, time.Second, 5*time.Millisecond)

	before := sc.Profile()

	name := "Should Not Stick"
	_, err = sc.UpdateProfile(context.Background(), domain.ProfileUpdate{DisplayName: &name})
	require.ErrorIs(t, err, errRemote)

	after := sc.Profile()
	require.Equal(t, before.DisplayName, after.DisplayName, "failed update must leave prior state intact")
}

func TestSessionContext_UpdateProfile_NoSession(t *testing.T) {
	sc, _, _ := newSessionFixture(t)

	name := "Nobody"
	_, err := sc.UpdateProfile(context.Background(), domain.ProfileUpdate{DisplayName: &name})
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

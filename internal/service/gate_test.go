package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhalloran/inkwell/internal/domain"
	"github.com/jhalloran/inkwell/internal/repository/memory"
	"github.com/jhalloran/inkwell/internal/retry"
	"github.com/jhalloran/inkwell/internal/service"
	"github.com/stretchr/testify/require"
)

// fakeProvider records sign-in and sign-out calls so tests can assert that
// the gate never leaves a rejected identity signed in.
type fakeProvider struct {
	identity   *domain.Identity
	signInErr  error
	signedOut  []string
	signInKeys []string
}

func (f *fakeProvider) SignIn(ctx context.Context, email, password string) (*domain.Identity, error) {
	f.signInKeys = append(f.signInKeys, email)
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return f.identity, nil
}

func (f *fakeProvider) SignOut(ctx context.Context, token string) error {
	f.signedOut = append(f.signedOut, token)
	return nil
}

func (f *fakeProvider) Verify(ctx context.Context, token string) (*domain.Identity, error) {
	return f.identity, nil
}

func (f *fakeProvider) Subscribe() (<-chan domain.SessionEvent, func()) {
	ch := make(chan domain.SessionEvent)
	return ch, func() { close(ch) }
}

// flakyUserRepo wraps a real repository but fails GetByID a fixed number
// of times first, modelling the backend persisting the profile row late.
type flakyUserRepo struct {
	domain.UserRepository
	failures int
	calls    int
}

func (r *flakyUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.calls++
	if r.calls <= r.failures {
		return nil, domain.ErrNotFound
	}
	return r.UserRepository.GetByID(ctx, id)
}

func fastLookup() retry.Policy {
	return retry.Policy{MaxAttempts: 3, Delay: time.Millisecond}
}

func newGateFixture(t *testing.T, isAdmin bool) (*service.AdminGate, *fakeProvider, *memory.UserRepository) {
	t.Helper()
	users := memory.NewUserRepository()
	user := &domain.User{ID: "u1", Email: "gate@example.com", DisplayName: "Gate User", IsAdmin: isAdmin}
	require.NoError(t, users.Create(context.Background(), user))

	provider := &fakeProvider{identity: &domain.Identity{UserID: "u1", Email: user.Email, Token: "tok-1"}}
	gate := service.NewAdminGate(provider, users, nil).WithLookupPolicy(fastLookup())
	return gate, provider, users
}

func TestAdminGate_Login_Admin(t *testing.T) {
	gate, provider, _ := newGateFixture(t, true)

	session, err := gate.Login(context.Background(), "gate@example.com", "password123")
	require.NoError(t, err)
	require.Equal(t, "u1", session.Identity.UserID)
	require.True(t, session.Profile.IsAdmin)
	require.Empty(t, provider.signedOut, "successful admin login must not sign out")
}

func TestAdminGate_Login_NonAdminSignedOut(t *testing.T) {
	gate, provider, _ := newGateFixture(t, false)

	_, err := gate.Login(context.Background(), "gate@example.com", "password123")
	require.ErrorIs(t, err, domain.ErrForbidden)
	require.Equal(t, []string{"tok-1"}, provider.signedOut, "non-admin identity must be signed out")
}

func TestAdminGate_Login_ProfileAppearsOnRetry(t *testing.T) {
	users := memory.NewUserRepository()
	user := &domain.User{ID: "u1", Email: "late@example.com", IsAdmin: true}
	require.NoError(t, users.Create(context.Background(), user))

	flaky := &flakyUserRepo{UserRepository: users, failures: 1}
	provider := &fakeProvider{identity: &domain.Identity{UserID: "u1", Email: user.Email, Token: "tok-late"}}
	gate := service.NewAdminGate(provider, flaky, nil).WithLookupPolicy(fastLookup())

	session, err := gate.Login(context.Background(), "late@example.com", "password123")
	require.NoError(t, err)
	require.Equal(t, "u1", session.Profile.ID)
	require.Equal(t, 2, flaky.calls, "expected success on the second lookup attempt")
	require.Empty(t, provider.signedOut)
}

func TestAdminGate_Login_ProfileNeverReadable(t *testing.T) {
	users := memory.NewUserRepository() // profile row absent entirely
	provider := &fakeProvider{identity: &domain.Identity{UserID: "ghost", Email: "ghost@example.com", Token: "tok-ghost"}}
	gate := service.NewAdminGate(provider, users, nil).WithLookupPolicy(fastLookup())

	_, err := gate.Login(context.Background(), "ghost@example.com", "password123")
	require.ErrorIs(t, err, domain.ErrProfileUnavailable)
	require.Equal(t, []string{"tok-ghost"}, provider.signedOut, "unresolvable identity must be signed out")
}

func TestAdminGate_Login_UnknownAccount(t *testing.T) {
	provider := &fakeProvider{signInErr: domain.ErrUnknownAccount}
	gate := service.NewAdminGate(provider, memory.NewUserRepository(), nil).WithLookupPolicy(fastLookup())

	_, err := gate.Login(context.Background(), "nobody@example.com", "password123")
	require.ErrorIs(t, err, domain.ErrUnknownAccount)
}

func TestAdminGate_Login_BadPassword(t *testing.T) {
	provider := &fakeProvider{signInErr: domain.ErrBadCredentials}
	gate := service.NewAdminGate(provider, memory.NewUserRepository(), nil).WithLookupPolicy(fastLookup())

	_, err := gate.Login(context.Background(), "gate@example.com", "nope")
	require.ErrorIs(t, err, domain.ErrBadCredentials)
}

func TestAdminGate_Login_EmptyInput(t *testing.T) {
	gate, provider, _ := newGateFixture(t, true)

	_, err := gate.Login(context.Background(), "  ", "password123")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	require.Empty(t, provider.signInKeys, "provider must not see empty credentials")
}

func TestAdminGate_Login_RateLimited(t *testing.T) {
	users := memory.NewUserRepository()
	provider := &fakeProvider{signInErr: domain.ErrBadCredentials}
	limiter := service.NewAttemptLimiter(0.001, 2)
	gate := service.NewAdminGate(provider, users, limiter).WithLookupPolicy(fastLookup())

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		_, err := gate.Login(ctx, "hammer@example.com", "wrong")
		require.ErrorIs(t, err, domain.ErrBadCredentials)
	}

	_, err := gate.Login(ctx, "hammer@example.com", "wrong")
	require.ErrorIs(t, err, domain.ErrRateLimited)
}

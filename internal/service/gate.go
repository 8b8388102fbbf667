package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jhalloran/inkwell/internal/domain"
	"github.com/jhalloran/inkwell/internal/retry"
)

// AdminGate runs the admin login flow: credential verification through the
// auth provider, admin-flag resolution against the user table, and
// mandatory sign-out whenever the identity turns out not to belong in the
// admin area. Profile lookup tolerates the provider persisting the profile
// row asynchronously after sign-up, so it retries a bounded number of
// times before giving up.
type AdminGate struct {
	provider domain.AuthProvider
	users    domain.UserRepository
	limiter  *AttemptLimiter
	lookup   retry.Policy
}

// AdminSession is the outcome of a successful admin login.
type AdminSession struct {
	Identity *domain.Identity
	Profile  *domain.User
}

// NewAdminGate creates a gate with the default lookup policy of three
// attempts spaced 250ms apart.
func NewAdminGate(provider domain.AuthProvider, users domain.UserRepository, limiter *AttemptLimiter) *AdminGate {
	return &AdminGate{
		provider: provider,
		users:    users,
		limiter:  limiter,
		lookup:   retry.Policy{MaxAttempts: 3, Delay: 250 * time.Millisecond},
	}
}

// WithLookupPolicy overrides the profile-lookup retry policy. Used by tests
// to avoid real delays.
func (g *AdminGate) WithLookupPolicy(p retry.Policy) *AdminGate {
	g.lookup = p
	return g
}

// Login attempts to establish an admin session. On any failure after
// credentials were accepted, the just-established session is torn down
// before the error is returned; a non-admin or unresolvable identity is
// never left signed in.
func (g *AdminGate) Login(ctx context.Context, email, password string) (*AdminSession, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}

	if g.limiter != nil && !g.limiter.Allow(email) {
		slog.Warn("admin login throttled", "email", email)
		return nil, domain.ErrRateLimited
	}

	identity, err := g.provider.SignIn(ctx, email, password)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownAccount) || errors.Is(err, domain.ErrBadCredentials) {
			slog.Info("admin login rejected", "email", email, "reason", err.Error())
			return nil, err
		}
		return nil, fmt.Errorf("sign in: %w", err)
	}
	slog.Info("credentials verified", "user_id", identity.UserID)

	profile, err := g.resolveProfile(ctx, identity.UserID)
	if err != nil {
		slog.Warn("profile lookup failed after retries", "user_id", identity.UserID, "error", err)
		g.signOut(ctx, identity)
		return nil, domain.ErrProfileUnavailable
	}

	if !profile.IsAdmin {
		slog.Info("admin access denied", "user_id", identity.UserID)
		g.signOut(ctx, identity)
		return nil, fmt.Errorf("%w: admin privileges required", domain.ErrForbidden)
	}

	if g.limiter != nil {
		g.limiter.Reset(email)
	}
	slog.Info("admin login succeeded", "user_id", identity.UserID)
	return &AdminSession{Identity: identity, Profile: profile}, nil
}

// resolveProfile looks up the profile row for an authenticated identity,
// retrying while the row may not be readable yet.
func (g *AdminGate) resolveProfile(ctx context.Context, userID string) (*domain.User, error) {
	var profile *domain.User
	err := g.lookup.Do(ctx, func(ctx context.Context) error {
		u, err := g.users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		profile = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (g *AdminGate) signOut(ctx context.Context, identity *domain.Identity) {
	if err := g.provider.SignOut(ctx, identity.Token); err != nil {
		slog.Error("sign-out after failed admin verification", "user_id", identity.UserID, "error", err)
	}
}

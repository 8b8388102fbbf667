package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jhalloran/inkwell/internal/domain"
)

// SessionContext is the process-wide holder of the current authenticated
// identity and its profile. It is populated by the auth provider's
// session-change stream: signed-in events load the profile once, signed-out
// events (explicit logout or external expiry) clear everything.
type SessionContext struct {
	provider domain.AuthProvider
	users    domain.UserRepository

	mu       sync.RWMutex
	identity *domain.Identity
	profile  *domain.User

	cancel func()
	done   chan struct{}
}

// NewSessionContext creates a SessionContext. Call Start to begin
// consuming session events and Stop to tear it down.
func NewSessionContext(provider domain.AuthProvider, users domain.UserRepository) *SessionContext {
	return &SessionContext{provider: provider, users: users}
}

// Start subscribes to the provider's session-change notifications.
func (c *SessionContext) Start(ctx context.Context) {
	events, cancel := c.provider.Subscribe()
	c.cancel = cancel
	c.done = make(chan struct{})

	go func() {
		defer close(c.done)
		for event := range events {
			c.handle(ctx, event)
		}
	}()
}

// Stop unsubscribes and clears the held identity.
func (c *SessionContext) Stop() {
	if c.cancel != nil {
		c.cancel()
		<-c.done
	}
	c.clear()
}

// Identity returns the current authenticated identity, or nil.
func (c *SessionContext) Identity() *domain.Identity {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.identity
}

// Profile returns the current profile, or nil while absent or loading.
func (c *SessionContext) Profile() *domain.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.profile == nil {
		return nil
	}
	profile := *c.profile
	return &profile
}

// UpdateProfile merges the given fields into the current profile and
// persists the result. If the write fails, the previously-loaded profile is
// left intact and the error is returned to the caller.
func (c *SessionContext) UpdateProfile(ctx context.Context, upd domain.ProfileUpdate) (*domain.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.profile == nil {
		return nil, domain.ErrUnauthorized
	}

	merged := *c.profile
	applyProfileUpdate(&merged, upd)

	if err := c.users.Update(ctx, &merged); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	c.profile = &merged
	saved := merged
	return &saved, nil
}

func (c *SessionContext) handle(ctx context.Context, event domain.SessionEvent) {
	switch event.Kind {
	case domain.SessionSignedIn:
		profile, err := c.users.GetByID(ctx, event.Identity.UserID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			slog.Error("load profile for session", "user_id", event.Identity.UserID, "error", err)
		}
		c.mu.Lock()
		c.identity = event.Identity
		c.profile = profile
		c.mu.Unlock()
		slog.Debug("session established", "user_id", event.Identity.UserID)
	case domain.SessionSignedOut:
		c.clear()
		slog.Debug("session cleared")
	}
}

func (c *SessionContext) clear() {
	c.mu.Lock()
	c.identity = nil
	c.profile = nil
	c.mu.Unlock()
}

func applyProfileUpdate(u *domain.User, upd domain.ProfileUpdate) {
	if upd.DisplayName != nil {
		u.DisplayName = *upd.DisplayName
	}
	if upd.Bio != nil {
		u.Bio = *upd.Bio
	}
	if upd.AvatarURL != nil {
		u.AvatarURL = *upd.AvatarURL
	}
}

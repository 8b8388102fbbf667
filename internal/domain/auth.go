package domain

import "context"

// Identity is an authenticated principal as reported by the auth provider.
// Token is the opaque session credential; it is passed back to the provider
// for verification and sign-out, never interpreted by callers.
type Identity struct {
	UserID string
	Email  string
	Token  string
}

// SessionEventKind classifies session-change notifications.
type SessionEventKind string

const (
	SessionSignedIn  SessionEventKind = "signed_in"
	SessionSignedOut SessionEventKind = "signed_out"
)

// SessionEvent is a session-change notification. Identity is nil for
// signed-out events.
type SessionEvent struct {
	Kind     SessionEventKind
	Identity *Identity
}

// AuthProvider is the credential authority. The production implementation
// is local (bcrypt + signed tokens over the user table), but callers treat
// it as an external collaborator: sign-in either yields an identity or an
// error, and session state is only ever learned through Verify and the
// event stream.
type AuthProvider interface {
	// SignIn verifies credentials and establishes a session.
	// Returns ErrUnknownAccount or ErrBadCredentials on failure.
	SignIn(ctx context.Context, email, password string) (*Identity, error)
	// SignOut tears down the session for the given token.
	SignOut(ctx context.Context, token string) error
	// Verify resolves a session token to its identity, or ErrUnauthorized.
	Verify(ctx context.Context, token string) (*Identity, error)
	// Subscribe registers for session-change notifications. The returned
	// cancel func must be called to release the subscription.
	Subscribe() (<-chan SessionEvent, func())
}

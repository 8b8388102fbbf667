package handler

import (
	"context"
	"net/http"

	"github.com/jhalloran/inkwell/internal/domain"
)

type contextKey string

const userContextKey contextKey = "user"

// UserFromContext extracts the authenticated user from the request context.
// Returns nil if no user is authenticated.
func UserFromContext(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userContextKey).(*domain.User)
	return user
}

// RequireAuth is middleware that protects routes requiring authentication.
// It reads the auth_token cookie, verifies the session token, loads the user
// from storage, and injects it into the request context. Returns 401 for
// unauthenticated requests.
func RequireAuth(provider domain.AuthProvider, users domain.UserRepository, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := authenticateRequest(r, provider, users)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Not authenticated.")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin is middleware that protects routes requiring an admin user.
// Non-admin users receive 403; unauthenticated requests receive 401.
func RequireAdmin(provider domain.AuthProvider, users domain.UserRepository, next http.Handler) http.Handler {
	return RequireAuth(provider, users, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := UserFromContext(r.Context())
		if user == nil || !user.IsAdmin {
			writeError(w, http.StatusForbidden, "Admin privileges required.")
			return
		}
		next.ServeHTTP(w, r)
	}))
}

func authenticateRequest(r *http.Request, provider domain.AuthProvider, users domain.UserRepository) (*domain.User, error) {
	cookie, err := r.Cookie("auth_token")
	if err != nil {
		return nil, err
	}

	identity, err := provider.Verify(r.Context(), cookie.Value)
	if err != nil {
		return nil, err
	}

	user, err := users.GetByID(r.Context(), identity.UserID)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// SecurityHeaders sets common security response headers on every request.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/jhalloran/inkwell/internal/domain"
	"github.com/jhalloran/inkwell/internal/service"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	gate         *service.AdminGate
	provider     domain.AuthProvider
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(gate *service.AdminGate, provider domain.AuthProvider, cookieSecure bool) *AuthHandler {
	return &AuthHandler{gate: gate, provider: provider, cookieSecure: cookieSecure}
}

// HandleLogin processes a JSON login request. Only admin accounts are
// allowed past the gate; everyone else is signed out and rejected.
// POST /api/auth/login
// Request:  {"email":"...","password":"..."}
// Response: {"user": {...}}
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	session, err := h.gate.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusUnprocessableEntity, "Email and password are required.")
		case errors.Is(err, domain.ErrUnknownAccount):
			writeError(w, http.StatusUnauthorized, "No account found with this email address.")
		case errors.Is(err, domain.ErrBadCredentials):
			writeError(w, http.StatusUnauthorized, "The email or password you entered is incorrect.")
		case errors.Is(err, domain.ErrForbidden):
			writeError(w, http.StatusForbidden, "Access denied. Admin privileges are required.")
		case errors.Is(err, domain.ErrProfileUnavailable):
			writeError(w, http.StatusServiceUnavailable, "Unable to verify your account right now. Please try again.")
		case errors.Is(err, domain.ErrRateLimited):
			writeError(w, http.StatusTooManyRequests, "Too many login attempts. Please wait a moment and try again.")
		default:
			slog.Error("login", "error", err)
			writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		}
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    session.Identity.Token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400, // 24 hours
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"user": toUserDTO(session.Profile),
	})
}

// HandleLogout terminates the session and clears the auth cookie.
// POST /api/auth/logout
// Response: 204 No Content
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("auth_token"); err == nil {
		if err := h.provider.SignOut(r.Context(), cookie.Value); err != nil {
			slog.Error("sign out", "error", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	w.WriteHeader(http.StatusNoContent)
}

// HandleMe returns the currently authenticated user.
// GET /api/auth/me
// Response: {"user": {...}} or 401
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user": toUserDTO(user),
	})
}

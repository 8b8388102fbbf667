package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/jhalloran/inkwell/internal/domain"
	"github.com/jhalloran/inkwell/internal/service"
)

// UserHandler handles admin user management and profile endpoints.
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// HandleList returns all user accounts.
// GET /api/admin/users
// Response: {"users": [...]}
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListAll(r.Context())
	if err != nil {
		slog.Error("list users", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"users": toUserDTOs(users),
	})
}

// HandleCreate creates an account with a generated password. The
// plaintext password appears in this response and nowhere else; it is
// never stored or logged.
// POST /api/admin/users
// Request:  {"email":"...","displayName":"...","profilePicture":"...","isAdmin":bool}
// Response: {"user": {...}, "generatedPassword": "..."} with 201
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email          string `json:"email"`
		DisplayName    string `json:"displayName"`
		ProfilePicture string `json:"profilePicture"`
		IsAdmin        bool   `json:"isAdmin"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, password, err := h.users.Create(r.Context(), req.Email, req.DisplayName, req.ProfilePicture, req.IsAdmin)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			writeError(w, http.StatusConflict, "An account with that email already exists.")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.Error("create user", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"user":              toUserDTO(user),
		"generatedPassword": password,
	})
}

// HandleDelete removes an account. Admin accounts cannot be deleted.
// DELETE /api/admin/users/{id}
// Response: 204 No Content, 403 for admins, 404 for unknown IDs
func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Delete(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			writeError(w, http.StatusForbidden, "Admin accounts cannot be deleted.")
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found.")
			return
		}
		slog.Error("delete user", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleGetProfile returns the authenticated user's profile.
// GET /api/admin/profile
func (h *UserHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user": toUserDTO(user),
	})
}

// HandleUpdateProfile applies a partial update to the authenticated
// user's profile.
// PUT /api/admin/profile
// Request:  {"displayName":"...","bio":"...","profilePicture":"..."}
// Response: {"user": {...}}
func (h *UserHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	var req struct {
		DisplayName    *string `json:"displayName"`
		Bio            *string `json:"bio"`
		ProfilePicture *string `json:"profilePicture"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	updated, err := h.users.UpdateProfile(r.Context(), user.ID, domain.ProfileUpdate{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		AvatarURL:   req.ProfilePicture,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.Error("update profile", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update profile. Your previous details are unchanged.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user": toUserDTO(updated),
	})
}

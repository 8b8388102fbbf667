package handler

import (
	"net/http"

	"github.com/jhalloran/inkwell/internal/domain"
	"github.com/jhalloran/inkwell/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(
	mux *http.ServeMux,
	gate *service.AdminGate,
	provider domain.AuthProvider,
	posts *service.PostService,
	users *service.UserService,
	media *service.MediaService,
	userRepo domain.UserRepository,
	cookieSecure bool,
) {
	authHandler := NewAuthHandler(gate, provider, cookieSecure)
	postHandler := NewPostHandler(posts)
	userHandler := NewUserHandler(users)
	mediaHandler := NewMediaHandler(media)

	admin := func(h http.HandlerFunc) http.Handler {
		return RequireAdmin(provider, userRepo, h)
	}

	// Public.
	mux.HandleFunc("GET /healthz", HandleHealthz)
	mux.HandleFunc("GET /api/posts", postHandler.HandleList)
	mux.HandleFunc("GET /api/posts/{id}", postHandler.HandleGet)
	mux.HandleFunc("GET /media/{key}", mediaHandler.HandleServe)

	// Auth.
	mux.HandleFunc("POST /api/auth/login", authHandler.HandleLogin)
	mux.HandleFunc("POST /api/auth/logout", authHandler.HandleLogout)
	mux.Handle("GET /api/auth/me", RequireAuth(provider, userRepo, http.HandlerFunc(authHandler.HandleMe)))

	// Admin.
	mux.Handle("GET /api/admin/posts", admin(postHandler.HandleAdminList))
	mux.Handle("POST /api/admin/posts", admin(postHandler.HandleCreate))
	mux.Handle("GET /api/admin/posts/{id}", admin(postHandler.HandleGet))
	mux.Handle("PATCH /api/admin/posts/{id}", admin(postHandler.HandleUpdate))
	mux.Handle("DELETE /api/admin/posts/{id}", admin(postHandler.HandleDelete))
	mux.Handle("GET /api/admin/stats", admin(postHandler.HandleStats))

	mux.Handle("GET /api/admin/users", admin(userHandler.HandleList))
	mux.Handle("POST /api/admin/users", admin(userHandler.HandleCreate))
	mux.Handle("DELETE /api/admin/users/{id}", admin(userHandler.HandleDelete))

	mux.Handle("GET /api/admin/profile", admin(userHandler.HandleGetProfile))
	mux.Handle("PUT /api/admin/profile", admin(userHandler.HandleUpdateProfile))

	mux.Handle("POST /api/admin/media", admin(mediaHandler.HandleUpload))
	mux.Handle("DELETE /api/admin/media/{key}", admin(mediaHandler.HandleDelete))
}

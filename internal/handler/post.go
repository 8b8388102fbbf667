package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/jhalloran/inkwell/internal/domain"
	"github.com/jhalloran/inkwell/internal/service"
)

// PostHandler handles both the public reading surface and the admin
// post-management endpoints.
type PostHandler struct {
	posts *service.PostService
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(posts *service.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// HandleList returns published posts, optionally narrowed by a search
// query and a category filter.
// GET /api/posts?q=...&category=...
// Response: {"posts": [...]}
func (h *PostHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")

	posts, err := h.posts.Search(r.Context(), query, category)
	if err != nil {
		slog.Error("search posts", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"posts": toPostDTOs(posts),
	})
}

// HandleGet returns a single post by ID. A missing post is an expected
// outcome of following a stale link, so it renders as a plain 404.
// GET /api/posts/{id}
// Response: {"post": {...}} or 404
func (h *PostHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Post not found.")
			return
		}
		slog.Error("get post", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"post": toPostDTO(post),
	})
}

// HandleAdminList returns every post, drafts included, newest first.
// GET /api/admin/posts
func (h *PostHandler) HandleAdminList(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.ListAll(r.Context())
	if err != nil {
		slog.Error("list posts", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"posts": toPostDTOs(posts),
	})
}

type postRequest struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Excerpt   string   `json:"excerpt"`
	Author    string   `json:"author"`
	Category  string   `json:"category"`
	Tags      []string `json:"tags"`
	ImageURL  string   `json:"imageUrl"`
	Published bool     `json:"published"`
}

// HandleCreate creates a new post.
// POST /api/admin/posts
// Response: {"post": {...}} with 201
func (h *PostHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	post, err := h.posts.Create(r.Context(), service.PostInput{
		Title:         req.Title,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		Author:        req.Author,
		Category:      req.Category,
		Tags:          req.Tags,
		CoverImageURL: req.ImageURL,
		Published:     req.Published,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.Error("create post", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"post": toPostDTO(post),
	})
}

type postPatchRequest struct {
	Title     *string  `json:"title"`
	Content   *string  `json:"content"`
	Excerpt   *string  `json:"excerpt"`
	Author    *string  `json:"author"`
	Category  *string  `json:"category"`
	Tags      []string `json:"tags"`
	ImageURL  *string  `json:"imageUrl"`
	Published *bool    `json:"published"`
}

// HandleUpdate applies a partial update; absent fields stay untouched.
// PATCH /api/admin/posts/{id}
// Response: {"post": {...}}
func (h *PostHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req postPatchRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	post, err := h.posts.Update(r.Context(), r.PathValue("id"), domain.PostUpdate{
		Title:         req.Title,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		Author:        req.Author,
		Category:      req.Category,
		Tags:          req.Tags,
		CoverImageURL: req.ImageURL,
		Published:     req.Published,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Post not found.")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.Error("update post", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"post": toPostDTO(post),
	})
}

// HandleDelete removes a post. Deleting an unknown ID is a no-op.
// DELETE /api/admin/posts/{id}
// Response: 204 No Content
func (h *PostHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.posts.Delete(r.Context(), r.PathValue("id")); err != nil {
		slog.Error("delete post", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleStats returns post counts for the admin dashboard.
// GET /api/admin/stats
// Response: {"stats": {...}}
func (h *PostHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.posts.Stats(r.Context())
	if err != nil {
		slog.Error("post stats", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"stats": statsDTO{
			TotalPosts:     stats.Total,
			PublishedPosts: stats.Published,
			DraftPosts:     stats.Drafts,
		},
	})
}

package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/jhalloran/inkwell/internal/handler"
	"github.com/jhalloran/inkwell/internal/repository/sqlite"
	"github.com/jhalloran/inkwell/internal/service"
)

const testJWTSecret = "test-secret-for-handler-tests-0123456789"

type testEnv struct {
	mux   *http.ServeMux
	db    *sqlite.DB
	auth  *service.AuthService
	users *service.UserService
	posts *service.PostService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	auth := service.NewAuthService(db.Users(), testJWTSecret, 4)
	limiter := service.NewAttemptLimiter(1, 100)
	gate := service.NewAdminGate(auth, db.Users(), limiter)
	posts := service.NewPostService(db.Posts())
	users := service.NewUserService(db.Users(), auth)
	media := service.NewMediaService(db.Media(), db.FileStore())

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, gate, auth, posts, users, media, db.Users(), false)

	return &testEnv{mux: mux, db: db, auth: auth, users: users, posts: posts}
}

// createAccount provisions a user and returns the generated password.
func (e *testEnv) createAccount(t *testing.T, email string, isAdmin bool) string {
	t.Helper()
	_, password, err := e.users.Create(context.Background(), email, "Test User", "", isAdmin)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return password
}

// signIn establishes a session directly and returns the token.
func (e *testEnv) signIn(t *testing.T, email, password string) string {
	t.Helper()
	identity, err := e.auth.SignIn(context.Background(), email, password)
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	return identity.Token
}

func TestRequireAuth_ValidToken(t *testing.T) {
	env := newTestEnv(t)
	password := env.createAccount(t, "valid@example.com", false)
	token := env.signIn(t, "valid@example.com", password)

	var gotUser string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := handler.UserFromContext(r.Context())
		if user != nil {
			gotUser = user.Email
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	w := httptest.NewRecorder()

	handler.RequireAuth(env.auth, env.db.Users(), inner).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotUser != "valid@example.com" {
		t.Fatalf("expected user 'valid@example.com', got %q", gotUser)
	}
}

func TestRequireAuth_MissingCookie(t *testing.T) {
	env := newTestEnv(t)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()

	handler.RequireAuth(env.auth, env.db.Users(), inner).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireAuth_GarbageToken(t *testing.T) {
	env := newTestEnv(t)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: "not-a-token"})
	w := httptest.NewRecorder()

	handler.RequireAuth(env.auth, env.db.Users(), inner).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireAdmin_NonAdminForbidden(t *testing.T) {
	env := newTestEnv(t)
	password := env.createAccount(t, "reader@example.com", false)
	token := env.signIn(t, "reader@example.com", password)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	w := httptest.NewRecorder()

	handler.RequireAdmin(env.auth, env.db.Users(), inner).ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestRequireAdmin_AdminAllowed(t *testing.T) {
	env := newTestEnv(t)
	password := env.createAccount(t, "admin@example.com", true)
	token := env.signIn(t, "admin@example.com", password)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	w := httptest.NewRecorder()

	handler.RequireAdmin(env.auth, env.db.Users(), inner).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	handler.SecurityHeaders(inner).ServeHTTP(w, req)

	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("expected nosniff, got %q", got)
	}
	if got := w.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Fatalf("expected DENY, got %q", got)
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jhalloran/inkwell/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// AuthService is the local credential authority. It verifies passwords
// against bcrypt hashes in the user table, issues signed session tokens,
// and broadcasts session-change events to subscribers. It satisfies
// domain.AuthProvider so the rest of the system treats it as an external
// collaborator.
type AuthService struct {
	users      domain.UserRepository
	jwtSecret  []byte
	bcryptCost int

	mu   sync.Mutex
	subs map[string]chan domain.SessionEvent
}

var _ domain.AuthProvider = (*AuthService)(nil)

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, jwtSecret string, bcryptCost int) *AuthService {
	return &AuthService{
		users:      users,
		jwtSecret:  []byte(jwtSecret),
		bcryptCost: bcryptCost,
		subs:       make(map[string]chan domain.SessionEvent),
	}
}

// SignIn verifies credentials and establishes a session. It distinguishes
// an unknown account from a wrong password so the gate can surface a
// precise message.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*domain.Identity, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnknownAccount
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrBadCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	identity := &domain.Identity{UserID: user.ID, Email: user.Email, Token: token}
	s.publish(domain.SessionEvent{Kind: domain.SessionSignedIn, Identity: identity})
	return identity, nil
}

// SignOut tears down the session for the given token and notifies
// subscribers. An already-invalid token is not an error; the session is
// gone either way.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	s.publish(domain.SessionEvent{Kind: domain.SessionSignedOut})
	return nil
}

// Verify resolves a session token to its identity.
func (s *AuthService) Verify(ctx context.Context, token string) (*domain.Identity, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, domain.ErrUnauthorized
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, domain.ErrUnauthorized
	}

	email, _ := claims["email"].(string)
	return &domain.Identity{UserID: sub, Email: email, Token: token}, nil
}

// Subscribe registers for session-change notifications. Events are dropped
// for subscribers that are not keeping up rather than blocking sign-in.
func (s *AuthService) Subscribe() (<-chan domain.SessionEvent, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	ch := make(chan domain.SessionEvent, 8)
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

// HashPassword hashes a plaintext password at the configured cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *AuthService) publish(event domain.SessionEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ch := range s.subs {
		select {
		case ch <- event:
		default:
		}
	}
}

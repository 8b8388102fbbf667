package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
	"github.com/jhalloran/inkwell/internal/domain"
)

// passwordAlphabet is the character set for generated passwords.
const passwordAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%&*"

// generatedPasswordLength is the fixed length of admin-generated passwords.
const generatedPasswordLength = 12

// UserService handles user management for the admin area: listing,
// creation with a generated password, deletion, and profile updates.
type UserService struct {
	users domain.UserRepository
	auth  *AuthService
}

// NewUserService creates a new UserService.
func NewUserService(users domain.UserRepository, auth *AuthService) *UserService {
	return &UserService{users: users, auth: auth}
}

// ListAll returns all users.
func (s *UserService) ListAll(ctx context.Context) ([]domain.User, error) {
	return s.users.ListAll(ctx)
}

// GetByID returns a user by ID.
func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// Create adds a new user with a freshly generated password. The plaintext
// password is returned exactly once for out-of-band delivery; only its
// bcrypt hash is persisted.
func (s *UserService) Create(ctx context.Context, email, displayName, avatarURL string, isAdmin bool) (*domain.User, string, error) {
	email = strings.TrimSpace(email)
	displayName = strings.TrimSpace(displayName)
	if email == "" || displayName == "" {
		return nil, "", fmt.Errorf("%w: email and display name are required", domain.ErrInvalidInput)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, "", fmt.Errorf("check existing email: %w", err)
	}

	password, err := GeneratePassword(generatedPasswordLength)
	if err != nil {
		return nil, "", fmt.Errorf("generate password: %w", err)
	}

	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  displayName,
		AvatarURL:    avatarURL,
		IsAdmin:      isAdmin,
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}
	return user, password, nil
}

// Delete removes a user. Admin-flagged users cannot be deleted through
// this path.
func (s *UserService) Delete(ctx context.Context, id string) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if user.IsAdmin {
		return fmt.Errorf("%w: admin users cannot be deleted", domain.ErrForbidden)
	}

	return s.users.Delete(ctx, id)
}

// UpdateProfile merges the editable profile fields into the given user's
// record. The admin flag is untouchable through this path.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, upd domain.ProfileUpdate) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	applyProfileUpdate(user, upd)
	if user.DisplayName == "" {
		return nil, fmt.Errorf("%w: display name is required", domain.ErrInvalidInput)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

// GeneratePassword produces a password of the given length drawn uniformly
// at random from the fixed alphabet.
func GeneratePassword(length int) (string, error) {
	max := big.NewInt(int64(len(passwordAlphabet)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = passwordAlphabet[n.Int64()]
	}
	return string(out), nil
}

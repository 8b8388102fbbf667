package domain

import (
	"context"
	"time"
)

// User is a registered user of the application. The profile fields
// (DisplayName, Bio, AvatarURL) are user-editable; IsAdmin gates access
// to the content-management area and is never writable through profile
// update paths.
type User struct {
	ID           string
	Email        string
	DisplayName  string
	Bio          string
	AvatarURL    string
	IsAdmin      bool
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProfileUpdate carries a partial-field merge for a user's editable profile.
// Nil fields are left unchanged.
type ProfileUpdate struct {
	DisplayName *string
	Bio         *string
	AvatarURL   *string
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ListAll(ctx context.Context) ([]User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

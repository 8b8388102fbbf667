package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrUnknownAccount     = errors.New("no account with this email")
	ErrBadCredentials     = errors.New("incorrect email or password")
	ErrProfileUnavailable = errors.New("profile could not be resolved")
	ErrRateLimited        = errors.New("too many attempts")
)

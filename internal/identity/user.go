package identity

import (
	"context"
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidUsername    = errors.New("invalid username")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrWeakPassword       = errors.New("password does not meet requirements")
)

// User is a registered account. The username doubles as the tenant identity
// for the task store: unique, immutable once created.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Repository defines the interface for user storage
type Repository interface {
	Create(ctx context.Context, user *User, passwordHash string) error
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetPasswordHash(ctx context.Context, username string) (string, error)
	// EmailByUsername returns ErrUserNotFound when the tenant has no
	// account record; callers treat that as a normal outcome.
	EmailByUsername(ctx context.Context, username string) (string, error)
}

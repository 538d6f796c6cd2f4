// Copyright 2026 The TaskEase Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/taskease/taskease/internal/identity"
)

// UserRepository implements identity.Repository
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user with credentials
func (r *UserRepository) Create(ctx context.Context, user *identity.User, passwordHash string) error {
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO users (id, username, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, user.ID, user.Username, user.Email, passwordHash, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return identity.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*identity.User, error) {
	var user identity.User
	err := r.db.pool.QueryRow(ctx, `
		SELECT id, username, email, created_at, updated_at
		FROM users
		WHERE username = $1
	`, username).Scan(&user.ID, &user.Username, &user.Email, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, identity.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetPasswordHash retrieves the stored credential hash
func (r *UserRepository) GetPasswordHash(ctx context.Context, username string) (string, error) {
	var hash string
	err := r.db.pool.QueryRow(ctx, `
		SELECT password_hash FROM users WHERE username = $1
	`, username).Scan(&hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", identity.ErrUserNotFound
		}
		return "", fmt.Errorf("failed to get credentials: %w", err)
	}
	return hash, nil
}

// EmailByUsername resolves a tenant's notification address
func (r *UserRepository) EmailByUsername(ctx context.Context, username string) (string, error) {
	var email string
	err := r.db.pool.QueryRow(ctx, `
		SELECT email FROM users WHERE username = $1
	`, username).Scan(&email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", identity.ErrUserNotFound
		}
		return "", fmt.Errorf("failed to get email: %w", err)
	}
	return email, nil
}

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

package identity

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskease/taskease/internal/audit"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{2,31}$`)
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// Service provides registration, authentication and recipient lookup.
type Service struct {
	repo        Repository
	hasher      *PasswordHasher
	tokens      *TokenIssuer
	auditLogger audit.Logger
}

// NewService creates a new identity service
func NewService(repo Repository, hasher *PasswordHasher, tokens *TokenIssuer, auditLogger audit.Logger) *Service {
	return &Service{
		repo:        repo,
		hasher:      hasher,
		tokens:      tokens,
		auditLogger: auditLogger,
	}
}

// Register creates an account. The username becomes the tenant identity and
// can never change afterwards.
func (s *Service) Register(ctx context.Context, username, email, password string) (*User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.TrimSpace(email)

	if !usernamePattern.MatchString(username) {
		return nil, ErrInvalidUsername
	}
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if len(password) < 8 {
		return nil, ErrWeakPassword
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &User{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Username:  username,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, user, hash); err != nil {
		if errors.Is(err, ErrUserAlreadyExists) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeUserRegistered,
		Tenant:   username,
		Resource: user.ID,
	})

	return user, nil
}

// Authenticate verifies credentials and issues a bearer token.
func (s *Service) Authenticate(ctx context.Context, username, password string) (string, *User, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// Same failure shape as a bad password, no account probing.
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}

	hash, err := s.repo.GetPasswordHash(ctx, username)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load credentials: %w", err)
	}

	ok, err := s.hasher.Verify(password, hash)
	if err != nil || !ok {
		s.auditLogger.Log(ctx, audit.Event{
			Type:   audit.TypeLoginFailed,
			Tenant: username,
		})
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(username)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeLoginSuccess,
		Tenant:   username,
		Resource: user.ID,
	})

	return token, user, nil
}

// VerifyToken resolves a bearer token to the tenant it was issued for.
func (s *Service) VerifyToken(token string) (string, error) {
	return s.tokens.Verify(token)
}

// EmailFor implements the recipient directory for the reminder scheduler.
// An unknown tenant yields found=false with no error: a tenant without a
// deliverable address is an expected, reportable condition.
func (s *Service) EmailFor(ctx context.Context, username string) (string, bool, error) {
	email, err := s.repo.EmailByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to look up recipient email: %w", err)
	}
	if email == "" {
		return "", false, nil
	}
	return email, true, nil
}

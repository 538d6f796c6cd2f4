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
	"testing"
	"time"

	"github.com/taskease/taskease/internal/audit"
)

// MockUserRepository is a simple in-memory implementation of Repository
type MockUserRepository struct {
	users  map[string]*User
	hashes map[string]string
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:  make(map[string]*User),
		hashes: make(map[string]string),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *User, passwordHash string) error {
	if _, ok := m.users[user.Username]; ok {
		return ErrUserAlreadyExists
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return ErrUserAlreadyExists
		}
	}
	m.users[user.Username] = user
	m.hashes[user.Username] = passwordHash
	return nil
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	u, ok := m.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (m *MockUserRepository) GetPasswordHash(ctx context.Context, username string) (string, error) {
	h, ok := m.hashes[username]
	if !ok {
		return "", ErrUserNotFound
	}
	return h, nil
}

func (m *MockUserRepository) EmailByUsername(ctx context.Context, username string) (string, error) {
	u, ok := m.users[username]
	if !ok {
		return "", ErrUserNotFound
	}
	return u.Email, nil
}

func newTestService() (*Service, *MockUserRepository) {
	repo := NewMockUserRepository()
	hasher := NewPasswordHasher(65536, 3, 4, 16, 32)
	tokens := NewTokenIssuer("test-secret-at-least-32-bytes-long", time.Hour)
	return NewService(repo, hasher, tokens, audit.NewSlogLogger()), repo
}

// TestPurpose: Validates registration input rules and duplicate rejection.
// Scope: Unit Test
// Security: Account provisioning and tenant identity immutability
// Expected: Valid input creates an account; malformed usernames, emails,
// short passwords and duplicates are rejected with the matching sentinel.
func TestIdentity_Service_Register(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	user, err := s.Register(ctx, "Alice", "alice@example.com", "SecurePassword123")
	if err != nil {
		t.Fatalf("failed to register: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("expected lowercased username, got %q", user.Username)
	}
	if user.ID == "" {
		t.Error("expected a generated user ID")
	}

	cases := []struct {
		name     string
		username string
		email    string
		password string
		want     error
	}{
		{"username too short", "ab", "ab@example.com", "SecurePassword123", ErrInvalidUsername},
		{"username with spaces", "a lice", "alice2@example.com", "SecurePassword123", ErrInvalidUsername},
		{"bad email", "bob", "not-an-email", "SecurePassword123", ErrInvalidEmail},
		{"short password", "bob", "bob@example.com", "short", ErrWeakPassword},
		{"duplicate username", "alice", "other@example.com", "SecurePassword123", ErrUserAlreadyExists},
		{"duplicate email", "bob", "alice@example.com", "SecurePassword123", ErrUserAlreadyExists},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Register(ctx, tc.username, tc.email, tc.password)
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

// TestPurpose: Validates the authentication flow, including success, wrong
// password and unknown account.
// Scope: Unit Test
// Security: Authentication and account probing resistance
// Expected: Correct credentials yield a verifiable token; wrong password and
// unknown username fail with the same sentinel.
func TestIdentity_Service_Authenticate(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	_, err := s.Register(ctx, "alice", "alice@example.com", "SecurePassword123")
	if err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	token, user, err := s.Authenticate(ctx, "alice", "SecurePassword123")
	if err != nil {
		t.Fatalf("expected successful authentication, got %v", err)
	}
	if user == nil || user.Username != "alice" {
		t.Fatalf("unexpected user: %+v", user)
	}

	subject, err := s.VerifyToken(token)
	if err != nil {
		t.Fatalf("failed to verify issued token: %v", err)
	}
	if subject != "alice" {
		t.Errorf("expected token subject alice, got %q", subject)
	}

	if _, _, err := s.Authenticate(ctx, "alice", "WrongPassword999"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, _, err := s.Authenticate(ctx, "nobody", "SecurePassword123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestIdentity_Service_VerifyToken_Garbage(t *testing.T) {
	s, _ := newTestService()

	if _, err := s.VerifyToken("not-a-token"); err == nil {
		t.Error("expected error for malformed token")
	}

	// A token signed with a different secret must be rejected.
	other := NewTokenIssuer("a-completely-different-signing-key", time.Hour)
	forged, err := other.Issue("alice")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	if _, err := s.VerifyToken(forged); err == nil {
		t.Error("expected error for token with wrong signature")
	}
}

func TestIdentity_Service_EmailFor(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	_, err := s.Register(ctx, "alice", "alice@example.com", "SecurePassword123")
	if err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	email, found, err := s.EmailFor(ctx, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found || email != "alice@example.com" {
		t.Errorf("expected alice@example.com, got %q found=%v", email, found)
	}

	// An unknown tenant is a normal miss, not an error.
	_, found, err = s.EmailFor(ctx, "nobody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("expected found=false for unknown tenant")
	}
}

func TestPasswordHasher_RoundTrip(t *testing.T) {
	hasher := NewPasswordHasher(65536, 3, 4, 16, 32)

	hash, err := hasher.Hash("SecurePassword123")
	if err != nil {
		t.Fatalf("failed to hash: %v", err)
	}

	ok, err := hasher.Verify("SecurePassword123", hash)
	if err != nil || !ok {
		t.Errorf("expected match, got ok=%v err=%v", ok, err)
	}

	ok, err = hasher.Verify("WrongPassword999", hash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected mismatch for wrong password")
	}

	// Two hashes of the same password differ because of the random salt.
	hash2, err := hasher.Hash("SecurePassword123")
	if err != nil {
		t.Fatalf("failed to hash: %v", err)
	}
	if hash == hash2 {
		t.Error("expected distinct salted hashes")
	}
}

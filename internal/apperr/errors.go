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

// Package apperr defines the application error taxonomy. Handlers and the
// chat service render user-facing messages from the Kind, never from a raw
// collaborator error.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an application error.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindCollaborator Kind = "collaborator"
)

// Error is an application-level error with a classification kind and a
// message safe to show to end users. The wrapped cause, if any, is for
// logs only.
type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.cause
}

// Validation creates a validation error (malformed identifier, missing
// required capture).
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// NotFound creates a not-found error (well-formed identifier, no match).
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Conflict creates a conflict error (duplicate occurrence date/time on add).
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Collaborator wraps a failure from an external collaborator (task store,
// completion, notifier, directory).
func Collaborator(message string, cause error) *Error {
	return &Error{Kind: KindCollaborator, Message: message, cause: cause}
}

// KindOf returns the Kind of err, or KindCollaborator when err is not an
// application error. A nil err has no kind and returns "".
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindCollaborator
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

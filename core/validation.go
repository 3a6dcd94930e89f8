// Copyright 2025 Variant Lab
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


package core

import (
	"fmt"
	"time"
)

// ValidateMessage validates a Message according to domain rules.
//
// Validation rules:
//   - Contents must not be empty
//   - Role must be valid (User or Assistant)
//   - CreatedAt must not be in the future
//
// NOT validated:
//   - Id (0 is valid from database sequences)
//   - SessionId (resolved by the message log)
func ValidateMessage(message *Message) error {
	if message == nil {
		return fmt.Errorf("%w: message is nil", ErrInvalidMessage)
	}

	if message.Contents == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, ErrEmptyContent)
	}

	if err := ValidateRole(message.Role); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}

	if !IsValidTimestamp(message.CreatedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateSession validates a Session according to domain rules.
//
// Validation rules:
//   - Title must not be empty (DefaultTitle counts as a title)
//   - Kind must be a known SessionKind
func ValidateSession(session *Session) error {
	if session == nil {
		return fmt.Errorf("%w: session is nil", ErrInvalidSession)
	}

	if session.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSession, ErrEmptyTitle)
	}

	if err := ValidateSessionKind(session.Kind); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}

	return nil
}

// ValidateRole checks that a Role is one of the defined values.
func ValidateRole(role Role) error {
	switch role {
	case RoleUser, RoleAssistant:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrInvalidRole, role)
	}
}

// ValidateSessionKind checks that a SessionKind is one of the defined values.
func ValidateSessionKind(kind SessionKind) error {
	switch kind {
	case KindGeneral, KindFileAnalysis, KindNutrition:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrInvalidSessionKind, kind)
	}
}

// IsValidTimestamp reports whether the timestamp is not in the future.
// A small clock-skew allowance is applied.
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now().Add(time.Minute))
}

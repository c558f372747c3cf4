// Copyright 2026 Wanderlens Labs
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

import "errors"

// Failure taxonomy shared across the engine. Callers branch on these with
// errors.Is; wrapped messages carry the session/video/place concerned.
var (
	// ErrNotFound indicates an unknown or expired session, or an unknown
	// place or video within a session.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates malformed caller input.
	ErrValidation = errors.New("validation failed")

	// ErrExternalUnavailable indicates a transcript fetch or provider call
	// failed after the allowed attempts.
	ErrExternalUnavailable = errors.New("external service unavailable")

	// ErrTimeout indicates a call exceeded its deadline.
	ErrTimeout = errors.New("deadline exceeded")

	// ErrInvalidResponse indicates model output failed schema validation
	// after the repair attempt.
	ErrInvalidResponse = errors.New("invalid model response")
)

// Field-level validation errors, wrapped under ErrValidation by the
// validation functions.
var (
	// ErrInvalidCategory indicates an unrecognized place category.
	ErrInvalidCategory = errors.New("invalid place category")

	// ErrInvalidPreference indicates an unrecognized preference value.
	ErrInvalidPreference = errors.New("invalid preference")

	// ErrInvalidRole indicates an unrecognized chat turn role.
	ErrInvalidRole = errors.New("invalid role")

	// ErrEmptyPlaceName indicates the place Name field is empty.
	ErrEmptyPlaceName = errors.New("place name cannot be empty")

	// ErrEmptyContent indicates the chat turn content is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrEmptyVideoRef indicates the place carries no originating video id.
	ErrEmptyVideoRef = errors.New("place video reference cannot be empty")
)

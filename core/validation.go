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

import (
	"fmt"
	"strings"
)

// ParsePlaceCategory maps a string onto a PlaceCategory.
// Returns ErrInvalidCategory (wrapped under ErrValidation) for unknown values.
func ParsePlaceCategory(s string) (PlaceCategory, error) {
	c := PlaceCategory(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range PlaceCategories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %w: %q", ErrValidation, ErrInvalidCategory, s)
}

// ParsePreference maps a string onto a Preference.
// Returns ErrInvalidPreference (wrapped under ErrValidation) for unknown values.
func ParsePreference(s string) (Preference, error) {
	switch Preference(strings.ToLower(strings.TrimSpace(s))) {
	case PreferenceNeutral:
		return PreferenceNeutral, nil
	case PreferenceInterested:
		return PreferenceInterested, nil
	case PreferenceNotInterested:
		return PreferenceNotInterested, nil
	}
	return "", fmt.Errorf("%w: %w: %q", ErrValidation, ErrInvalidPreference, s)
}

// ValidatePlace validates a Place according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - Category must be a known category
//   - VideoID must not be empty
//
// NOT validated here:
//   - that VideoID resolves inside a session (the session store enforces that
//     when the place is appended)
func ValidatePlace(place *Place) error {
	if place == nil {
		return fmt.Errorf("%w: place is nil", ErrValidation)
	}
	if strings.TrimSpace(place.Name) == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyPlaceName)
	}
	if _, err := ParsePlaceCategory(string(place.Category)); err != nil {
		return fmt.Errorf("place %q: %w", place.Name, err)
	}
	if place.VideoID == "" {
		return fmt.Errorf("%w: place %q: %w", ErrValidation, place.Name, ErrEmptyVideoRef)
	}
	return nil
}

// ValidateChatTurn validates a ChatTurn according to domain rules.
//
// Validation rules:
//   - Role must be user or assistant
//   - Content must not be empty
//
// Referenced place ids are checked against the owning session by the
// session store on append.
func ValidateChatTurn(turn *ChatTurn) error {
	if turn == nil {
		return fmt.Errorf("%w: chat turn is nil", ErrValidation)
	}
	if turn.Role != RoleUser && turn.Role != RoleAssistant {
		return fmt.Errorf("%w: %w: %q", ErrValidation, ErrInvalidRole, turn.Role)
	}
	if strings.TrimSpace(turn.Content) == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyContent)
	}
	return nil
}

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


package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/wanderlens/wanderlens/core"
)

// Failure classification exposed to callers so they can decide retry
// policy. The gateway itself never retries.
var (
	// ErrRateLimited indicates the backend rejected the call for quota or
	// rate reasons.
	ErrRateLimited = errors.New("rate limited")

	// ErrAuthFailure indicates a missing or rejected credential.
	ErrAuthFailure = errors.New("authentication failed")

	// ErrUnavailable indicates the backend could not be reached or
	// answered with a server-side failure.
	ErrUnavailable = errors.New("provider unavailable")

	// ErrUnknownProvider indicates the provider id is not registered.
	// A bad provider id is caller input, so it carries the validation
	// sentinel and maps to a client error at the API boundary.
	ErrUnknownProvider = fmt.Errorf("%w: unknown provider", core.ErrValidation)

	// ErrTimeout and ErrInvalidResponse are shared with the engine-wide
	// taxonomy so errors.Is works across package boundaries.
	ErrTimeout         = core.ErrTimeout
	ErrInvalidResponse = core.ErrInvalidResponse
)

// rate-limit, auth and availability markers seen in backend error strings.
// Backend SDKs do not expose typed errors for these consistently, so
// classification falls back to substring matching.
var (
	rateLimitMarkers = []string{
		"429",
		"rate limit",
		"rate_limit",
		"too many requests",
		"quota",
	}
	authMarkers = []string{
		"401",
		"403",
		"unauthorized",
		"forbidden",
		"api key",
		"authentication",
		"invalid x-api-key",
	}
	unavailableMarkers = []string{
		"500",
		"502",
		"503",
		"504",
		"connection refused",
		"connection reset",
		"no such host",
		"overloaded",
	}
)

// Classify maps a raw backend error onto the gateway taxonomy. The
// original error is preserved in the chain for logging.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.Join(ErrTimeout, err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	msg := strings.ToLower(err.Error())
	for _, m := range rateLimitMarkers {
		if strings.Contains(msg, m) {
			return errors.Join(ErrRateLimited, err)
		}
	}
	for _, m := range authMarkers {
		if strings.Contains(msg, m) {
			return errors.Join(ErrAuthFailure, err)
		}
	}
	for _, m := range unavailableMarkers {
		if strings.Contains(msg, m) {
			return errors.Join(ErrUnavailable, err)
		}
	}
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline") {
		return errors.Join(ErrTimeout, err)
	}
	return errors.Join(ErrUnavailable, err)
}

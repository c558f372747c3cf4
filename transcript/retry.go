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


package transcript

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/wanderlens/wanderlens/core"
)

const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = 500 * time.Millisecond
)

// RetryingFetcher wraps a Fetcher with bounded exponential-backoff
// retries. Only transient failures (ErrExternalUnavailable) are
// retried; validation errors and context cancellation fail immediately.
type RetryingFetcher struct {
	inner       Fetcher
	maxAttempts int
	baseDelay   time.Duration
	logger      *slog.Logger
}

// NewRetryingFetcher wraps inner with the default retry policy.
func NewRetryingFetcher(inner Fetcher) *RetryingFetcher {
	return &RetryingFetcher{
		inner:       inner,
		maxAttempts: defaultMaxAttempts,
		baseDelay:   defaultBaseDelay,
		logger:      slog.Default().With("component", "transcript-retry"),
	}
}

// Fetch delegates to the inner fetcher, retrying transient failures.
func (r *RetryingFetcher) Fetch(ctx context.Context, videoID string) (*core.Video, error) {
	var video *core.Video
	err := retryWithBackoff(ctx, func() error {
		var err error
		video, err = r.inner.Fetch(ctx, videoID)
		return err
	}, r.maxAttempts, r.baseDelay, r.logger)
	if err != nil {
		return nil, err
	}
	return video, nil
}

// retryWithBackoff retries an operation with exponential backoff.
// maxAttempts: maximum number of attempts (must be > 0)
// baseDelay: base delay between retries (doubles on each retry)
// Returns the error from the last attempt if all attempts fail.
func retryWithBackoff(ctx context.Context, operation func() error, maxAttempts int, baseDelay time.Duration, logger *slog.Logger) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		// Check context before attempting
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		lastErr = operation()
		if lastErr == nil {
			if attempt > 1 {
				logger.Debug("operation succeeded after retry", "attempt", attempt)
			}
			return nil
		}
		if !retryable(lastErr) {
			return lastErr
		}

		logger.Debug("operation failed, will retry", "attempt", attempt, "maxAttempts", maxAttempts, "error", lastErr)

		// Don't sleep after the last attempt
		if attempt == maxAttempts {
			break
		}

		// Exponential backoff: baseDelay * 2^(attempt-1)
		delay := baseDelay
		for i := 1; i < attempt; i++ {
			delay *= 2
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return lastErr
}

func retryable(err error) bool {
	return errors.Is(err, core.ErrExternalUnavailable)
}

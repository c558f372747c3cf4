package ai

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, Classify(nil))
	})

	t.Run("deadline exceeded becomes timeout", func(t *testing.T) {
		err := Classify(fmt.Errorf("calling model: %w", context.DeadlineExceeded))
		assert.ErrorIs(t, err, ErrTimeout)
	})

	t.Run("cancellation passes through unclassified", func(t *testing.T) {
		err := Classify(context.Canceled)
		assert.ErrorIs(t, err, context.Canceled)
		assert.NotErrorIs(t, err, ErrTimeout)
		assert.NotErrorIs(t, err, ErrUnavailable)
	})

	t.Run("rate limit markers", func(t *testing.T) {
		for _, msg := range []string{
			"API returned 429",
			"rate limit exceeded",
			"you have run out of quota",
		} {
			err := Classify(errors.New(msg))
			assert.ErrorIs(t, err, ErrRateLimited, msg)
		}
	})

	t.Run("auth markers", func(t *testing.T) {
		for _, msg := range []string{
			"401 Unauthorized",
			"invalid api key provided",
			"invalid x-api-key",
		} {
			err := Classify(errors.New(msg))
			assert.ErrorIs(t, err, ErrAuthFailure, msg)
		}
	})

	t.Run("availability markers", func(t *testing.T) {
		for _, msg := range []string{
			"502 Bad Gateway",
			"dial tcp: connection refused",
			"anthropic: overloaded",
		} {
			err := Classify(errors.New(msg))
			assert.ErrorIs(t, err, ErrUnavailable, msg)
		}
	})

	t.Run("timeout text without typed error", func(t *testing.T) {
		err := Classify(errors.New("client timeout waiting for response"))
		assert.ErrorIs(t, err, ErrTimeout)
	})

	t.Run("unknown errors default to unavailable", func(t *testing.T) {
		err := Classify(errors.New("something odd happened"))
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("original error stays in the chain", func(t *testing.T) {
		cause := errors.New("rate limit exceeded")
		err := Classify(cause)
		assert.ErrorIs(t, err, cause)
	})
}

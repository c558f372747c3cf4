package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderlens/wanderlens/core"
)

// stubProvider is a minimal in-package test double. The full scriptable
// mock lives in ai/mock; it cannot be used here without an import cycle.
type stubProvider struct {
	generate func(ctx context.Context, req *Request) (*Result, error)
	closed   bool
}

func (s *stubProvider) Generate(ctx context.Context, req *Request) (*Result, error) {
	return s.generate(ctx, req)
}

func (s *stubProvider) Close() error {
	s.closed = true
	return nil
}

func TestGatewayRegisterAndProviders(t *testing.T) {
	g := NewGateway(time.Second)
	assert.Empty(t, g.Providers())

	g.Register("openai", &stubProvider{})
	g.Register("anthropic", &stubProvider{})

	assert.Equal(t, []string{"anthropic", "openai"}, g.Providers())
}

func TestGatewayInvoke(t *testing.T) {
	t.Run("routes to the named provider", func(t *testing.T) {
		g := NewGateway(time.Second)
		g.Register("openai", &stubProvider{
			generate: func(ctx context.Context, req *Request) (*Result, error) {
				return &Result{Content: "hello"}, nil
			},
		})

		res, err := g.Invoke(context.Background(), "openai", &Request{})
		require.NoError(t, err)
		assert.Equal(t, "hello", res.Content)
	})

	t.Run("unknown provider id", func(t *testing.T) {
		g := NewGateway(time.Second)
		_, err := g.Invoke(context.Background(), "nope", &Request{})
		assert.ErrorIs(t, err, ErrUnknownProvider)
		assert.ErrorIs(t, err, core.ErrValidation)
		assert.Contains(t, err.Error(), "nope")
	})

	t.Run("slow provider hits the gateway deadline", func(t *testing.T) {
		g := NewGateway(20 * time.Millisecond)
		g.Register("slow", &stubProvider{
			generate: func(ctx context.Context, req *Request) (*Result, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			},
		})

		_, err := g.Invoke(context.Background(), "slow", &Request{})
		assert.ErrorIs(t, err, ErrTimeout)
	})

	t.Run("failures come back classified and named", func(t *testing.T) {
		g := NewGateway(time.Second)
		g.Register("flaky", &stubProvider{
			generate: func(ctx context.Context, req *Request) (*Result, error) {
				return nil, errors.New("429 too many requests")
			},
		})

		_, err := g.Invoke(context.Background(), "flaky", &Request{})
		assert.ErrorIs(t, err, ErrRateLimited)
		assert.Contains(t, err.Error(), `provider "flaky"`)
	})
}

func TestGatewayClose(t *testing.T) {
	g := NewGateway(time.Second)
	a := &stubProvider{}
	b := &stubProvider{}
	g.Register("a", a)
	g.Register("b", b)

	require.NoError(t, g.Close())
	assert.True(t, a.closed)
	assert.True(t, b.closed)
	assert.Empty(t, g.Providers())
}

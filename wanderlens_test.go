package wanderlens

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderlens/wanderlens/ai"
	"github.com/wanderlens/wanderlens/core"
)

type noopFetcher struct{}

func (noopFetcher) Fetch(ctx context.Context, videoID string) (*core.Video, error) {
	return &core.Video{ID: videoID, Title: "Video " + videoID, Transcript: "nothing here"}, nil
}

func newTestEngine(t *testing.T, opts ...EngineOption) *Engine {
	t.Helper()
	base := []EngineOption{
		WithAIConfig(ai.NewConfig(ai.WithOpenAIKey("test-key"))),
		WithFetcher(noopFetcher{}),
	}
	engine, err := NewEngine(append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { engine.Close() })
	return engine
}

func TestNewEngine(t *testing.T) {
	t.Run("requires provider credentials", func(t *testing.T) {
		_, err := NewEngine(WithAIConfig(ai.NewConfig()))
		assert.ErrorIs(t, err, core.ErrValidation)
	})

	t.Run("registers configured providers", func(t *testing.T) {
		engine := newTestEngine(t)
		assert.Equal(t, []string{"openai"}, engine.Providers())
	})

	t.Run("registers both providers when both are configured", func(t *testing.T) {
		engine := newTestEngine(t, WithAIConfig(ai.NewConfig(
			ai.WithOpenAIKey("k1"),
			ai.WithAnthropicKey("k2"),
		)))
		assert.Equal(t, []string{"anthropic", "openai"}, engine.Providers())
	})
}

func TestEngineSessionLifecycle(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.GetSession("missing")
	assert.ErrorIs(t, err, core.ErrNotFound)

	err = engine.DeleteSession("missing")
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = engine.UpdatePlacePreference("missing", "place", "banana")
	assert.ErrorIs(t, err, core.ErrValidation)
}

package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "gpt-4o", cfg.OpenAIModel)
	assert.Equal(t, "claude-3-5-haiku-latest", cfg.AnthropicModel)
	assert.Equal(t, 0.2, cfg.Temperature)
	assert.Equal(t, 60*time.Second, cfg.Timeout)
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, "gpt-4o", cfg.OpenAIModel)
		assert.Empty(t, cfg.OpenAIKey)
	})

	t.Run("with keys", func(t *testing.T) {
		cfg := NewConfig(
			WithOpenAIKey("sk-test"),
			WithAnthropicKey("ant-test"),
		)

		assert.Equal(t, "sk-test", cfg.OpenAIKey)
		assert.Equal(t, "ant-test", cfg.AnthropicKey)
	})

	t.Run("with custom models", func(t *testing.T) {
		cfg := NewConfig(
			WithOpenAIModel("gpt-4o-mini"),
			WithAnthropicModel("claude-sonnet-4-0"),
		)

		assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
		assert.Equal(t, "claude-sonnet-4-0", cfg.AnthropicModel)
	})

	t.Run("with timeout and temperature", func(t *testing.T) {
		cfg := NewConfig(
			WithTimeout(30*time.Second),
			WithTemperature(0.7),
		)

		assert.Equal(t, 30*time.Second, cfg.Timeout)
		assert.Equal(t, 0.7, cfg.Temperature)
	})
}

func TestConfigNormalize(t *testing.T) {
	t.Run("adds v1 suffix to base URL", func(t *testing.T) {
		cfg := NewConfig(WithOpenAIBaseURL("http://localhost:11434"))
		cfg.Normalize()
		assert.Equal(t, "http://localhost:11434/v1", cfg.OpenAIBaseURL)
	})

	t.Run("trims trailing slash before appending", func(t *testing.T) {
		cfg := NewConfig(WithOpenAIBaseURL("http://localhost:11434/"))
		cfg.Normalize()
		assert.Equal(t, "http://localhost:11434/v1", cfg.OpenAIBaseURL)
	})

	t.Run("leaves v1 URLs alone", func(t *testing.T) {
		cfg := NewConfig(WithOpenAIBaseURL("http://localhost:11434/v1"))
		cfg.Normalize()
		assert.Equal(t, "http://localhost:11434/v1", cfg.OpenAIBaseURL)
	})

	t.Run("empty base URL stays empty", func(t *testing.T) {
		cfg := NewConfig()
		cfg.Normalize()
		assert.Empty(t, cfg.OpenAIBaseURL)
	})
}

func TestConfigValidate(t *testing.T) {
	t.Run("default config is valid", func(t *testing.T) {
		require.NoError(t, DefaultConfig().Validate())
	})

	t.Run("rejects empty models", func(t *testing.T) {
		cfg := NewConfig(WithOpenAIModel(""))
		assert.Error(t, cfg.Validate())

		cfg = NewConfig(WithAnthropicModel(""))
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects out-of-range temperature", func(t *testing.T) {
		assert.Error(t, NewConfig(WithTemperature(-0.1)).Validate())
		assert.Error(t, NewConfig(WithTemperature(2.5)).Validate())
	})

	t.Run("rejects non-positive timeout", func(t *testing.T) {
		assert.Error(t, NewConfig(WithTimeout(0)).Validate())
	})
}

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
	"errors"
	"strings"
	"time"
)

// Config holds configuration for language-model backends.
type Config struct {
	// OpenAIKey is the API key for the OpenAI backend. May be empty when
	// OpenAIBaseURL points at a local OpenAI-compatible service.
	OpenAIKey string

	// OpenAIBaseURL overrides the OpenAI API endpoint.
	// Example: "http://localhost:11434/v1" for a local server.
	OpenAIBaseURL string

	// OpenAIModel is the model identifier for the OpenAI backend.
	// Example: "gpt-4o", "qwen2.5:3b"
	OpenAIModel string

	// AnthropicKey is the API key for the Anthropic backend.
	AnthropicKey string

	// AnthropicModel is the model identifier for the Anthropic backend.
	// Example: "claude-3-5-haiku-latest"
	AnthropicModel string

	// Temperature is the sampling temperature applied to every call that
	// does not override it. Extraction runs at 0 regardless.
	Temperature float64

	// Timeout is the hard per-call deadline enforced by the gateway.
	// Default: 60s.
	Timeout time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithOpenAIKey sets the OpenAI API key.
func WithOpenAIKey(key string) ConfigOption {
	return func(c *Config) {
		c.OpenAIKey = key
	}
}

// WithOpenAIBaseURL sets the OpenAI-compatible endpoint URL.
func WithOpenAIBaseURL(url string) ConfigOption {
	return func(c *Config) {
		c.OpenAIBaseURL = url
	}
}

// WithOpenAIModel sets the OpenAI model identifier.
func WithOpenAIModel(model string) ConfigOption {
	return func(c *Config) {
		c.OpenAIModel = model
	}
}

// WithAnthropicKey sets the Anthropic API key.
func WithAnthropicKey(key string) ConfigOption {
	return func(c *Config) {
		c.AnthropicKey = key
	}
}

// WithAnthropicModel sets the Anthropic model identifier.
func WithAnthropicModel(model string) ConfigOption {
	return func(c *Config) {
		c.AnthropicModel = model
	}
}

// WithTemperature sets the default sampling temperature.
func WithTemperature(t float64) ConfigOption {
	return func(c *Config) {
		c.Temperature = t
	}
}

// WithTimeout sets the hard per-call deadline.
func WithTimeout(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.Timeout = d
	}
}

// DefaultConfig returns a Config with sensible defaults. API keys must be
// supplied by the caller (or a local OpenAIBaseURL configured).
func DefaultConfig() *Config {
	return &Config{
		OpenAIModel:    "gpt-4o",
		AnthropicModel: "claude-3-5-haiku-latest",
		Temperature:    0.2,
		Timeout:        60 * time.Second,
	}
}

// NewConfig creates a Config with default values and applies the provided
// options.
//
// Example:
//
//	cfg := ai.NewConfig(
//	    ai.WithOpenAIKey(os.Getenv("OPENAI_API_KEY")),
//	    ai.WithTimeout(30*time.Second),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form. It adds the
// /v1 suffix to a local base URL if missing, which OpenAI-compatible APIs
// (Ollama, LocalAI, vLLM) require.
func (c *Config) Normalize() {
	if c.OpenAIBaseURL != "" && !strings.HasSuffix(c.OpenAIBaseURL, "/v1") {
		c.OpenAIBaseURL = strings.TrimSuffix(c.OpenAIBaseURL, "/") + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It normalizes the configuration before validating.
func (c *Config) Validate() error {
	c.Normalize()

	if c.OpenAIModel == "" {
		return errors.New("ai config: OpenAIModel is required")
	}
	if c.AnthropicModel == "" {
		return errors.New("ai config: AnthropicModel is required")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return errors.New("ai config: Temperature must be between 0 and 2")
	}
	if c.Timeout <= 0 {
		return errors.New("ai config: Timeout must be positive")
	}
	return nil
}

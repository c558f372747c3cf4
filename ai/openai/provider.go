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


// Package openai implements the ai.Provider interface against OpenAI and
// OpenAI-compatible chat APIs (Ollama, LocalAI, vLLM) via langchaingo.
package openai

import (
	"fmt"

	"github.com/tmc/langchaingo/llms/openai"
	"github.com/wanderlens/wanderlens/ai"
)

// NewProvider creates an OpenAI-backed provider from the shared config.
//
// Returns the ai.Provider interface to enforce abstraction and prevent
// coupling to backend-specific details.
func NewProvider(config *ai.Config) (ai.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.OpenAIKey == "" && config.OpenAIBaseURL == "" {
		return nil, fmt.Errorf("%w: OpenAI API key not configured", ai.ErrAuthFailure)
	}

	// Local OpenAI-compatible services don't require authentication; use
	// "none" so the client still sends a well-formed header.
	token := config.OpenAIKey
	if token == "" {
		token = "none"
	}

	opts := []openai.Option{
		openai.WithToken(token),
		openai.WithModel(config.OpenAIModel),
	}
	if config.OpenAIBaseURL != "" {
		opts = append(opts, openai.WithBaseURL(config.OpenAIBaseURL))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, err
	}

	return ai.NewLangchainProvider(client, config.Temperature, "openai-provider"), nil
}

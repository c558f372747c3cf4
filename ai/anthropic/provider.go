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


// Package anthropic implements the ai.Provider interface against the
// Anthropic API via langchaingo.
package anthropic

import (
	"fmt"

	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/wanderlens/wanderlens/ai"
)

// NewProvider creates an Anthropic-backed provider from the shared config.
//
// Returns the ai.Provider interface to enforce abstraction and prevent
// coupling to backend-specific details.
func NewProvider(config *ai.Config) (ai.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.AnthropicKey == "" {
		return nil, fmt.Errorf("%w: Anthropic API key not configured", ai.ErrAuthFailure)
	}

	client, err := anthropic.New(
		anthropic.WithToken(config.AnthropicKey),
		anthropic.WithModel(config.AnthropicModel),
	)
	if err != nil {
		return nil, err
	}

	return ai.NewLangchainProvider(client, config.Temperature, "anthropic-provider"), nil
}

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
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"
)

const defaultInvokeTimeout = 60 * time.Second

// Gateway routes model invocations to registered providers by id and
// enforces a hard per-call deadline. It holds no state across calls
// beyond the provider registry itself.
type Gateway struct {
	mu        sync.RWMutex
	providers map[string]Provider
	timeout   time.Duration
	logger    *slog.Logger
}

// NewGateway creates a gateway with the given per-call timeout.
// A non-positive timeout falls back to 60s.
func NewGateway(timeout time.Duration) *Gateway {
	if timeout <= 0 {
		timeout = defaultInvokeTimeout
	}
	return &Gateway{
		providers: make(map[string]Provider),
		timeout:   timeout,
		logger:    slog.Default().With("component", "ai-gateway"),
	}
}

// Register adds a provider under the given id, replacing any previous
// registration for that id.
func (g *Gateway) Register(id string, p Provider) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.providers[id] = p
	g.logger.Debug("registered provider", "provider", id)
}

// Providers returns the registered provider ids, sorted.
func (g *Gateway) Providers() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	ids := make([]string, 0, len(g.providers))
	for id := range g.providers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Invoke runs one model call against the named provider. The call is cut
// off at the gateway timeout (or sooner, if the caller's context expires
// first) and failures come back classified: ErrRateLimited,
// ErrAuthFailure, ErrUnavailable, ErrInvalidResponse or ErrTimeout.
func (g *Gateway) Invoke(ctx context.Context, providerID string, req *Request) (*Result, error) {
	g.mu.RLock()
	p, ok := g.providers[providerID]
	g.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %v)", ErrUnknownProvider, providerID, g.Providers())
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	res, err := p.Generate(ctx, req)
	if err != nil {
		classified := Classify(err)
		g.logger.Warn("provider call failed",
			"provider", providerID,
			"elapsed", time.Since(start),
			"err", classified)
		return nil, fmt.Errorf("provider %q: %w", providerID, classified)
	}

	g.logger.Debug("provider call completed",
		"provider", providerID,
		"elapsed", time.Since(start),
		"toolCalls", len(res.ToolCalls))
	return res, nil
}

// Close closes every registered provider, returning the first error.
func (g *Gateway) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	var firstErr error
	for id, p := range g.providers {
		if err := p.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing provider %q: %w", id, err)
		}
	}
	g.providers = make(map[string]Provider)
	return firstErr
}

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


package wanderlens

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wanderlens/wanderlens/agent"
	"github.com/wanderlens/wanderlens/ai"
	"github.com/wanderlens/wanderlens/ai/anthropic"
	"github.com/wanderlens/wanderlens/ai/openai"
	"github.com/wanderlens/wanderlens/core"
	"github.com/wanderlens/wanderlens/extraction"
	"github.com/wanderlens/wanderlens/ingestion"
	"github.com/wanderlens/wanderlens/session"
	"github.com/wanderlens/wanderlens/storage"
	badgerstore "github.com/wanderlens/wanderlens/storage/badger"
	"github.com/wanderlens/wanderlens/transcript"
)

// Engine wires the session store, provider gateway, extraction engine,
// ingestor, and chat agent into one entry point. Sessions live in
// memory only; a process restart loses them. The transcript cache, when
// enabled, is the only state that survives restarts.
type Engine struct {
	store    *session.Store
	gateway  *ai.Gateway
	cache    storage.TranscriptCache
	ingestor *ingestion.Ingestor
	agent    *agent.Agent
	logger   *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig     *ai.Config
	cachePath    string
	fetcher      transcript.Fetcher
	sessionOpts  []session.Option
	ingestorOpts []ingestion.Option
	agentOpts    []agent.Option
}

// WithAIConfig sets the provider configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithCachePath enables the persistent transcript cache at path.
// Default is no cache.
func WithCachePath(path string) EngineOption {
	return func(o *engineOptions) { o.cachePath = path }
}

// WithFetcher overrides the transcript fetcher.
// Default is the YouTube timedtext fetcher.
func WithFetcher(f transcript.Fetcher) EngineOption {
	return func(o *engineOptions) {
		if f != nil {
			o.fetcher = f
		}
	}
}

// WithSessionOptions passes options through to the session store.
func WithSessionOptions(opts ...session.Option) EngineOption {
	return func(o *engineOptions) { o.sessionOpts = append(o.sessionOpts, opts...) }
}

// WithIngestorOptions passes options through to the ingestor.
func WithIngestorOptions(opts ...ingestion.Option) EngineOption {
	return func(o *engineOptions) { o.ingestorOpts = append(o.ingestorOpts, opts...) }
}

// WithAgentOptions passes options through to the chat agent.
func WithAgentOptions(opts ...agent.Option) EngineOption {
	return func(o *engineOptions) { o.agentOpts = append(o.agentOpts, opts...) }
}

// NewEngine creates and starts an Engine. Providers whose credentials
// are absent from the configuration are simply not registered; at least
// one must be configured.
func NewEngine(opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		aiConfig: ai.DefaultConfig(),
		fetcher:  transcript.NewRetryingFetcher(transcript.NewYouTubeFetcher()),
	}
	for _, opt := range opts {
		opt(options)
	}

	config := options.aiConfig
	config.Normalize()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	gateway := ai.NewGateway(config.Timeout)
	registered := 0
	if config.OpenAIKey != "" || config.OpenAIBaseURL != "" {
		provider, err := openai.NewProvider(config)
		if err != nil {
			return nil, err
		}
		gateway.Register("openai", provider)
		registered++
	}
	if config.AnthropicKey != "" {
		provider, err := anthropic.NewProvider(config)
		if err != nil {
			return nil, err
		}
		gateway.Register("anthropic", provider)
		registered++
	}
	if registered == 0 {
		return nil, fmt.Errorf("%w: no provider credentials configured", core.ErrValidation)
	}

	fetcher := options.fetcher
	var cache storage.TranscriptCache
	if options.cachePath != "" {
		var err error
		cache, err = badgerstore.NewTranscriptCache(options.cachePath)
		if err != nil {
			gateway.Close()
			return nil, err
		}
		fetcher = transcript.NewCachingFetcher(fetcher, cache)
	}

	store := session.New(options.sessionOpts...)

	extractor, err := extraction.NewExtractor(gateway)
	if err != nil {
		closeAll(cache, gateway)
		return nil, err
	}

	ingestor, err := ingestion.NewIngestor(store, fetcher, extractor, options.ingestorOpts...)
	if err != nil {
		closeAll(cache, gateway)
		return nil, err
	}

	chatAgent, err := agent.NewAgent(store, gateway, options.agentOpts...)
	if err != nil {
		ingestor.Release()
		closeAll(cache, gateway)
		return nil, err
	}

	store.Start()

	return &Engine{
		store:    store,
		gateway:  gateway,
		cache:    cache,
		ingestor: ingestor,
		agent:    chatAgent,
		logger:   slog.Default().With("component", "engine"),
	}, nil
}

// Ingest fetches, extracts, and records a batch of video identifiers.
// An empty sessionID creates a new session.
func (e *Engine) Ingest(ctx context.Context, sessionID, providerID string, videoIDs []string) (*core.IngestReport, error) {
	return e.ingestor.Ingest(ctx, sessionID, providerID, videoIDs)
}

// Chat runs one grounded chat turn against a session.
func (e *Engine) Chat(ctx context.Context, sessionID, providerID, message string) (*agent.Reply, error) {
	return e.agent.Respond(ctx, sessionID, providerID, message)
}

// GetSession returns a snapshot of a session.
func (e *Engine) GetSession(sessionID string) (*core.Session, error) {
	return e.store.Get(sessionID)
}

// DeleteSession removes a session.
func (e *Engine) DeleteSession(sessionID string) error {
	return e.store.Delete(sessionID)
}

// UpdatePlacePreference records the user's preference for a place.
func (e *Engine) UpdatePlacePreference(sessionID, placeID, preference string) (*core.Place, error) {
	pref, err := core.ParsePreference(preference)
	if err != nil {
		return nil, err
	}
	return e.store.UpdatePlacePreference(sessionID, placeID, pref)
}

// Providers lists the registered provider ids.
func (e *Engine) Providers() []string {
	return e.gateway.Providers()
}

// Close stops the background sweep and releases all resources.
func (e *Engine) Close() error {
	e.store.Stop()
	e.ingestor.Release()

	var firstErr error
	if e.cache != nil {
		if err := e.cache.Close(); err != nil {
			e.logger.Error("error closing transcript cache", "err", err)
			firstErr = err
		}
	}
	if err := e.gateway.Close(); err != nil {
		e.logger.Error("error closing provider gateway", "err", err)
		if firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func closeAll(cache storage.TranscriptCache, gateway *ai.Gateway) {
	if cache != nil {
		cache.Close()
	}
	gateway.Close()
}

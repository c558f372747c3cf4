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


// Package ai is the provider gateway: it normalizes calls to pluggable
// language-model backends behind one interface and owns the per-call
// timeout and failure-classification policy.
//
// # Design
//
// The package is designed around two abstractions:
//
//   - Provider: one configured language-model backend (chat completion
//     with optional JSON mode and tool calling)
//   - Gateway: a registry of Providers keyed by provider id; every call
//     goes through Gateway.Invoke, which enforces a hard deadline and
//     classifies failures into the shared error taxonomy
//
// The gateway is stateless across calls and never retries on its own;
// extraction and chat have different idempotence properties, so retry
// policy belongs to the caller.
//
// # Implementation Packages
//
//   - ai/openai: OpenAI (and OpenAI-compatible) backend via langchaingo
//   - ai/anthropic: Anthropic backend via langchaingo
//   - ai/mock: scriptable test double for unit tests
//
// Production constructors return the Provider interface to prevent
// coupling to backend-specific types; mock constructors return the
// concrete type so tests can enqueue responses and assert call counts.
//
// # Usage
//
//	cfg := ai.DefaultConfig()
//	gw := ai.NewGateway(cfg.Timeout)
//	p, err := openai.NewProvider(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	gw.Register("openai", p)
//
//	res, err := gw.Invoke(ctx, "openai", &ai.Request{
//	    Messages: []ai.Message{{Role: ai.RoleUser, Content: "hello"}},
//	})
package ai

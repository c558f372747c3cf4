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


// Package mock provides a scriptable test double for ai.Provider.
//
// Tests either set GenerateFunc for full control, or enqueue a fixed
// sequence of results that Generate pops in order:
//
//	p := mock.NewProvider()
//	p.Enqueue(&ai.Result{Content: "first"}, nil)
//	p.Enqueue(nil, errors.New("boom"))
//
// Every request is recorded for assertions via Requests() and CallCount().
package mock

import (
	"context"
	"sync"

	"github.com/wanderlens/wanderlens/ai"
)

type scripted struct {
	res *ai.Result
	err error
}

// Provider is a test double for ai.Provider. It is safe for concurrent
// use so tests can exercise the gateway from multiple goroutines.
type Provider struct {
	// GenerateFunc, if set, handles every call. Takes precedence over the
	// scripted queue.
	GenerateFunc func(ctx context.Context, req *ai.Request) (*ai.Result, error)

	mu       sync.Mutex
	queue    []scripted
	requests []*ai.Request
	closed   bool
}

// NewProvider creates a mock provider with an empty script.
// Note: returns the concrete type to allow test assertions.
func NewProvider() *Provider {
	return &Provider{}
}

// Enqueue appends one scripted outcome. Outcomes are consumed in FIFO
// order by Generate.
func (p *Provider) Enqueue(res *ai.Result, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queue = append(p.queue, scripted{res: res, err: err})
}

// Generate records the request, then answers from GenerateFunc, the
// scripted queue, or a default empty result, in that order of preference.
func (p *Provider) Generate(ctx context.Context, req *ai.Request) (*ai.Result, error) {
	p.mu.Lock()
	p.requests = append(p.requests, req)
	var next *scripted
	if p.GenerateFunc == nil && len(p.queue) > 0 {
		next = &p.queue[0]
		p.queue = p.queue[1:]
	}
	fn := p.GenerateFunc
	p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if fn != nil {
		return fn(ctx, req)
	}
	if next != nil {
		return next.res, next.err
	}
	return &ai.Result{Content: "ok"}, nil
}

// Close marks the provider closed.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// Closed reports whether Close was called.
func (p *Provider) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// CallCount returns the number of Generate calls seen so far.
func (p *Provider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.requests)
}

// Requests returns a copy of the recorded requests.
func (p *Provider) Requests() []*ai.Request {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*ai.Request, len(p.requests))
	copy(out, p.requests)
	return out
}

// Reset clears the script, the recorded requests and GenerateFunc.
func (p *Provider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queue = nil
	p.requests = nil
	p.GenerateFunc = nil
}

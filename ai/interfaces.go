package ai

import "context"

// Provider is one configured language-model backend.
// Implementations must be thread-safe for concurrent use and must honor
// context cancellation: a Generate call never outlives its context.
type Provider interface {
	// Generate runs one chat completion. The returned Result carries
	// either answer text or requested tool calls. Errors are classified
	// by the gateway; implementations return their backend's raw error.
	Generate(ctx context.Context, req *Request) (*Result, error)

	// Close releases resources held by the provider.
	Close() error
}

// Package chat provides the canonical chat client interface.
//
// This package exists so that the agent and provider packages can share one
// interface without import cycles. The provider adapters under
// [github.com/cmathias/agentloop/provider] implement it.
package chat

import (
	"context"

	ai "github.com/cmathias/agentloop"
)

// Client sends a conversation to a model provider and returns the response.
//
// Implementations must return a categorized error (see [ai.CategorizedError])
// for upstream failures so callers can distinguish configuration problems
// from transient ones.
type Client interface {
	Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error)
}

// Package llm provides the completion-capability boundary for 2Giants.
// The Client interface is the only surface the router and orchestrator see;
// tests substitute a deterministic stub, production uses the Gemini client.
package llm

import (
	"context"
	"errors"
)

// Client defines the interface for LLM providers.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
	CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ErrMissingAPIKey is returned when no credential can be resolved from the
// environment at construction time.
var ErrMissingAPIKey = errors.New(
	"GOOGLE_API_KEY not found in environment; " +
		"export GOOGLE_API_KEY (or GEMINI_API_KEY) with your Gemini API key")

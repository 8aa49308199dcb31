package output

import (
	"context"

	"golang-foodbot/internal/domain"
)

// ModelClient interface - Output port
// Defines what the application needs from the text-generation service. One
// transport contract serves every prompt template: intent detection,
// criterion extraction, confirmation detection, criteria suggestion, venue
// ranking and fallback dish generation.
//
// The service's output is free text and must always be parsed defensively;
// callers never assume it is well formed. Failures are never retried here -
// every call site has a local fallback.
type ModelClient interface {
	// Complete sends a system prompt and a user prompt, optionally preceded
	// by conversation history, and returns the generated text.
	// history may be nil for template calls that need no context.
	Complete(ctx context.Context, systemPrompt, userPrompt string, history []domain.ChatMessage) (string, error)
}

// Package llm abstracts the optional language-model providers used for
// mnemonic hints. The trainer is fully functional without a configured
// provider.
package llm

import "context"

// Provider is the core abstraction for LLM interaction. Hint generation
// only needs plain text, so there is no structured-output surface.
type Provider interface {
	// Generate sends a prompt to the LLM and returns the text response.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Sets the LLM's role and constraints.
	System string

	// Prompt is the user message. Hint generation is always single-turn.
	Prompt string

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	Temperature float64
}

// Response holds the LLM's output.
type Response struct {
	// Text is the generated output with surrounding whitespace trimmed.
	Text string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

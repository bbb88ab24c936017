// Package llm wraps the hosted model APIs behind one Provider interface and
// adapts it to the single-prompt completion call the quiz engines use.
package llm

import "context"

// Provider sends one request to a hosted model and returns its text.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System sets the model's role. Optional.
	System string

	// Messages is the conversation. Quiz generation and grading send one
	// user message; agent chat may send more.
	Messages []Message

	MaxTokens int

	// Temperature ranges 0.0 - 1.0. Zero leaves the provider default.
	Temperature float64
}

// Message is a single conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Response holds the model's output. Text is returned as produced; callers
// that expect JSON do their own decoding.
type Response struct {
	Text  string
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

package llm

import (
	"context"
	"errors"
	"strings"
	"time"
)

// CompleterConfig tunes the single-prompt calls made through a Completer.
type CompleterConfig struct {
	System      string
	MaxTokens   int
	Temperature float64

	// Timeout bounds one call. Zero means only the caller's context applies.
	Timeout time.Duration
}

// DefaultCompleterConfig returns settings sized for a batch of 20 questions.
func DefaultCompleterConfig() CompleterConfig {
	return CompleterConfig{
		MaxTokens:   4096,
		Temperature: 0.7,
	}
}

// Completer turns a prompt into the model's text. It makes exactly one
// provider call per Complete; failures are returned, never retried.
type Completer struct {
	provider Provider
	cfg      CompleterConfig
}

// NewCompleter adapts p to the single-prompt contract.
func NewCompleter(p Provider, cfg CompleterConfig) *Completer {
	return &Completer{provider: p, cfg: cfg}
}

// Complete sends prompt as one user message and returns the response text.
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	resp, err := c.provider.Generate(ctx, Request{
		System:      c.cfg.System,
		Messages:    []Message{{Role: RoleUser, Content: prompt}},
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		return "", err
	}

	if resp.StopReason == "max_tokens" {
		return "", &ErrMaxTokensExceeded{Content: resp.Text}
	}
	if strings.TrimSpace(resp.Text) == "" {
		return "", &ErrInvalidResponse{Err: errors.New("empty response text")}
	}
	return resp.Text, nil
}

// ModelID reports the underlying provider's model.
func (c *Completer) ModelID() string {
	return c.provider.ModelID()
}

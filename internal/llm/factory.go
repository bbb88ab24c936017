package llm

import (
	"context"
	"fmt"
)

// NewProvider builds the configured provider wrapped with request-event
// logging. recorder may be nil, in which case events are not stored.
func NewProvider(ctx context.Context, cfg Config, recorder EventRecorder) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithLogging(base, cfg.Provider, recorder), nil
}

// NewProviderFromEnv reads QUIZAGENT_* configuration and, when the selected
// provider has no key, falls back to the vendors' standard key variables.
func NewProviderFromEnv(ctx context.Context, recorder EventRecorder) (Provider, Config, error) {
	cfg := ConfigFromEnv()
	if !cfg.hasKey() {
		if discovered, ok := DiscoverConfig(); ok {
			discovered.Timeout = cfg.Timeout
			cfg = discovered
		}
	}

	p, err := NewProvider(ctx, cfg, recorder)
	if err != nil {
		return nil, cfg, err
	}
	return p, cfg, nil
}

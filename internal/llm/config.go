package llm

import (
	"fmt"
	"os"
	"time"
)

// Config selects and configures the model provider.
type Config struct {
	// Provider is one of "anthropic", "openai", "gemini", "openrouter", "mock".
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig

	// Timeout bounds a single model call. Zero disables it.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey  string
	Model   string // Default: "claude-haiku"
	BaseURL string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Any OpenAI-compatible endpoint.
}

type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.0-flash-001"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// DefaultConfig returns a Config with default models and no keys.
func DefaultConfig() Config {
	return Config{
		Provider:   "gemini",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-001"},
		Timeout:    60 * time.Second,
	}
}

// ConfigFromEnv overlays QUIZAGENT_* variables onto the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	setFromEnv(&cfg.Provider, "QUIZAGENT_LLM_PROVIDER")

	setFromEnv(&cfg.Anthropic.APIKey, "QUIZAGENT_ANTHROPIC_API_KEY")
	setFromEnv(&cfg.Anthropic.Model, "QUIZAGENT_ANTHROPIC_MODEL")

	setFromEnv(&cfg.OpenAI.APIKey, "QUIZAGENT_OPENAI_API_KEY")
	setFromEnv(&cfg.OpenAI.Model, "QUIZAGENT_OPENAI_MODEL")
	setFromEnv(&cfg.OpenAI.BaseURL, "QUIZAGENT_OPENAI_BASE_URL")

	setFromEnv(&cfg.Gemini.APIKey, "QUIZAGENT_GEMINI_API_KEY")
	setFromEnv(&cfg.Gemini.Model, "QUIZAGENT_GEMINI_MODEL")

	setFromEnv(&cfg.OpenRouter.APIKey, "QUIZAGENT_OPENROUTER_API_KEY")
	setFromEnv(&cfg.OpenRouter.Model, "QUIZAGENT_OPENROUTER_MODEL")

	if t := os.Getenv("QUIZAGENT_LLM_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			cfg.Timeout = d
		}
	}

	return cfg
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// DiscoverConfig probes the vendors' standard API key variables
// (Gemini, OpenAI, Anthropic, OpenRouter) and selects the first one set.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	probes := []struct {
		env      string
		provider string
		key      *string
	}{
		{"GEMINI_API_KEY", "gemini", &cfg.Gemini.APIKey},
		{"GOOGLE_API_KEY", "gemini", &cfg.Gemini.APIKey},
		{"OPENAI_API_KEY", "openai", &cfg.OpenAI.APIKey},
		{"ANTHROPIC_API_KEY", "anthropic", &cfg.Anthropic.APIKey},
		{"OPENROUTER_API_KEY", "openrouter", &cfg.OpenRouter.APIKey},
	}
	for _, p := range probes {
		if k := os.Getenv(p.env); k != "" {
			cfg.Provider = p.provider
			*p.key = k
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks that the selected provider has its API key.
func (c Config) Validate() error {
	var key, env string
	switch c.Provider {
	case "anthropic":
		key, env = c.Anthropic.APIKey, "QUIZAGENT_ANTHROPIC_API_KEY"
	case "openai":
		key, env = c.OpenAI.APIKey, "QUIZAGENT_OPENAI_API_KEY"
	case "gemini":
		key, env = c.Gemini.APIKey, "QUIZAGENT_GEMINI_API_KEY"
	case "openrouter":
		key, env = c.OpenRouter.APIKey, "QUIZAGENT_OPENROUTER_API_KEY"
	case "mock":
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", env, c.Provider)
	}
	return nil
}

// hasKey reports whether the selected provider has a key configured.
func (c Config) hasKey() bool {
	return c.Validate() == nil
}

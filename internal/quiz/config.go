package quiz

import (
	"os"
	"strconv"
)

// Config controls the generation and validation engines.
type Config struct {
	// Language is the output language stated in every prompt.
	Language string

	// OpenTextProbability is the per-question chance of an open-text
	// question. Each question is drawn independently, so small batches
	// may contain none.
	OpenTextProbability float64

	// MinKnowledgeLength is the trimmed summary length below which the
	// model is not called and fallback questions are returned.
	MinKnowledgeLength int

	// MaxCount bounds the number of questions per request.
	MaxCount int
}

// DefaultConfig returns the standard engine settings.
func DefaultConfig() Config {
	return Config{
		Language:            "English",
		OpenTextProbability: 0.25,
		MinKnowledgeLength:  10,
		MaxCount:            20,
	}
}

// ConfigFromEnv overlays QUIZAGENT_LANGUAGE and
// QUIZAGENT_OPEN_TEXT_PROBABILITY onto the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if l := os.Getenv("QUIZAGENT_LANGUAGE"); l != "" {
		cfg.Language = l
	}
	if p := os.Getenv("QUIZAGENT_OPEN_TEXT_PROBABILITY"); p != "" {
		if v, err := strconv.ParseFloat(p, 64); err == nil && v >= 0 && v <= 1 {
			cfg.OpenTextProbability = v
		}
	}
	return cfg
}

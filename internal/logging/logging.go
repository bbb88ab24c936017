// Package logging configures the process-wide logrus logger and carries
// request-scoped loggers through a context.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

type contextKey struct{}

// Config controls the root logger.
type Config struct {
	Level  string // trace, debug, info, warn, error
	Format string // text or json
	Output io.Writer
}

// DefaultConfig logs at info level as text to stderr.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "text",
		Output: os.Stderr,
	}
}

// ConfigFromEnv reads QUIZAGENT_LOG_LEVEL and QUIZAGENT_LOG_FORMAT.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if l := os.Getenv("QUIZAGENT_LOG_LEVEL"); l != "" {
		cfg.Level = l
	}
	if f := os.Getenv("QUIZAGENT_LOG_FORMAT"); f != "" {
		cfg.Format = f
	}
	return cfg
}

// New builds a logger from cfg.
func New(cfg Config) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	log := logrus.New()
	log.SetLevel(level)
	if cfg.Output != nil {
		log.SetOutput(cfg.Output)
	}

	switch strings.ToLower(cfg.Format) {
	case "", "text":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unknown log format: %q", cfg.Format)
	}

	return log, nil
}

// IntoContext attaches log to ctx.
func IntoContext(ctx context.Context, log logrus.FieldLogger) context.Context {
	return context.WithValue(ctx, contextKey{}, log)
}

// FromContext returns the logger stored in ctx, or the standard logger.
func FromContext(ctx context.Context) logrus.FieldLogger {
	if ctx != nil {
		if log, ok := ctx.Value(contextKey{}).(logrus.FieldLogger); ok {
			return log
		}
	}
	return logrus.StandardLogger()
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// Package app wires storage, the model provider and the services shared by
// the CLI commands and the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/quizagent/internal/agent"
	"github.com/abhisek/quizagent/internal/llm"
	"github.com/abhisek/quizagent/internal/quiz"
	"github.com/abhisek/quizagent/internal/store"
	"github.com/abhisek/quizagent/internal/store/mongostore"
)

// ErrModelUnavailable is returned when a command needs the model and no
// provider could be configured.
var ErrModelUnavailable = errors.New("no model provider configured")

// Options controls Open.
type Options struct {
	// DBPath is the SQLite file. It always holds the model request log and
	// holds agents unless QUIZAGENT_STORE=mongo.
	DBPath string

	// RequireModel fails Open when no provider is configured. Commands
	// that only read agents leave it false.
	RequireModel bool

	Log logrus.FieldLogger
}

// App holds the opened dependencies. Close releases them.
type App struct {
	Store     *store.Store
	Agents    *agent.Service
	Quiz      *quiz.Service
	LLMConfig llm.Config

	closers []func(context.Context) error
}

// Open opens storage and, when configured, the model provider.
func Open(ctx context.Context, opts Options) (*App, error) {
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	st, err := store.Open(opts.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	a := &App{Store: st}
	a.closers = append(a.closers, func(context.Context) error { return st.Close() })

	repo, err := a.agentRepo(ctx, log)
	if err != nil {
		a.Close(ctx)
		return nil, err
	}

	provider, cfg, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
	a.LLMConfig = cfg
	if err != nil {
		if opts.RequireModel {
			a.Close(ctx)
			return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
		}
		log.WithError(err).Debug("Model provider not configured")
		a.Agents = agent.NewService(repo, nil)
		return a, nil
	}

	completer := llm.NewCompleter(provider, llm.CompleterConfig{
		MaxTokens:   llm.DefaultCompleterConfig().MaxTokens,
		Temperature: llm.DefaultCompleterConfig().Temperature,
		Timeout:     cfg.Timeout,
	})
	a.Agents = agent.NewService(repo, completer)
	a.Quiz = quiz.NewService(a.Agents, completer, quiz.ConfigFromEnv(), nil)

	log.WithFields(logrus.Fields{
		"provider": cfg.Provider,
		"model":    provider.ModelID(),
	}).Debug("Model provider ready")
	return a, nil
}

func (a *App) agentRepo(ctx context.Context, log logrus.FieldLogger) (agent.Repo, error) {
	switch backend := strings.ToLower(os.Getenv("QUIZAGENT_STORE")); backend {
	case "", "sqlite":
		return a.Store.AgentRepo(), nil
	case "mongo", "mongodb":
		cfg := mongostore.ConfigFromEnv()
		client, err := mongostore.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Disconnect)
		log.WithField("database", cfg.Database).Debug("Using MongoDB agent store")
		return mongostore.NewAgentRepo(client, cfg.Database), nil
	default:
		return nil, fmt.Errorf("unknown QUIZAGENT_STORE %q (want sqlite or mongo)", backend)
	}
}

// Close releases everything Open acquired, newest first.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

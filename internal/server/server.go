// Package server exposes agents and quizzes over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/quizagent/internal/agent"
	"github.com/abhisek/quizagent/internal/quiz"
)

// Config holds the listener settings.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultConfig listens on :8000. The write timeout leaves room for two
// sequential model calls.
func DefaultConfig() Config {
	return Config{
		Addr:         ":8000",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 3 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}
}

// ConfigFromEnv overlays QUIZAGENT_ADDR onto the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if a := os.Getenv("QUIZAGENT_ADDR"); a != "" {
		cfg.Addr = a
	}
	return cfg
}

// Server routes HTTP requests to the agent and quiz services.
type Server struct {
	agents  *agent.Service
	quizzes *quiz.Service
	log     logrus.FieldLogger
	router  *mux.Router
}

// New builds the router.
func New(agents *agent.Service, quizzes *quiz.Service, log logrus.FieldLogger) *Server {
	s := &Server{
		agents:  agents,
		quizzes: quizzes,
		log:     log,
		router:  mux.NewRouter(),
	}
	s.routes()
	return s
}

// Handler returns the root handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := s.router
	r.Use(s.requestLogger)
	r.Use(corsMiddleware)
	r.Use(jsonMiddleware)

	// OPTIONS is listed on every route so corsMiddleware can answer
	// preflight requests.
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/setup-agent/", s.handleSetupAgent).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/agents/", s.handleListAgents).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/agent/{id}", s.handleGetAgent).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/agent/{id}", s.handleDeleteAgent).Methods(http.MethodDelete)
	api.HandleFunc("/agent/{id}/chat/", s.handleChat).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/agent/{id}/generate-questions", s.handleGenerateQuestions).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/agent/{id}/validate-answer", s.handleValidateAnswer).Methods(http.MethodPost, http.MethodOptions)

	// Subrouters do not inherit these handlers from their parent.
	for _, rt := range []*mux.Router{r, api} {
		rt.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusNotFound, "route not found")
		})
		rt.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		})
	}
}

// Run serves h until ctx is cancelled, then drains in-flight requests.
func Run(ctx context.Context, cfg Config, h http.Handler, log logrus.FieldLogger) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      h,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Addr).Info("Server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

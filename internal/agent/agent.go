// Package agent manages the knowledge domains quizzes are built from.
package agent

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/quizagent/internal/store"
)

var (
	// ErrNoDocuments is returned by Create when no non-blank document is given.
	ErrNoDocuments = errors.New("no documents provided")

	// ErrEmptyName is returned by Create for a blank agent name.
	ErrEmptyName = errors.New("agent name is required")
)

// Agent is the public view of a stored agent.
type Agent struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	SystemPrompt     string    `json:"system_prompt"`
	KnowledgeSummary string    `json:"knowledge_summary"`
	CreatedAt        time.Time `json:"created_at"`
}

func fromRecord(r store.Agent) Agent {
	return Agent{
		ID:               r.ID,
		Name:             r.Name,
		SystemPrompt:     r.SystemPrompt,
		KnowledgeSummary: r.Knowledge,
		CreatedAt:        r.CreatedAt,
	}
}

// Repo persists agents. Both store.AgentRepo (SQLite) and
// mongostore.AgentRepo satisfy it; missing IDs wrap store.ErrNotFound.
type Repo interface {
	Create(ctx context.Context, a *store.Agent) error
	Get(ctx context.Context, id string) (*store.Agent, error)
	List(ctx context.Context) ([]store.Agent, error)
	Delete(ctx context.Context, id string) error
}

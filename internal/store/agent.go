package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

var agentColumns = []string{"id", "name", "system_prompt", "knowledge", "created_at"}

// AgentRepo stores agents in the agents table.
type AgentRepo struct {
	drv *entsql.Driver
}

// Create inserts a. An empty ID is filled with a new UUID and a zero
// CreatedAt with the current time.
func (r *AgentRepo) Create(ctx context.Context, a *Agent) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(agentsTable.Name).
		Columns(agentColumns...).
		Values(a.ID, a.Name, a.SystemPrompt, a.Knowledge, a.CreatedAt).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save agent: %w", err)
	}
	return nil
}

// Get returns the agent with the given ID or ErrNotFound.
func (r *AgentRepo) Get(ctx context.Context, id string) (*Agent, error) {
	query, args := r.selectAgents().
		Where(entsql.EQ("id", id)).
		Query()

	agents, err := r.query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	if len(agents) == 0 {
		return nil, fmt.Errorf("agent %s: %w", id, ErrNotFound)
	}
	return &agents[0], nil
}

// List returns all agents, newest first.
func (r *AgentRepo) List(ctx context.Context) ([]Agent, error) {
	query, args := r.selectAgents().
		OrderBy(entsql.Desc("created_at"), "name").
		Query()
	return r.query(ctx, query, args)
}

// Delete removes the agent with the given ID or returns ErrNotFound.
func (r *AgentRepo) Delete(ctx context.Context, id string) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(agentsTable.Name).
		Where(entsql.EQ("id", id)).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("delete agent: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete agent: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("agent %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *AgentRepo) selectAgents() *entsql.Selector {
	return entsql.Dialect(dialect.SQLite).
		Select(agentColumns...).
		From(entsql.Table(agentsTable.Name))
}

func (r *AgentRepo) query(ctx context.Context, query string, args []any) ([]Agent, error) {
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query agents: %w", err)
	}
	defer rows.Close()

	var agents []Agent
	for rows.Next() {
		var a Agent
		if err := rows.Scan(&a.ID, &a.Name, &a.SystemPrompt, &a.Knowledge, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan agent: %w", err)
		}
		agents = append(agents, a)
	}
	return agents, rows.Err()
}

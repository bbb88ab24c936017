package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/quizagent/internal/llm"
	"github.com/abhisek/quizagent/internal/logging"
	"github.com/abhisek/quizagent/internal/quiz"
	"github.com/abhisek/quizagent/internal/store"
)

// Service creates agents from source documents and answers questions in
// their voice. It also resolves agents for the quiz engines.
type Service struct {
	repo      Repo
	completer quiz.Completer
}

// NewService wires a Service.
func NewService(repo Repo, c quiz.Completer) *Service {
	return &Service{repo: repo, completer: c}
}

// Create summarizes documents into a knowledge base and stores the agent.
// Model failures are returned as-is; nothing is stored in that case.
func (s *Service) Create(ctx context.Context, name, systemPrompt string, documents []string) (*Agent, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	docs := lo.Filter(documents, func(d string, _ int) bool {
		return strings.TrimSpace(d) != ""
	})
	if len(docs) == 0 {
		return nil, ErrNoDocuments
	}

	prompt := "Summarize the following information into a concise knowledge base: " +
		strings.Join(docs, "\n\n")
	summary, err := s.completer.Complete(llm.WithPurpose(ctx, "agent-summarize"), prompt)
	if err != nil {
		return nil, fmt.Errorf("summarize documents: %w", err)
	}

	rec := &store.Agent{
		Name:         name,
		SystemPrompt: systemPrompt,
		Knowledge:    strings.TrimSpace(summary),
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("store agent: %w", err)
	}

	logging.FromContext(ctx).WithFields(logrus.Fields{
		"agent_id":  rec.ID,
		"documents": len(docs),
	}).Info("Agent created")

	a := fromRecord(*rec)
	return &a, nil
}

// Get returns the agent or an error wrapping quiz.ErrAgentNotFound.
func (s *Service) Get(ctx context.Context, id string) (*Agent, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, notFound(id, err)
	}
	a := fromRecord(*rec)
	return &a, nil
}

// List returns every agent whose name fuzzily matches match, ignoring
// case. An empty match returns all agents.
func (s *Service) List(ctx context.Context, match string) ([]Agent, error) {
	recs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}

	match = strings.TrimSpace(match)
	return lo.FilterMap(recs, func(r store.Agent, _ int) (Agent, bool) {
		if match != "" && !fuzzy.MatchFold(match, r.Name) {
			return Agent{}, false
		}
		return fromRecord(r), true
	}), nil
}

// Delete removes the agent.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(id, err)
	}
	return nil
}

// Chat answers userPrompt as the agent, grounded in its knowledge.
func (s *Service) Chat(ctx context.Context, id, userPrompt string) (string, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "System Prompt: %s\n\n", a.SystemPrompt)
	fmt.Fprintf(&b, "Knowledge Base: %s\n\n", a.KnowledgeSummary)
	fmt.Fprintf(&b, "User Question: %s\n\n", userPrompt)
	b.WriteString("Answer:")

	answer, err := s.completer.Complete(llm.WithPurpose(ctx, "agent-chat"), b.String())
	if err != nil {
		return "", fmt.Errorf("chat with agent %s: %w", id, err)
	}
	return answer, nil
}

// LookupAgent implements quiz.AgentLookup.
func (s *Service) LookupAgent(ctx context.Context, id string) (quiz.KnowledgeContext, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return quiz.KnowledgeContext{}, err
	}
	return quiz.KnowledgeContext{
		DisplayName:      a.Name,
		KnowledgeSummary: a.KnowledgeSummary,
	}, nil
}

// notFound maps the store's not-found to quiz.ErrAgentNotFound and wraps
// everything else.
func notFound(id string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("agent %s: %w", id, quiz.ErrAgentNotFound)
	}
	return fmt.Errorf("agent %s: %w", id, err)
}

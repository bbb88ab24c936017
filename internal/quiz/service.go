package quiz

import (
	"context"
	"fmt"
)

// AgentLookup resolves an agent ID to its knowledge. Implementations return
// an error wrapping ErrAgentNotFound for unknown IDs.
type AgentLookup interface {
	LookupAgent(ctx context.Context, agentID string) (KnowledgeContext, error)
}

// Service is the entry point used by the HTTP and CLI surfaces. It
// resolves the agent once per call, then hands off to the engines.
type Service struct {
	agents    AgentLookup
	generator *Generator
	validator *Validator
	cfg       Config
}

// NewService wires a Service. A nil rng uses DefaultRand.
func NewService(agents AgentLookup, c Completer, cfg Config, rng Rand) *Service {
	return &Service{
		agents:    agents,
		generator: NewGenerator(c, cfg, rng),
		validator: NewValidator(c, cfg),
		cfg:       cfg,
	}
}

// GenerateQuestions returns exactly count questions for the agent.
func (s *Service) GenerateQuestions(ctx context.Context, agentID string, count int, difficulty Difficulty) ([]Question, error) {
	if count < 1 || count > s.cfg.MaxCount {
		return nil, fmt.Errorf("%w: %d (want 1 to %d)", ErrInvalidCount, count, s.cfg.MaxCount)
	}

	k, err := s.agents.LookupAgent(ctx, agentID)
	if err != nil {
		return nil, fmt.Errorf("lookup agent %s: %w", agentID, err)
	}

	return s.generator.Generate(ctx, GenerateRequest{
		AgentID:    agentID,
		Knowledge:  &k,
		Count:      count,
		Difficulty: difficulty,
	}), nil
}

// ValidateAnswer grades one learner answer against the agent's knowledge.
func (s *Service) ValidateAnswer(ctx context.Context, in AnswerInput) (*ValidationResult, error) {
	k, err := s.agents.LookupAgent(ctx, in.AgentID)
	if err != nil {
		return nil, fmt.Errorf("lookup agent %s: %w", in.AgentID, err)
	}

	result := s.validator.Validate(ctx, GradeRequest{
		Knowledge:    k,
		QuestionText: in.QuestionText,
		UserAnswer:   in.UserAnswer,
		Difficulty:   in.Difficulty,
	})
	return &result, nil
}

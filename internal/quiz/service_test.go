package quiz

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/abhisek/quizagent/internal/llm"
)

type mapLookup map[string]KnowledgeContext

func (m mapLookup) LookupAgent(_ context.Context, id string) (KnowledgeContext, error) {
	k, ok := m[id]
	if !ok {
		return KnowledgeContext{}, fmt.Errorf("agent %q: %w", id, ErrAgentNotFound)
	}
	return k, nil
}

func testService(responses ...llm.MockResponse) (*Service, *llm.MockProvider) {
	mock, c := mockCompleter(responses...)
	agents := mapLookup{
		"bio":   *knowledge(),
		"empty": {DisplayName: "Empty"},
	}
	return NewService(agents, c, DefaultConfig(), seeded()), mock
}

func TestService_GenerateQuestions_AgentNotFound(t *testing.T) {
	svc, mock := testService()
	_, err := svc.GenerateQuestions(context.Background(), "nope", 5, DifficultyUnspecified)
	if !errors.Is(err, ErrAgentNotFound) {
		t.Fatalf("expected ErrAgentNotFound, got %v", err)
	}
	if mock.CallCount() != 0 {
		t.Error("model must not be called for unknown agent")
	}
}

func TestService_GenerateQuestions_InvalidCount(t *testing.T) {
	svc, _ := testService()
	for _, n := range []int{0, -1, 21} {
		if _, err := svc.GenerateQuestions(context.Background(), "bio", n, DifficultyBeginner); !errors.Is(err, ErrInvalidCount) {
			t.Errorf("count %d: expected ErrInvalidCount, got %v", n, err)
		}
	}
}

func TestService_GenerateQuestions_EmptyKnowledge(t *testing.T) {
	svc, mock := testService()
	qs, err := svc.GenerateQuestions(context.Background(), "empty", 5, DifficultyUnspecified)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(qs))
	}
	if mock.CallCount() != 0 {
		t.Errorf("expected no model calls, got %d", mock.CallCount())
	}
	checkIDs(t, "empty", qs)
}

func TestService_ValidateAnswer(t *testing.T) {
	svc, _ := testService(llm.MockResponse{Text: `{"pointsEarned": 120, "feedback": "Great"}`})
	r, err := svc.ValidateAnswer(context.Background(), AnswerInput{
		AgentID:      "bio",
		QuestionID:   "agent-bio-1",
		QuestionText: "What is produced?",
		UserAnswer:   "Glucose",
		Difficulty:   DifficultyAdvanced,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.MaxPoints != 160 || r.Percentage != 75 || !r.IsSuccessful {
		t.Errorf("unexpected result: %+v", r)
	}
}

func TestService_ValidateAnswer_AgentNotFound(t *testing.T) {
	svc, _ := testService()
	_, err := svc.ValidateAnswer(context.Background(), AnswerInput{AgentID: "nope"})
	if !errors.Is(err, ErrAgentNotFound) {
		t.Fatalf("expected ErrAgentNotFound, got %v", err)
	}
}

func TestParseDifficulty(t *testing.T) {
	for in, want := range map[string]Difficulty{
		"":             DifficultyUnspecified,
		"Beginner":     DifficultyBeginner,
		" advanced ":   DifficultyAdvanced,
		"intermediate": DifficultyIntermediate,
	} {
		got, err := ParseDifficulty(in)
		if err != nil || got != want {
			t.Errorf("ParseDifficulty(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseDifficulty("expert"); err == nil {
		t.Error("expected error for unknown difficulty")
	}
}

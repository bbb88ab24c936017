package quiz

import (
	"strings"
	"testing"
)

func TestBuildChoicePrompt(t *testing.T) {
	prompt, err := BuildChoicePrompt(GenerationPromptInput{
		AgentID:          "a42",
		DisplayName:      "Plant Biology",
		KnowledgeSummary: testKnowledge,
		Difficulty:       DifficultyIntermediate,
		Count:            7,
		Language:         "Spanish",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"Plant Biology",
		testKnowledge,
		"Spanish",
		"exactly 7 multiple-choice questions",
		`difficulty "intermediate"`,
		`"type": "multiple_choice"`,
		`"options"`,
		`"correctAnswer"`,
		`"topic": "plant biology"`,
		"beginner 80-100",
		"advanced 130-160",
		"code fences",
		"a42",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("choice prompt missing %q", want)
		}
	}
}

func TestBuildOpenTextPrompt_UnspecifiedDifficulty(t *testing.T) {
	prompt, err := BuildOpenTextPrompt(GenerationPromptInput{
		AgentID:          "a1",
		DisplayName:      "Go",
		KnowledgeSummary: "Goroutines are lightweight threads.",
		Count:            2,
		Language:         "English",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(prompt, "mix of the difficulties") {
		t.Error("expected mixed difficulty instruction")
	}
	if !strings.Contains(prompt, `"type": "text_question"`) {
		t.Error("expected open-text record shape")
	}
	if strings.Contains(prompt, `"options"`) {
		t.Error("open-text prompt must not ask for options")
	}
	if !strings.Contains(prompt, "Goroutines are lightweight threads.") {
		t.Error("knowledge not embedded")
	}
}

func TestBuildGradingPrompt_Rubrics(t *testing.T) {
	tests := []struct {
		difficulty Difficulty
		maxPoints  string
		rubric     string
	}{
		{DifficultyBeginner, "100", "fundamental concepts and comprehension"},
		{DifficultyIntermediate, "130", "practical application and analysis"},
		{DifficultyAdvanced, "160", "advanced synthesis and critical thinking"},
	}

	for _, tt := range tests {
		t.Run(string(tt.difficulty), func(t *testing.T) {
			prompt, err := BuildGradingPrompt(GradingPromptInput{
				KnowledgeSummary: testKnowledge,
				QuestionText:     "What does photosynthesis produce?",
				UserAnswer:       "Glucose and oxygen",
				Difficulty:       tt.difficulty,
				MaxPoints:        MaxPoints(tt.difficulty),
				Language:         "French",
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, want := range []string{
				tt.rubric,
				"between 0 and " + tt.maxPoints,
				"75%",
				"What does photosynthesis produce?",
				"Glucose and oxygen",
				testKnowledge,
				"French",
				`"pointsEarned"`,
				`"correctAnswer"`,
			} {
				if !strings.Contains(prompt, want) {
					t.Errorf("grading prompt missing %q", want)
				}
			}
		})
	}
}

package quiz

import (
	"context"
	"fmt"
	"math"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/quizagent/internal/llm"
	"github.com/abhisek/quizagent/internal/logging"
)

// PassPercentage is the score at or above which an answer is successful.
const PassPercentage = 75.0

// GradeRequest is one answer to grade against a resolved agent.
type GradeRequest struct {
	Knowledge    KnowledgeContext
	QuestionText string
	UserAnswer   string
	Difficulty   Difficulty
}

// Validator grades free-text answers. Any model or parse failure yields
// the length-based fallback result instead of an error.
type Validator struct {
	completer Completer
	cfg       Config
}

// NewValidator creates a Validator.
func NewValidator(c Completer, cfg Config) *Validator {
	return &Validator{completer: c, cfg: cfg}
}

// Validate grades req.UserAnswer.
func (v *Validator) Validate(ctx context.Context, req GradeRequest) ValidationResult {
	diff := req.Difficulty.OrBeginner()
	maxPoints := MaxPoints(diff)
	log := logging.FromContext(ctx).WithFields(logrus.Fields{
		"difficulty": diff,
		"max_points": maxPoints,
	})

	rec, err := v.grade(ctx, req, diff, maxPoints)
	if err != nil {
		log.WithError(err).Warn("Answer grading failed, using heuristic grade")
		return FallbackValidation(req.UserAnswer, maxPoints)
	}

	points, _ := numberField(rec, "pointsEarned", "points_earned")
	points = lo.Clamp(math.Round(points), 0, float64(maxPoints))

	feedback := stringField(rec, "feedback")
	if feedback == "" {
		feedback = fallbackNoFeedback
	}

	result := scoreResult(int(points), maxPoints, feedback)
	if !result.IsSuccessful {
		result.CorrectAnswer = stringField(rec, "correctAnswer", "correct_answer")
		if result.CorrectAnswer == "" {
			result.CorrectAnswer = fallbackUnknownAnswer
		}
	}
	return result
}

func (v *Validator) grade(ctx context.Context, req GradeRequest, diff Difficulty, maxPoints int) (map[string]any, error) {
	prompt, err := BuildGradingPrompt(GradingPromptInput{
		KnowledgeSummary: req.Knowledge.KnowledgeSummary,
		QuestionText:     req.QuestionText,
		UserAnswer:       req.UserAnswer,
		Difficulty:       diff,
		MaxPoints:        maxPoints,
		Language:         v.cfg.Language,
	})
	if err != nil {
		return nil, err
	}

	raw, err := v.completer.Complete(llm.WithPurpose(ctx, "quiz-grade"), prompt)
	if err != nil {
		return nil, fmt.Errorf("complete grading prompt: %w", err)
	}
	return DecodeObject(raw)
}

package quiz

import (
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"
)

var openTextTemplates = []string{
	"Explain in detail the fundamental concepts of %s.",
	"Describe how you would apply the knowledge of %s in a real project.",
	"Analyze the advantages and disadvantages of the approaches used in %s.",
	"Compare different aspects or methods within the field of %s.",
	"Develop a practical example that demonstrates your understanding of %s.",
}

const (
	fallbackUnknownAnswer = "The correct answer could not be determined automatically. Please ask an instructor."
	fallbackNoFeedback    = "No feedback could be generated."
)

// FallbackQuestions builds count template questions of one kind without
// calling the model. An unspecified difficulty is drawn per question.
// IDs are numbered within the batch and are expected to be reassigned.
func FallbackQuestions(agentID, displayName string, kind Kind, count int, difficulty Difficulty, rng Rand) []Question {
	if count <= 0 {
		return nil
	}
	questions := lo.Times(count, func(i int) Question {
		if kind == KindOpenText {
			return fallbackOpenText(displayName, i, difficulty, rng)
		}
		return fallbackChoice(displayName, difficulty, rng)
	})
	assignIDs(agentID, questions)
	return questions
}

// FallbackMixed builds count template questions using the same per-question
// type mix as the engine, shuffled, with final IDs assigned.
func FallbackMixed(agentID, displayName string, count int, difficulty Difficulty, openTextProbability float64, rng Rand) []Question {
	numOpen := drawOpenTextCount(count, openTextProbability, rng)

	questions := append(
		FallbackQuestions(agentID, displayName, KindChoice, count-numOpen, difficulty, rng),
		FallbackQuestions(agentID, displayName, KindOpenText, numOpen, difficulty, rng)...,
	)
	rng.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
	assignIDs(agentID, questions)
	return questions
}

func fallbackChoice(displayName string, difficulty Difficulty, rng Rand) Question {
	diff := drawDifficulty(difficulty, rng)
	return Question{
		Kind: KindChoice,
		Text: fmt.Sprintf("What is an important aspect of the knowledge of %s?", displayName),
		Options: []string{
			fmt.Sprintf("A fundamental concept of %s", displayName),
			"Incorrect option 1",
			"Incorrect option 2",
			"Incorrect option 3",
		},
		CorrectIndex: lo.ToPtr(0),
		Explanation:  fmt.Sprintf("This is a fundamental concept in the knowledge area of %s.", displayName),
		Difficulty:   diff,
		Topic:        defaultTopic(displayName),
		Reward:       drawReward(diff, rng),
	}
}

func fallbackOpenText(displayName string, i int, difficulty Difficulty, rng Rand) Question {
	diff := drawDifficulty(difficulty, rng)
	return Question{
		Kind:       KindOpenText,
		Text:       fmt.Sprintf(openTextTemplates[i%len(openTextTemplates)], displayName),
		Difficulty: diff,
		Topic:      defaultTopic(displayName),
		Reward:     drawReward(diff, rng),
	}
}

// FallbackValidation grades an answer by length alone. It never awards
// more than half the ceiling, so it can never pass an answer.
func FallbackValidation(userAnswer string, maxPoints int) ValidationResult {
	var (
		share    float64
		feedback string
	)
	switch n := len([]rune(strings.TrimSpace(userAnswer))); {
	case n == 0:
		share, feedback = 0, "No answer provided."
	case n < 10:
		share, feedback = 0.2, "The answer is too brief. More detail and explanation are needed."
	case n < 50:
		share, feedback = 0.4, "Partial answer. It touches on relevant points but needs more development."
	default:
		share, feedback = 0.5, "Elaborate answer. A manual review is needed to judge its technical accuracy."
	}

	points := int(math.Round(share * float64(maxPoints)))
	result := scoreResult(points, maxPoints, feedback)
	if !result.IsSuccessful {
		result.CorrectAnswer = fallbackUnknownAnswer
	}
	return result
}

// scoreResult derives percentage and verdict from points and ceiling.
func scoreResult(points, maxPoints int, feedback string) ValidationResult {
	var pct float64
	if maxPoints > 0 {
		pct = math.Round(float64(points)/float64(maxPoints)*100*100) / 100
	}
	return ValidationResult{
		IsSuccessful: pct >= PassPercentage,
		PointsEarned: points,
		MaxPoints:    maxPoints,
		Percentage:   pct,
		Feedback:     feedback,
	}
}

func drawOpenTextCount(count int, p float64, rng Rand) int {
	n := 0
	for range count {
		if rng.Float64() < p {
			n++
		}
	}
	return n
}

func assignIDs(agentID string, questions []Question) {
	for i := range questions {
		questions[i].ID = fmt.Sprintf("agent-%s-%d", agentID, i+1)
	}
}

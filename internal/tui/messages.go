package tui

import "github.com/abhisek/quizagent/internal/quiz"

// questionsReadyMsg carries the generated batch.
type questionsReadyMsg struct {
	Questions []quiz.Question
	Err       error
}

// gradedMsg carries the grading of an open-text answer.
type gradedMsg struct {
	Result *quiz.ValidationResult
	Err    error
}

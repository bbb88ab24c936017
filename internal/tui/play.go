// Package tui is the terminal quiz player.
package tui

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizagent/internal/quiz"
	"github.com/abhisek/quizagent/internal/ui/components"
	"github.com/abhisek/quizagent/internal/ui/layout"
	"github.com/abhisek/quizagent/internal/ui/theme"
)

// Quizzer is the part of quiz.Service the player needs.
type Quizzer interface {
	GenerateQuestions(ctx context.Context, agentID string, count int, difficulty quiz.Difficulty) ([]quiz.Question, error)
	ValidateAnswer(ctx context.Context, in quiz.AnswerInput) (*quiz.ValidationResult, error)
}

// Options selects what to play.
type Options struct {
	AgentID    string
	AgentName  string
	Count      int
	Difficulty quiz.Difficulty
}

type phase int

const (
	phaseLoading phase = iota
	phaseAnswering
	phaseGrading
	phaseFeedback
	phaseSummary
	phaseFailed
)

// Model plays one batch of questions.
type Model struct {
	ctx     context.Context
	quizzer Quizzer
	opts    Options

	phase     phase
	questions []quiz.Question
	current   int

	choice components.MultiChoice
	input  components.AnswerInput

	// lastResult is set after an open-text answer is graded.
	lastResult  *quiz.ValidationResult
	lastCorrect bool

	correct int
	earned  int
	err     error

	width  int
	height int
}

// New creates a player. Nothing is requested until Init.
func New(ctx context.Context, q Quizzer, opts Options) Model {
	return Model{ctx: ctx, quizzer: q, opts: opts}
}

func (m Model) Init() tea.Cmd {
	return m.generate()
}

func (m Model) generate() tea.Cmd {
	return func() tea.Msg {
		qs, err := m.quizzer.GenerateQuestions(m.ctx, m.opts.AgentID, m.opts.Count, m.opts.Difficulty)
		return questionsReadyMsg{Questions: qs, Err: err}
	}
}

func (m Model) grade(q quiz.Question, answer string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.quizzer.ValidateAnswer(m.ctx, quiz.AnswerInput{
			AgentID:      m.opts.AgentID,
			QuestionID:   q.ID,
			QuestionText: q.Text,
			UserAnswer:   answer,
			Difficulty:   q.Difficulty,
		})
		return gradedMsg{Result: res, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case questionsReadyMsg:
		if msg.Err != nil {
			m.phase, m.err = phaseFailed, msg.Err
			return m, nil
		}
		m.questions = msg.Questions
		if len(m.questions) == 0 {
			m.phase = phaseSummary
			return m, nil
		}
		cmd := m.load(0)
		return m, cmd

	case gradedMsg:
		if m.phase != phaseGrading {
			return m, nil
		}
		if msg.Err != nil {
			m.phase, m.err = phaseFailed, msg.Err
			return m, nil
		}
		m.lastResult = msg.Result
		m.settle(msg.Result.IsSuccessful)
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}

	if m.phase == phaseAnswering && !m.currentQuestion().IsChoice() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch m.phase {
	case phaseAnswering:
		q := m.currentQuestion()
		if q.IsChoice() {
			m.choice = m.choice.Update(msg)
			if m.choice.Submitted {
				m.settle(m.choice.IsCorrect())
			}
			return m, nil
		}
		if msg.String() == "enter" {
			answer := m.input.Value()
			if answer == "" {
				return m, nil
			}
			m.phase = phaseGrading
			return m, m.grade(q, answer)
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case phaseFeedback:
		if k := msg.String(); k == "enter" || k == "space" || k == " " {
			if m.current+1 >= len(m.questions) {
				m.phase = phaseSummary
				return m, nil
			}
			cmd := m.load(m.current + 1)
			return m, cmd
		}

	case phaseSummary, phaseFailed:
		if k := msg.String(); k == "enter" || k == "q" {
			return m, tea.Quit
		}
	}
	return m, nil
}

// load shows question i.
func (m *Model) load(i int) tea.Cmd {
	m.current = i
	m.phase = phaseAnswering
	m.lastResult = nil

	q := m.questions[i]
	if q.IsChoice() {
		correct := -1
		if q.CorrectIndex != nil {
			correct = *q.CorrectIndex
		}
		m.choice = components.NewMultiChoice(q.Text, q.Options, correct)
		return nil
	}
	m.input = components.NewAnswerInput("Type your answer and press Enter", 500)
	return m.input.Model.Focus()
}

// settle records the outcome of the current question.
func (m *Model) settle(correct bool) {
	m.phase = phaseFeedback
	m.lastCorrect = correct
	if correct {
		m.correct++
		m.earned += m.currentQuestion().Reward
	}
}

func (m Model) currentQuestion() quiz.Question {
	if m.current < len(m.questions) {
		return m.questions[m.current]
	}
	return quiz.Question{}
}

// Score returns the number of correct answers and the reward earned.
func (m Model) Score() (correct, earned int) {
	return m.correct, m.earned
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}

	title := m.opts.AgentName
	if title == "" {
		title = m.opts.AgentID
	}
	status := fmt.Sprintf("★ %d xp", m.earned)
	if len(m.questions) > 0 && m.phase != phaseSummary {
		status = fmt.Sprintf("%d/%d   %s", m.current+1, len(m.questions), status)
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.keyHints(), m.width)
	v.SetContent(layout.RenderFrame(header, m.content(), footer, m.width, m.height))
	return v
}

func (m Model) content() string {
	switch m.phase {
	case phaseLoading:
		return theme.Hint.Render("Generating questions...")
	case phaseFailed:
		return theme.Incorrect.Render("Something went wrong: ") + theme.Body.Render(m.err.Error())
	case phaseSummary:
		return m.summaryView()
	}

	q := m.currentQuestion()
	meta := theme.Hint.Render(fmt.Sprintf("%s · %s · %d xp", q.Topic, q.Difficulty, q.Reward))

	if q.IsChoice() {
		s := meta + "\n\n" + m.choice.View()
		if m.phase == phaseFeedback {
			s += "\n" + m.verdict()
			if q.Explanation != "" {
				s += "\n\n" + theme.Body.Render(q.Explanation)
			}
		}
		return s
	}

	s := meta + "\n\n" + lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(q.Text) + "\n\n" + m.input.View()
	switch m.phase {
	case phaseGrading:
		s += "\n\n" + theme.Hint.Render("Grading your answer...")
	case phaseFeedback:
		r := m.lastResult
		s += "\n\n" + m.verdict() + "  " +
			theme.Reward.Render(fmt.Sprintf("%d/%d points (%.0f%%)", r.PointsEarned, r.MaxPoints, r.Percentage))
		s += "\n\n" + theme.Card.Render(theme.Body.Render(r.Feedback))
		if !r.IsSuccessful && r.CorrectAnswer != "" {
			s += "\n\n" + theme.Hint.Render("Expected: ") + theme.Body.Render(r.CorrectAnswer)
		}
	}
	return s
}

func (m Model) verdict() string {
	if m.lastCorrect {
		return theme.Correct.Render("✓ Correct")
	}
	return theme.Incorrect.Render("✗ Not quite")
}

func (m Model) summaryView() string {
	total := len(m.questions)
	pct := 0.0
	if total > 0 {
		pct = float64(m.correct) / float64(total)
	}

	bar := components.ScoreBar{Label: "Score", Percent: pct, Width: max(m.width-8, 20)}
	return theme.Title.Render("Quiz complete") + "\n\n" +
		theme.Body.Render(fmt.Sprintf("%d of %d correct", m.correct, total)) + "\n" +
		theme.Reward.Render(fmt.Sprintf("★ %d xp earned", m.earned)) + "\n\n" +
		bar.View()
}

func (m Model) keyHints() []layout.KeyHint {
	quit := layout.KeyHint{Key: "Esc", Description: "Quit"}
	switch m.phase {
	case phaseAnswering:
		if m.currentQuestion().IsChoice() {
			return []layout.KeyHint{{Key: "↑↓", Description: "Navigate"}, {Key: "A-D", Description: "Answer"}, {Key: "Enter", Description: "Submit"}, quit}
		}
		return []layout.KeyHint{{Key: "Enter", Description: "Submit"}, quit}
	case phaseFeedback:
		return []layout.KeyHint{{Key: "Enter", Description: "Next"}, quit}
	case phaseSummary, phaseFailed:
		return []layout.KeyHint{{Key: "Enter", Description: "Exit"}}
	}
	return []layout.KeyHint{quit}
}

// Run plays one batch in the terminal and returns the final score.
func Run(ctx context.Context, q Quizzer, opts Options) (correct, earned int, err error) {
	final, err := tea.NewProgram(New(ctx, q, opts)).Run()
	if err != nil {
		return 0, 0, fmt.Errorf("run player: %w", err)
	}
	if fm, ok := final.(Model); ok {
		correct, earned = fm.Score()
	}
	return correct, earned, nil
}

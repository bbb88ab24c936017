package quiz

// Kind selects the question variant.
type Kind string

const (
	// KindChoice is a multiple-choice question with exactly 4 options.
	KindChoice Kind = "multiple_choice"

	// KindOpenText is a free-text question graded by the Validator.
	KindOpenText Kind = "text_question"
)

// Question is a generated quiz question. The JSON names are the ones the
// web client reads.
type Question struct {
	// ID is assigned after final ordering: agent-<agentID>-<position>.
	ID string `json:"id"`

	Kind Kind   `json:"type"`
	Text string `json:"question"`

	// Options, CorrectIndex and Explanation are set only for KindChoice.
	Options      []string `json:"options,omitempty"`
	CorrectIndex *int     `json:"correctAnswer,omitempty"`
	Explanation  string   `json:"explanation,omitempty"`

	Difficulty Difficulty `json:"difficulty"`
	Topic      string     `json:"topic"`

	// Reward is the display/gamification value, drawn from the
	// difficulty's reward range when the model does not supply one.
	Reward int `json:"xp"`
}

// IsChoice reports whether q is a multiple-choice question.
func (q Question) IsChoice() bool {
	return q.Kind == KindChoice
}

// KnowledgeContext is the read-only view of an agent the engines work from.
type KnowledgeContext struct {
	DisplayName      string
	KnowledgeSummary string
}

// ValidationResult is the outcome of grading one answer.
type ValidationResult struct {
	IsSuccessful bool    `json:"is_successful"`
	PointsEarned int     `json:"points_earned"`
	MaxPoints    int     `json:"max_points"`
	Percentage   float64 `json:"percentage"`
	Feedback     string  `json:"feedback"`

	// CorrectAnswer is non-empty if and only if IsSuccessful is false.
	CorrectAnswer string `json:"correct_answer,omitempty"`
}

// AnswerInput describes one learner answer to grade. QuestionID and
// QuestionText are taken at face value; they are not checked against any
// stored question.
type AnswerInput struct {
	AgentID      string
	QuestionID   string
	QuestionText string
	UserAnswer   string
	Difficulty   Difficulty
}

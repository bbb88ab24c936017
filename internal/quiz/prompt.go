package quiz

import (
	"bytes"
	"fmt"
	"text/template"
)

// GenerationPromptInput is everything a generation prompt interpolates.
type GenerationPromptInput struct {
	AgentID          string
	DisplayName      string
	KnowledgeSummary string
	Difficulty       Difficulty // may be unspecified
	Count            int
	Language         string
}

// GradingPromptInput is everything a grading prompt interpolates.
type GradingPromptInput struct {
	KnowledgeSummary string
	QuestionText     string
	UserAnswer       string
	Difficulty       Difficulty
	MaxPoints        int
	Language         string
}

const generationHeader = `You are an expert educator writing quiz questions about "{{.DisplayName}}".
Write all question text{{if .Choice}}, options and explanations{{end}} in {{.Language}}.

KNOWLEDGE BASE:
{{.KnowledgeSummary}}

`

var choicePromptTmpl = template.Must(template.New("choice").Parse(generationHeader +
	`Generate exactly {{.Count}} multiple-choice questions based only on the knowledge base above.
{{if .Difficulty}}Every question must have difficulty "{{.Difficulty}}".{{else}}Use a mix of the difficulties beginner, intermediate and advanced.{{end}}

RULES:
- Each question has exactly 4 distinct options and exactly one of them is correct.
- "correctAnswer" is the zero-based index (0 to 3) of the correct option.
- "explanation" says why the correct option is right according to the knowledge base.
- "xp" is an integer: beginner {{.Beginner.Min}}-{{.Beginner.Max}}, intermediate {{.Intermediate.Min}}-{{.Intermediate.Max}}, advanced {{.Advanced.Min}}-{{.Advanced.Max}}.
- Do not write any text before or after the JSON.
- Do not wrap the JSON in code fences or markdown.

Respond ONLY with a JSON array of exactly {{.Count}} objects in this format:
[
  {
    "id": "{{.AgentID}}-1",
    "type": "multiple_choice",
    "question": "Question text",
    "options": ["Option A", "Option B", "Option C", "Option D"],
    "correctAnswer": 0,
    "explanation": "Why the correct option is right",
    "difficulty": "{{.ExampleDifficulty}}",
    "topic": "{{.Topic}}",
    "xp": {{.ExampleReward}}
  }
]
`))

var openTextPromptTmpl = template.Must(template.New("open-text").Parse(generationHeader +
	`Generate exactly {{.Count}} open-ended questions based only on the knowledge base above.
{{if .Difficulty}}Every question must have difficulty "{{.Difficulty}}".{{else}}Use a mix of the difficulties beginner, intermediate and advanced.{{end}}

RULES:
- Questions need a detailed written answer that shows real understanding.
- Ask the learner to explain, describe, analyze or compare concepts, processes or applications.
- "xp" is an integer: beginner {{.Beginner.Min}}-{{.Beginner.Max}}, intermediate {{.Intermediate.Min}}-{{.Intermediate.Max}}, advanced {{.Advanced.Min}}-{{.Advanced.Max}}.
- Do not write any text before or after the JSON.
- Do not wrap the JSON in code fences or markdown.

Respond ONLY with a JSON array of exactly {{.Count}} objects in this format:
[
  {
    "id": "{{.AgentID}}-1",
    "type": "text_question",
    "question": "Open question text",
    "difficulty": "{{.ExampleDifficulty}}",
    "topic": "{{.Topic}}",
    "xp": {{.ExampleReward}}
  }
]
`))

var gradingPromptTmpl = template.Must(template.New("grading").Parse(
	`You are an expert educational evaluator. Grade the learner's answer using the knowledge base as the reference.
Write the feedback and the correct answer in {{.Language}}.

KNOWLEDGE BASE:
{{.KnowledgeSummary}}

QUESTION: {{.QuestionText}}

LEARNER ANSWER: {{.UserAnswer}}

DIFFICULTY: {{.Difficulty}}
MAXIMUM POINTS: {{.MaxPoints}}

INSTRUCTIONS:
1. Judge how well the answer responds to the question.
2. Consider accuracy, completeness and the understanding shown.
3. Award between 0 and {{.MaxPoints}} points.
4. An answer earning at least 75% of the maximum points is successful.

EVALUATION CRITERIA:
- {{.Difficulty}} level: {{.Rubric}}
- Technical accuracy according to the knowledge base
- Clarity and organization of the answer

Respond ONLY with a JSON object in exactly this format, with no text before or after it and no code fences:
{
  "pointsEarned": <integer from 0 to {{.MaxPoints}}>,
  "feedback": "Detailed feedback on the learner's answer",
  "correctAnswer": "The complete correct answer (only when the learner's answer is wrong or incomplete)"
}
`))

type generationTemplateData struct {
	GenerationPromptInput
	Choice            bool
	Topic             string
	ExampleDifficulty Difficulty
	ExampleReward     int
	Beginner          RewardRange
	Intermediate      RewardRange
	Advanced          RewardRange
}

func newGenerationTemplateData(in GenerationPromptInput, choice bool) generationTemplateData {
	example := in.Difficulty.OrBeginner()
	return generationTemplateData{
		GenerationPromptInput: in,
		Choice:                choice,
		Topic:                 defaultTopic(in.DisplayName),
		ExampleDifficulty:     example,
		ExampleReward:         RewardRangeFor(example).Min,
		Beginner:              RewardRangeFor(DifficultyBeginner),
		Intermediate:          RewardRangeFor(DifficultyIntermediate),
		Advanced:              RewardRangeFor(DifficultyAdvanced),
	}
}

// BuildChoicePrompt renders the prompt for a batch of multiple-choice questions.
func BuildChoicePrompt(in GenerationPromptInput) (string, error) {
	return render(choicePromptTmpl, newGenerationTemplateData(in, true))
}

// BuildOpenTextPrompt renders the prompt for a batch of open-text questions.
func BuildOpenTextPrompt(in GenerationPromptInput) (string, error) {
	return render(openTextPromptTmpl, newGenerationTemplateData(in, false))
}

// BuildGradingPrompt renders the prompt that asks the model to score one answer.
func BuildGradingPrompt(in GradingPromptInput) (string, error) {
	data := struct {
		GradingPromptInput
		Rubric string
	}{
		GradingPromptInput: in,
		Rubric:             Rubric(in.Difficulty),
	}
	return render(gradingPromptTmpl, data)
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}

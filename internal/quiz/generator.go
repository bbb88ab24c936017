package quiz

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/quizagent/internal/llm"
	"github.com/abhisek/quizagent/internal/logging"
)

// Completer is the single-prompt model call the engines depend on.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// GenerateRequest describes one batch of questions for a resolved agent.
type GenerateRequest struct {
	AgentID    string
	Knowledge  *KnowledgeContext // nil means missing
	Count      int
	Difficulty Difficulty
}

// Generator produces question batches. Model and parse failures never
// escape: they are replaced by fallback questions per partition.
type Generator struct {
	completer Completer
	cfg       Config
	rng       Rand
}

// NewGenerator creates a Generator. A nil rng uses DefaultRand.
func NewGenerator(c Completer, cfg Config, rng Rand) *Generator {
	if rng == nil {
		rng = DefaultRand()
	}
	return &Generator{completer: c, cfg: cfg, rng: rng}
}

// Generate returns exactly req.Count questions with contiguous IDs.
func (g *Generator) Generate(ctx context.Context, req GenerateRequest) []Question {
	log := logging.FromContext(ctx).WithFields(logrus.Fields{
		"agent_id": req.AgentID,
		"count":    req.Count,
	})

	displayName := ""
	if req.Knowledge != nil {
		displayName = req.Knowledge.DisplayName
	}

	if !g.sufficient(req.Knowledge) {
		log.Info("Knowledge base insufficient, using fallback questions")
		return FallbackMixed(req.AgentID, displayName, req.Count, req.Difficulty, g.cfg.OpenTextProbability, g.rng)
	}

	numOpen := drawOpenTextCount(req.Count, g.cfg.OpenTextProbability, g.rng)
	numChoice := req.Count - numOpen

	in := GenerationPromptInput{
		AgentID:          req.AgentID,
		DisplayName:      displayName,
		KnowledgeSummary: req.Knowledge.KnowledgeSummary,
		Difficulty:       req.Difficulty,
		Language:         g.cfg.Language,
	}

	questions := append(
		g.partition(ctx, log, in, KindChoice, numChoice),
		g.partition(ctx, log, in, KindOpenText, numOpen)...,
	)

	g.rng.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
	assignIDs(req.AgentID, questions)
	return questions
}

func (g *Generator) sufficient(k *KnowledgeContext) bool {
	return k != nil && len([]rune(strings.TrimSpace(k.KnowledgeSummary))) >= g.cfg.MinKnowledgeLength
}

// partition requests count questions of one kind. Any failure replaces
// the whole partition with fallback questions.
func (g *Generator) partition(ctx context.Context, log logrus.FieldLogger, in GenerationPromptInput, kind Kind, count int) []Question {
	if count == 0 {
		return nil
	}
	in.Count = count
	log = log.WithFields(logrus.Fields{"kind": kind, "partition": count})

	records, err := g.request(ctx, in, kind)
	if err != nil {
		log.WithError(err).Warn("Question generation failed, using fallback questions")
		return FallbackQuestions(in.AgentID, in.DisplayName, kind, count, in.Difficulty, g.rng)
	}

	mapper := recordMapper{displayName: in.DisplayName, rng: g.rng}
	out := make([]Question, 0, count)
	replaced := 0
	for _, rec := range records {
		if len(out) == count {
			break
		}
		var (
			q  Question
			ok bool
		)
		if kind == KindChoice {
			q, ok = mapper.choice(rec)
		} else {
			q, ok = mapper.openText(rec)
		}
		if !ok {
			replaced++
			q = FallbackQuestions(in.AgentID, in.DisplayName, kind, 1, in.Difficulty, g.rng)[0]
		}
		out = append(out, q)
	}

	if missing := count - len(out); missing > 0 {
		out = append(out, FallbackQuestions(in.AgentID, in.DisplayName, kind, missing, in.Difficulty, g.rng)...)
		replaced += missing
	}
	if replaced > 0 {
		log.WithField("replaced", replaced).Warn("Model returned unusable questions, filled from fallback")
	}
	return out
}

func (g *Generator) request(ctx context.Context, in GenerationPromptInput, kind Kind) ([]any, error) {
	build, purpose := BuildChoicePrompt, "quiz-choice"
	if kind == KindOpenText {
		build, purpose = BuildOpenTextPrompt, "quiz-open-text"
	}

	prompt, err := build(in)
	if err != nil {
		return nil, err
	}

	raw, err := g.completer.Complete(llm.WithPurpose(ctx, purpose), prompt)
	if err != nil {
		return nil, fmt.Errorf("complete %s prompt: %w", kind, err)
	}
	return DecodeArray(raw)
}

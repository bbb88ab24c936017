package quiz

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Field readers for decoded model records. They never fail: a missing key
// or a value of the wrong type reads as absent.

func stringField(rec map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := rec[k].(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func numberField(rec map[string]any, keys ...string) (float64, bool) {
	for _, k := range keys {
		switch v := rec[k].(type) {
		case float64:
			return finite(v)
		case json.Number:
			if f, err := v.Float64(); err == nil {
				return finite(f)
			}
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return finite(f)
			}
		}
	}
	return 0, false
}

// finite rejects NaN and the infinities, which ParseFloat accepts as text.
func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// intField reads a number that fits in 32 bits once rounded.
func intField(rec map[string]any, keys ...string) (int, bool) {
	f, ok := numberField(rec, keys...)
	if !ok {
		return 0, false
	}
	f = math.Round(f)
	if f < math.MinInt32 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func stringsField(rec map[string]any, key string) []string {
	items, ok := rec[key].([]any)
	if !ok {
		return nil
	}
	return lo.FilterMap(items, func(item any, _ int) (string, bool) {
		switch v := item.(type) {
		case string:
			s := strings.TrimSpace(v)
			return s, s != ""
		case float64, bool:
			return fmt.Sprint(v), true
		}
		return "", false
	})
}

func defaultTopic(displayName string) string {
	return strings.ToLower(strings.TrimSpace(displayName))
}

// recordMapper turns decoded records into questions. Missing fields get
// defaults; the reward falls back to a draw from the record's own
// difficulty, not the requested one.
type recordMapper struct {
	displayName string
	rng         Rand
}

func (m recordMapper) common(rec map[string]any, kind Kind) (Question, bool) {
	text := stringField(rec, "question", "text")
	if text == "" {
		return Question{}, false
	}

	diff := Difficulty(strings.ToLower(stringField(rec, "difficulty"))).OrBeginner()

	// A model reward outside the difficulty's range is redrawn.
	reward, ok := intField(rec, "xp", "reward")
	if r := RewardRangeFor(diff); !ok || reward < r.Min || reward > r.Max {
		reward = drawReward(diff, m.rng)
	}

	topic := stringField(rec, "topic")
	if topic == "" {
		topic = defaultTopic(m.displayName)
	}

	return Question{
		Kind:       kind,
		Text:       text,
		Difficulty: diff,
		Topic:      topic,
		Reward:     reward,
	}, true
}

// choice maps one record to a choice question. The second result is false
// when the record cannot satisfy the choice-question shape: 4 distinct
// options and a correct index in 0..3.
func (m recordMapper) choice(raw any) (Question, bool) {
	rec, ok := raw.(map[string]any)
	if !ok {
		return Question{}, false
	}
	q, ok := m.common(rec, KindChoice)
	if !ok {
		return Question{}, false
	}

	q.Options = stringsField(rec, "options")
	idx, _ := intField(rec, "correctAnswer", "correct_answer", "correctIndex")
	q.CorrectIndex = lo.ToPtr(idx)
	q.Explanation = stringField(rec, "explanation")

	if len(q.Options) != 4 || len(lo.Uniq(q.Options)) != 4 || idx < 0 || idx > 3 {
		return q, false
	}
	return q, true
}

// openText maps one record to an open-text question.
func (m recordMapper) openText(raw any) (Question, bool) {
	rec, ok := raw.(map[string]any)
	if !ok {
		return Question{}, false
	}
	return m.common(rec, KindOpenText)
}

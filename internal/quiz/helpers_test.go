package quiz

import (
	"math/rand/v2"
	"strconv"

	"github.com/abhisek/quizagent/internal/llm"
)

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

// scriptedRand returns queued Float64 values first, then falls back to a
// seeded source. Used to pin the choice/open-text split.
type scriptedRand struct {
	*rand.Rand
	floats []float64
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return r.Rand.Float64()
	}
	f := r.floats[0]
	r.floats = r.floats[1:]
	return f
}

func mockCompleter(responses ...llm.MockResponse) (*llm.MockProvider, *llm.Completer) {
	mock := llm.NewMockProvider(responses...)
	return mock, llm.NewCompleter(mock, llm.DefaultCompleterConfig())
}

func testConfig(openTextProbability float64) Config {
	cfg := DefaultConfig()
	cfg.OpenTextProbability = openTextProbability
	return cfg
}

const testKnowledge = "Photosynthesis converts light energy into chemical energy stored in glucose."

func itoa(i int) string {
	return strconv.Itoa(i)
}

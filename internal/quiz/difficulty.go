package quiz

import (
	"fmt"
	"strings"
)

// Difficulty is the level a question is pitched at. The zero value means
// the caller did not ask for a specific level.
type Difficulty string

const (
	DifficultyUnspecified  Difficulty = ""
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// AllDifficulties lists the levels in ascending order.
var AllDifficulties = []Difficulty{
	DifficultyBeginner,
	DifficultyIntermediate,
	DifficultyAdvanced,
}

// RewardRange is an inclusive integer range.
type RewardRange struct {
	Min int
	Max int
}

var maxPointsTable = map[Difficulty]int{
	DifficultyBeginner:     100,
	DifficultyIntermediate: 130,
	DifficultyAdvanced:     160,
}

var rewardTable = map[Difficulty]RewardRange{
	DifficultyBeginner:     {Min: 80, Max: 100},
	DifficultyIntermediate: {Min: 100, Max: 130},
	DifficultyAdvanced:     {Min: 130, Max: 160},
}

var rubricTable = map[Difficulty]string{
	DifficultyBeginner:     "fundamental concepts and comprehension",
	DifficultyIntermediate: "practical application and analysis",
	DifficultyAdvanced:     "advanced synthesis and critical thinking",
}

// ParseDifficulty maps user input to a Difficulty. The empty string maps
// to DifficultyUnspecified.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if d == DifficultyUnspecified || d.Valid() {
		return d, nil
	}
	return "", fmt.Errorf("unknown difficulty %q (want beginner, intermediate or advanced)", s)
}

// Valid reports whether d is one of the three known levels.
func (d Difficulty) Valid() bool {
	_, ok := maxPointsTable[d]
	return ok
}

// OrBeginner returns d, or beginner when d is unknown or unspecified.
func (d Difficulty) OrBeginner() Difficulty {
	if d.Valid() {
		return d
	}
	return DifficultyBeginner
}

// MaxPoints is the grading ceiling. Unknown levels use the beginner ceiling.
func MaxPoints(d Difficulty) int {
	return maxPointsTable[d.OrBeginner()]
}

// RewardRangeFor returns the reward range. Unknown levels use the beginner range.
func RewardRangeFor(d Difficulty) RewardRange {
	return rewardTable[d.OrBeginner()]
}

// Rubric is the grading guidance stated in the grading prompt.
func Rubric(d Difficulty) string {
	return rubricTable[d.OrBeginner()]
}

// drawReward picks a reward uniformly from the range of d.
func drawReward(d Difficulty, rng Rand) int {
	r := RewardRangeFor(d)
	return r.Min + rng.IntN(r.Max-r.Min+1)
}

// drawDifficulty returns d when set, otherwise a uniformly drawn level.
func drawDifficulty(d Difficulty, rng Rand) Difficulty {
	if d.Valid() {
		return d
	}
	return AllDifficulties[rng.IntN(len(AllDifficulties))]
}

package quiz

import "math/rand/v2"

// Rand is the source of randomness for the type mix, reward draws and the
// final shuffle. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// globalRand delegates to the goroutine-safe top-level math/rand/v2 functions.
type globalRand struct{}

func (globalRand) Float64() float64                   { return rand.Float64() }
func (globalRand) IntN(n int) int                     { return rand.IntN(n) }
func (globalRand) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// DefaultRand returns a Rand that is safe for concurrent use.
func DefaultRand() Rand {
	return globalRand{}
}

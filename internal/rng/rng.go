// internal/rng/rng.go
package rng

import (
	"math/rand"
	"time"
)

// RNG is the injectable randomness capability used by the pack generators
// and the bot drafter. Next returns a uniform float in [0, 1). Passing the
// source explicitly keeps generation and bot decisions replayable.
type RNG interface {
	Next() float64
}

type source struct {
	r *rand.Rand
}

func (s *source) Next() float64 {
	return s.r.Float64()
}

// New returns a seeded RNG.
func New(seed int64) RNG {
	return &source{r: rand.New(rand.NewSource(seed))}
}

// NewFromTime returns an RNG seeded from the current time.
func NewFromTime() RNG {
	return New(time.Now().UnixNano())
}

type sequence struct {
	vals []float64
	i    int
}

func (s *sequence) Next() float64 {
	if len(s.vals) == 0 {
		return 0
	}
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

// Sequence returns an RNG that replays the given fractions in order,
// cycling when exhausted. Intended for tests.
func Sequence(vals ...float64) RNG {
	return &sequence{vals: vals}
}

// Intn maps one roll onto [0, n).
func Intn(r RNG, n int) int {
	if n <= 0 {
		return 0
	}
	i := int(r.Next() * float64(n))
	if i >= n { // guard against Next returning values just below 1.0
		i = n - 1
	}
	return i
}

// Shuffle performs a Fisher-Yates shuffle in place using r.
func Shuffle[T any](r RNG, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := Intn(r, i+1)
		s[i], s[j] = s[j], s[i]
	}
}

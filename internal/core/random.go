package core

import (
	"fmt"
	"math/rand"
)

// Source is the random source threaded through every operation that needs entropy.
// Implementations must advance exactly once per call so that a fixed seed always
// replays the same sequence.
type Source interface {
	// Intn returns a uniform integer in [0, n). n must be positive.
	Intn(n int) int

	// Float64 returns a uniform float in [0, 1).
	Float64() float64
}

// NewSource returns a deterministic pseudo-random source for the given seed.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// SequenceSource replays a fixed list of draws. It is meant for tests that need to
// force a specific branch of a random decision.
//
// Intn returns the next integer reduced modulo n; Float64 returns the next float.
// When a list is exhausted it wraps around to its start.
type SequenceSource struct {
	Ints   []int
	Floats []float64

	intPos   int
	floatPos int
}

// NewSequenceSource creates a source that replays ints and floats in order.
func NewSequenceSource(ints []int, floats []float64) *SequenceSource {
	return &SequenceSource{Ints: ints, Floats: floats}
}

// Intn implements Source.
func (s *SequenceSource) Intn(n int) int {
	if n <= 0 {
		panic(fmt.Sprintf("core: Intn called with non-positive n=%d", n))
	}
	if len(s.Ints) == 0 {
		return 0
	}
	v := s.Ints[s.intPos%len(s.Ints)]
	s.intPos++
	if v < 0 {
		v = -v
	}
	return v % n
}

// Float64 implements Source.
func (s *SequenceSource) Float64() float64 {
	if len(s.Floats) == 0 {
		return 0
	}
	v := s.Floats[s.floatPos%len(s.Floats)]
	s.floatPos++
	return v
}

// Draws returns how many integer and float draws have been consumed.
func (s *SequenceSource) Draws() (ints, floats int) {
	return s.intPos, s.floatPos
}

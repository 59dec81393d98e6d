// Package rng provides the seeded pseudo-random stream that drives mutation.
//
// A [Stream] is owned by exactly one consumer and seeded once. The two draw
// operations are the only way values leave it, so the order in which a caller
// invokes them fully determines the output for a given seed.
package rng

import "math/rand/v2"

// Stream is a deterministic source of percent rolls and byte values.
//
// Not safe for concurrent use.
type Stream struct {
	r    *rand.Rand
	seed int64
}

// New returns a Stream seeded from seed.
func New(seed int64) *Stream {
	return &Stream{
		r:    rand.New(rand.NewPCG(uint64(seed), 0)),
		seed: seed,
	}
}

// Seed returns the value the stream was created with.
func (s *Stream) Seed() int64 {
	return s.seed
}

// Percent returns a uniform value in [0, 100).
func (s *Stream) Percent() int {
	return s.r.IntN(100)
}

// Byte returns a uniform value in [0, 255].
func (s *Stream) Byte() byte {
	return byte(s.r.UintN(256))
}

// Chance draws one percent roll and reports whether it fell below pct.
func (s *Stream) Chance(pct int) bool {
	return s.Percent() < pct
}

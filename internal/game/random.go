/*
Package game
File: random.go
Description:
    The seeded random stream shared by procedural generators.
    Generators that must not perturb other draws save the seed with Seed(),
    reseed, and restore it with SetSeed() when done.
*/

package game

import "math/rand"

// SeededRandom is a reseedable pseudo-random stream.
type SeededRandom struct {
	seed int64
	rng  *rand.Rand
}

// NewSeededRandom creates a stream positioned at the start of seed's sequence.
func NewSeededRandom(seed int64) *SeededRandom {
	return &SeededRandom{seed: seed, rng: rand.New(rand.NewSource(seed))}
}

// Seed returns the seed the stream was last (re)started from.
func (r *SeededRandom) Seed() int64 {
	return r.seed
}

// SetSeed restarts the stream from the beginning of seed's sequence.
func (r *SeededRandom) SetSeed(seed int64) {
	r.seed = seed
	r.rng = rand.New(rand.NewSource(seed))
}

// Int returns a value in [min, max). Returns min when the range is empty.
func (r *SeededRandom) Int(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.rng.Intn(max-min)
}

// Float returns a value in [min, max).
func (r *SeededRandom) Float(min, max float64) float64 {
	return min + r.rng.Float64()*(max-min)
}

// Test returns true with probability p.
func (r *SeededRandom) Test(p float64) bool {
	return r.rng.Float64() < p
}

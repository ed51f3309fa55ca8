// Package rng wraps a seedable, reproducible pseudo-random source for
// the shuffle engine, mirroring the seeded rand.Source construction
// already used for reproducible sampling elsewhere in the pack.
package rng

import "math/rand"

// Source is a reproducible source of randomness. A Source seeded with
// the same value always produces the same sequence of draws.
type Source struct {
	r *rand.Rand
}

// New returns a Source seeded with seed.
func New(seed int64) *Source {
	return &Source{r: rand.New(rand.NewSource(seed))}
}

// Intn returns a pseudo-random int in [0, n).
func (s *Source) Intn(n int) int { return s.r.Intn(n) }

// Shuffle permutes the n elements of a slice in place using swap(i, j),
// per the Fisher-Yates algorithm (see math/rand.Shuffle).
func (s *Source) Shuffle(n int, swap func(i, j int)) { s.r.Shuffle(n, swap) }

// PerSequenceResetter produces a fresh, independently-seeded Source for
// each sequence index, used by the shuffler's -R mode to make every
// sequence's shuffle reproducible in isolation, independent of
// processing order.
type PerSequenceResetter struct {
	baseSeed int64
}

// NewPerSequenceResetter returns a resetter derived from baseSeed.
func NewPerSequenceResetter(baseSeed int64) *PerSequenceResetter {
	return &PerSequenceResetter{baseSeed: baseSeed}
}

// For returns the Source to use for the sequence at the given index.
func (p *PerSequenceResetter) For(seqIndex int) *Source {
	return New(p.baseSeed + int64(seqIndex))
}

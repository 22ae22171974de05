// Package rng constructs the deterministic random sources used by the
// simulation. Randomness is always injected: nothing in this module reads
// the global rand state, so a run is reproducible from its seed alone.
package rng

import "math/rand/v2"

// New returns the base random stream for the given seed.
func New(seed int64) *rand.Rand {
	return Stream(seed, 0)
}

// Stream returns an independent substream of the given seed. Distinct
// stream numbers yield statistically independent sequences, which lets the
// driver hand one stream to each grid row and stay deterministic no matter
// how many workers advance the generation.
func Stream(seed int64, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), stream))
}

// Roll reports a single Bernoulli trial: true with probability p.
// p <= 0 never succeeds and p >= 1 always does; either way exactly one
// uniform draw is consumed so call sequences stay aligned across runs.
func Roll(r *rand.Rand, p float64) bool {
	return r.Float64() < p
}

package core

// RNG is a deterministic pseudo-random number generator.
// Uses a simple LCG (Linear Congruential Generator) so that world generation
// and simulation streams replay identically for a given seed.
type RNG struct {
	state uint64
}

// NewRNG creates a new RNG with the given seed.
func NewRNG(seed int64) *RNG {
	s := uint64(seed) //#nosec G115 -- intentional conversion for RNG seeding
	if s == 0 {
		s = 1
	}
	return &RNG{state: s}
}

// Next generates the next random uint64.
func (r *RNG) Next() uint64 {
	// LCG parameters (same as MINSTD)
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Intn returns a random int in [0, n).
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n)) //#nosec G115 -- n is always positive
}

// IntRange returns a random int in [min, max] inclusive.
func (r *RNG) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.Intn(max-min+1)
}

// Float64 returns a random float64 in [0, 1).
func (r *RNG) Float64() float64 {
	return float64(r.Next()) / float64(1<<64)
}

// Range returns a random float64 in [min, max).
func (r *RNG) Range(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + r.Float64()*(max-min)
}

// Chance returns true with probability p in [0, 1].
func (r *RNG) Chance(p float64) bool {
	return r.Float64() < p
}

// State returns the internal generator state for snapshots.
func (r *RNG) State() uint64 {
	return r.state
}

// Restore sets the internal generator state from a snapshot.
func (r *RNG) Restore(state uint64) {
	if state == 0 {
		state = 1
	}
	r.state = state
}

package pet

import "math/rand"

// QualityRoller draws the raw quality of a finished framework.
// Roll must return a value in [1, max].
type QualityRoller interface {
	Roll(max int) int
}

// RollerFunc adapts a function to QualityRoller.
type RollerFunc func(max int) int

// Roll calls f.
func (f RollerFunc) Roll(max int) int {
	return f(max)
}

// RandRoller rolls uniformly with a seeded source. Not safe for concurrent
// use on its own; the Engine serializes calls.
type RandRoller struct {
	rng *rand.Rand
}

// NewRandRoller creates a roller seeded with seed.
func NewRandRoller(seed int64) *RandRoller {
	return &RandRoller{rng: rand.New(rand.NewSource(seed))}
}

// Roll returns a uniform value in [1, max].
func (r *RandRoller) Roll(max int) int {
	if max < 1 {
		return 1
	}
	return r.rng.Intn(max) + 1
}

package tilelib

import (
	"math/rand"

	"github.com/nodegrid/tis100sim/tile"
)

// RandomInputs returns a deterministic pseudo-random []int of length n,
// seeded by seed, with values in [lo, hi]. The CLI uses this to refresh
// a puzzle's input data between the three consecutive test runs a
// single-puzzle invocation performs, while keeping the whole run
// reproducible given the same seed.
func RandomInputs(seed int64, n, lo, hi int) []int {
	r := rand.New(rand.NewSource(seed))
	out := make([]int, n)
	span := hi - lo + 1
	for i := range out {
		out[i] = lo + r.Intn(span)
	}
	return out
}

// Refreshed returns a copy of p with every Inputs entry's Data replaced
// by freshly generated random values of the same length, in the range
// [lo, hi] given by the caller (input i is seeded with seed+i). Outputs'
// expected Data is left untouched by this package: a catalog puzzle
// that wants randomized verification must recompute its own expected
// sequence from the refreshed inputs, since only the puzzle's own logic
// knows the transformation it's testing.
func Refreshed(p *tile.Puzzle, seed int64, lo, hi int) *tile.Puzzle {
	clone := *p
	clone.Inputs = make([]tile.IOSpec, len(p.Inputs))
	for i, in := range p.Inputs {
		clone.Inputs[i] = in
		clone.Inputs[i].Data = RandomInputs(seed+int64(i), len(in.Data), lo, hi)
	}
	return &clone
}

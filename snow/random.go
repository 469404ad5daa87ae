package snow

import "math/rand/v2"

// Source supplies uniform random integers in [0, n).
type Source interface {
	IntN(n int) int
}

// NewSource returns a deterministic PCG-backed source for seed.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

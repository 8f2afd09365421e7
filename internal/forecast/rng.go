// Package forecast turns transaction and recurrence history into a
// percentile-banded Monte Carlo balance forecast.
package forecast

import "math"

// Rand is a splitmix64 generator state. Stepping returns the next value
// and the next state instead of mutating, so simulation runs stay
// composable and safe to execute in parallel.
type Rand uint64

// SeedForRun derives the deterministic generator state for one simulation
// run. The same base seed and run index always produce the same stream.
func SeedForRun(base uint64, run int) Rand {
	return Rand(base + uint64(run)*0x9E3779B97F4A7C15)
}

// Next returns a uniform float64 in [0, 1) and the advanced state.
func (r Rand) Next() (float64, Rand) {
	s := uint64(r) + 0x9E3779B97F4A7C15
	z := s
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z ^= z >> 31
	return float64(z>>11) / (1 << 53), Rand(s)
}

// Norm returns a standard normal draw via the Box-Muller transform and
// the advanced state.
func (r Rand) Norm() (float64, Rand) {
	u1, r := r.Next()
	u2, r := r.Next()
	if u1 == 0 {
		u1 = 1e-300 // log(0) guard
	}
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	return z, r
}

package bloom

import "math"

// Size computes Bloom filter parameters from capacity (n) and target FP rate (p)
// using the standard formulas:
//
//	m = - (n * ln p) / (ln 2)^2
//	k = (m / n) * ln 2
//
// k is clamped to at least 1. Inputs are assumed valid (n > 0, 0 < p < 1);
// New performs the strict validation before calling this.
// Pure math; no external dependencies beyond stdlib.
func Size(n uint64, p float64) (m uint64, k uint64) {
	ln2 := math.Ln2
	m = uint64(math.Ceil(-float64(n) * math.Log(p) / (ln2 * ln2)))
	k = uint64(math.Max(1, math.Round((float64(m)/float64(n))*ln2)))
	return m, k
}

package filter

import (
	"fmt"
	"math"
)

// Calculate returns the bit-array size m and the probe count k for a filter
// expected to hold n keys at false-positive probability p:
//
//	m = ceil(-(n * ln(p)) / (ln(2))^2)
//	k = ceil((m / n) * ln(2)), at least 1
func Calculate(n uint64, p float64) (m, k uint64, err error) {
	if n == 0 {
		return 0, 0, fmt.Errorf("%w: n must be positive", ErrInvalidArgument)
	}
	if !(p > 0 && p < 1) {
		return 0, 0, fmt.Errorf("%w: p must be in (0, 1), got %v", ErrInvalidArgument, p)
	}

	mf := math.Ceil(-(float64(n) * math.Log(p)) / (math.Ln2 * math.Ln2))
	if mf < 1 || mf >= math.MaxUint64 {
		return 0, 0, fmt.Errorf("%w: derived m=%v out of range", ErrInvalidArgument, mf)
	}
	m = uint64(mf)

	k = uint64(math.Ceil(float64(m) / float64(n) * math.Ln2))
	k = max(k, 1)
	return m, k, nil
}

// EstimateFalsePositiveRate returns the analytic false-positive probability
// (1 - e^(-kn/m))^k of a filter with m bits and k probes holding n keys.
func EstimateFalsePositiveRate(m, k, n uint64) float64 {
	if m == 0 {
		return 1
	}
	return math.Pow(1-math.Exp(-float64(k)*float64(n)/float64(m)), float64(k))
}

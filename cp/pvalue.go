// SPDX-License-Identifier: MIT

package cp

import "fmt"

// PValue returns the conformal p-value of the last score in scores:
//
//	p = |{k : scores[k] >= scores[n-1]}| / n
//
// The candidate is counted in both numerator and denominator and ties count
// fully. The comparison must stay inclusive (>=).
//
// Errors: ErrInvalidInput on an empty slice.
// Complexity: O(n).
func PValue(scores []float64) (float64, error) {
	n := len(scores)
	if n == 0 {
		return 0, fmt.Errorf("PValue: no scores: %w", ErrInvalidInput)
	}
	last := scores[n-1]
	var ge int
	for _, s := range scores {
		if s >= last {
			ge++
		}
	}

	return float64(ge) / float64(n), nil
}

// SmoothedPValue returns the smoothed conformal p-value of the last score:
//
//	p = (a + r·b) / n
//
// where a counts scores strictly greater than the candidate's, b counts scores
// equal to it (candidate included, so b >= 1) and r is a uniform draw in [0,1].
//
// Errors: ErrInvalidInput on an empty slice or r outside [0,1].
func SmoothedPValue(scores []float64, r float64) (float64, error) {
	n := len(scores)
	if n == 0 {
		return 0, fmt.Errorf("SmoothedPValue: no scores: %w", ErrInvalidInput)
	}
	if !(r >= 0 && r <= 1) {
		return 0, fmt.Errorf("SmoothedPValue: r=%v outside [0,1]: %w", r, ErrInvalidInput)
	}
	last := scores[n-1]
	var gt, eq int
	for _, s := range scores {
		switch {
		case s > last:
			gt++
		case s == last:
			eq++
		}
	}

	return (float64(gt) + r*float64(eq)) / float64(n), nil
}

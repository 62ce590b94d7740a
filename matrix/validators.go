// SPDX-License-Identifier: MIT

// Purpose:
//   - Provide a single source of truth for common validation checks.
//   - Return sentinel errors wrapped with the validator tag so call sites can
//     still match them with errors.Is.
//
// Determinism & Performance:
//   - All checks are pure and deterministic; only the error path allocates.

package matrix

import "fmt"

// ValidateNotNil ensures the matrix reference is non-nil.
// A typed nil *Dense stored in the interface is also rejected.
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return matrixErrorf("ValidateNotNil", ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return matrixErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// Shaped is anything with a row and column count; both Dense and Bool qualify.
type Shaped interface {
	Rows() int
	Cols() int
}

// ValidateSameShape reports ErrDimensionMismatch unless a and b have equal
// dimensions. It pairs a p-value matrix with the region derived from it.
// Assumes both are non-nil.
func ValidateSameShape(a, b Shaped) error {
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return fmt.Errorf("ValidateSameShape: %dx%d vs %dx%d: %w",
			a.Rows(), a.Cols(), b.Rows(), b.Cols(), ErrDimensionMismatch)
	}

	return nil
}

// ValidateUnitInterval ensures every entry of m lies in [0,1].
// Used on p-value matrices.
//
// Complexity: O(r*c).
func ValidateUnitInterval(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	var i, j int
	var v float64
	var err error
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			if v, err = m.At(i, j); err != nil {
				return err
			}
			// NaN fails both comparisons' negation, so test explicitly.
			if !(v >= 0 && v <= 1) {
				return denseErrorf("ValidateUnitInterval", i, j, ErrOutsideUnitInterval)
			}
		}
	}

	return nil
}

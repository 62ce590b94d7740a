// SPDX-License-Identifier: MIT

// Sentinel error set.
// All constructors and accessors return these sentinels (possibly wrapped with
// call-site context via %w); tests match them with errors.Is. Nothing in this
// package panics on user-triggered conditions.

package matrix

import "errors"

// Every message is prefixed with "matrix: ..." so log lines are easy to grep.

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are negative.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be >= 0")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	// Public indexers (At/Set/Row) return this instead of panicking.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible shapes between operands.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil matrix was passed.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrOutsideUnitInterval signals an entry outside [0,1] in a matrix that
	// must hold probabilities (p-values).
	ErrOutsideUnitInterval = errors.New("matrix: value outside [0,1]")
)

// SPDX-License-Identifier: MIT

package cp

import (
	"fmt"

	"github.com/katalvlaran/conformal/matrix"
)

// Summarize reduces every row of p-values to a forced single-label prediction
// with its credibility and confidence.
//
// Errors: matrix.ErrNilMatrix for nil input; ErrInvalidInput when the matrix
// has no label columns but at least one row.
func Summarize(pvalues matrix.Matrix) ([]Forced, error) {
	if err := matrix.ValidateNotNil(pvalues); err != nil {
		return nil, fmt.Errorf("Summarize: %w", err)
	}
	rows, cols := pvalues.Rows(), pvalues.Cols()
	if rows > 0 && cols == 0 {
		return nil, fmt.Errorf("Summarize: no labels: %w", ErrInvalidInput)
	}

	out := make([]Forced, rows)
	var i, j int
	var v float64
	var err error
	for i = 0; i < rows; i++ {
		best, first, second := 0, -1.0, -1.0
		for j = 0; j < cols; j++ {
			if v, err = pvalues.At(i, j); err != nil {
				return nil, fmt.Errorf("Summarize: %w", err)
			}
			switch {
			case v > first:
				second = first
				first, best = v, j
			case v > second:
				second = v
			}
		}
		conf := 1.0
		if cols > 1 {
			conf = 1 - second
		}
		out[i] = Forced{Label: best, Credibility: first, Confidence: conf}
	}

	return out, nil
}

// Evaluate compares region predictions with the true labels.
//
// Errors: ErrInvalidInput when len(targets) != region.Rows() or a target lies
// outside [0, region.Cols()).
func Evaluate(region *matrix.Bool, targets []int) (Report, error) {
	if region == nil {
		return Report{}, fmt.Errorf("Evaluate: %w", matrix.ErrNilMatrix)
	}
	if len(targets) != region.Rows() {
		return Report{}, fmt.Errorf("Evaluate: %d rows, %d targets: %w", region.Rows(), len(targets), ErrInvalidInput)
	}

	rep := Report{Objects: len(targets)}
	var total int
	for i, y := range targets {
		if y < 0 || y >= region.Cols() {
			return Report{}, fmt.Errorf("Evaluate: target %d at index %d outside [0,%d): %w", y, i, region.Cols(), ErrInvalidInput)
		}
		in, err := region.At(i, y)
		if err != nil {
			return Report{}, fmt.Errorf("Evaluate: %w", err)
		}
		if !in {
			rep.Errors++
		}
		size, err := region.RowCount(i)
		if err != nil {
			return Report{}, fmt.Errorf("Evaluate: %w", err)
		}
		total += size
		switch size {
		case 0:
			rep.Empty++
		case 1:
			rep.Singletons++
		default:
			rep.Multiple++
		}
	}
	if rep.Objects > 0 {
		rep.ErrorRate = float64(rep.Errors) / float64(rep.Objects)
		rep.AvgSize = float64(total) / float64(rep.Objects)
	}

	return rep, nil
}

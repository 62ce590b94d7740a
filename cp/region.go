// SPDX-License-Identifier: MIT

package cp

import (
	"fmt"

	"github.com/katalvlaran/conformal/matrix"
)

// Predict returns the region prediction for inputs: entry (i, y) is true iff
// the p-value of label y for object i is strictly greater than epsilon.
//
// Errors:
//   - ErrEpsilonNotSet - neither WithEpsilon nor SetEpsilon was used.
//   - any error from PredictConfidence.
func (c *CP[T]) Predict(inputs []T) (*matrix.Bool, error) {
	if !c.opts.hasEpsilon {
		return nil, fmt.Errorf("Predict: %w", ErrEpsilonNotSet)
	}
	pvalues, err := c.PredictConfidence(inputs)
	if err != nil {
		return nil, err
	}

	return Region(pvalues, c.opts.epsilon)
}

// Region thresholds an existing p-value matrix at epsilon (strict >).
// It lets callers compute p-values once and inspect several significance levels.
func Region(pvalues matrix.Matrix, epsilon float64) (*matrix.Bool, error) {
	out, err := matrix.GreaterThan(pvalues, epsilon)
	if err != nil {
		return nil, fmt.Errorf("Region: %w", err)
	}

	return out, nil
}

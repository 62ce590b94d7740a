// SPDX-License-Identifier: MIT

package cp

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/conformal/matrix"
)

// PredictConfidence returns the p-value of every (object, label) pair.
//
// Algorithm Outline:
//  1. For each label y (outer loop) and each object x at position i (inner loop):
//  2. append x to pool y, so the pool has n_y+1 objects and x sits last;
//  3. score every position 0..n_y of the augmented pool, in order;
//  4. derive the p-value from the scores (PValue, or SmoothedPValue with a
//     fresh draw from the random source);
//  5. remove x from pool y (deferred, so it also runs on scorer failure);
//  6. store the p-value at (i, y).
//
// Scores are never reused across candidates: each candidate changes the pool.
//
// Returns a len(inputs)×NumLabels() matrix with entries in [0,1].
//
// Errors:
//   - ErrNotTrained     - Train has not succeeded yet.
//   - ErrNotImplemented - smoothing selected without a random source.
//   - ErrScoring        - the scorer failed or returned NaN/±Inf.
//
// Complexity: O(L · m · Σ scorer(n_y+1)) for L labels and m objects.
func (c *CP[T]) PredictConfidence(inputs []T) (*matrix.Dense, error) {
	if !c.trained {
		return nil, fmt.Errorf("PredictConfidence: %w", ErrNotTrained)
	}
	if c.opts.smooth && c.opts.rand == nil {
		return nil, fmt.Errorf("PredictConfidence: smoothed p-values need a random source: %w", ErrNotImplemented)
	}

	nLabels := len(c.partition)
	out, err := matrix.NewDense(len(inputs), nLabels)
	if err != nil {
		return nil, fmt.Errorf("PredictConfidence: %w", err)
	}

	var y, i int
	var p float64
	for y = 0; y < nLabels; y++ {
		for i = range inputs {
			if p, err = c.pvalue(y, inputs[i]); err != nil {
				return nil, fmt.Errorf("PredictConfidence: label %d, object %d: %w", y, i, err)
			}
			if err = out.Set(i, y, p); err != nil {
				return nil, fmt.Errorf("PredictConfidence: %w", err)
			}
		}
	}
	c.opts.logger.Debug("p-values computed",
		slog.Int("objects", len(inputs)),
		slog.Int("labels", nLabels),
		slog.Bool("smooth", c.opts.smooth))

	return out, nil
}

// pvalue computes the p-value of candidate x for label y.
func (c *CP[T]) pvalue(y int, x T) (float64, error) {
	pool, restore := c.augment(y, x)
	defer restore()

	scores := c.scores[:0]
	var j int
	var s float64
	var err error
	for j = range pool {
		if s, err = c.scorer.Score(j, pool); err != nil {
			return 0, fmt.Errorf("position %d: %w: %w", j, ErrScoring, err)
		}
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return 0, fmt.Errorf("position %d: non-finite score %v: %w", j, s, ErrScoring)
		}
		scores = append(scores, s)
	}
	c.scores = scores

	if c.opts.smooth {
		return SmoothedPValue(scores, c.opts.rand.Float64())
	}
	return PValue(scores)
}

// augment appends x to pool y and returns the augmented pool together with the
// function that restores pool y to its original length. The vacated slot is
// zeroed so the pool keeps no reference to x.
func (c *CP[T]) augment(y int, x T) ([]T, func()) {
	n := len(c.partition[y])
	c.partition[y] = append(c.partition[y], x)

	return c.partition[y], func() {
		var zero T
		c.partition[y][n] = zero
		c.partition[y] = c.partition[y][:n]
	}
}

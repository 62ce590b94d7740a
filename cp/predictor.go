// SPDX-License-Identifier: MIT

package cp

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/conformal/ncm"
)

// CP is a transductive conformal predictor over objects of type T.
//
// Training objects are stored in partition, indexed by label: partition[y]
// holds every training object with label y, in input order. The only mutation
// between Train/Update calls is the transient candidate appended to one pool
// while a single p-value is computed; it is removed on every exit path.
//
// A CP is not safe for concurrent use.
type CP[T any] struct {
	scorer ncm.Scorer[T]
	opts   options

	partition [][]T
	trained   bool

	// scores is a scratch buffer reused between p-value computations.
	scores []float64
}

var _ Predictor[[]float64] = (*CP[[]float64])(nil)

// New returns an untrained predictor scoring with scorer.
func New[T any](scorer ncm.Scorer[T], opts ...Option) *CP[T] {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return &CP[T]{scorer: scorer, opts: o}
}

// SetEpsilon stores the significance level used by Predict.
// Conventional usage restricts epsilon to (0,1); the value is not validated.
func (c *CP[T]) SetEpsilon(epsilon float64) {
	c.opts.epsilon = epsilon
	c.opts.hasEpsilon = true
}

// Epsilon returns the significance level and whether one was set.
func (c *CP[T]) Epsilon() (float64, bool) {
	return c.opts.epsilon, c.opts.hasEpsilon
}

// Smooth reports whether smoothed p-values are selected.
func (c *CP[T]) Smooth() bool { return c.opts.smooth }

// Train partitions inputs by label, replacing any previous training state.
//
// The number of labels is the count of distinct targets, and every target must
// lie in [0, nLabels): labels are dense indices. On error the previous state is
// kept untouched.
//
// Errors:
//   - ErrInvalidInput - len(inputs) != len(targets), no examples, or a target
//     outside the dense range.
//
// Complexity: O(n).
func (c *CP[T]) Train(inputs []T, targets []int) error {
	if len(inputs) != len(targets) {
		return fmt.Errorf("Train: %d inputs, %d targets: %w", len(inputs), len(targets), ErrInvalidInput)
	}
	if len(inputs) == 0 {
		return fmt.Errorf("Train: no training examples: %w", ErrInvalidInput)
	}

	seen := make(map[int]struct{}, 8)
	for _, y := range targets {
		seen[y] = struct{}{}
	}
	nLabels := len(seen)

	part := make([][]T, nLabels)
	for i, y := range targets {
		if y < 0 || y >= nLabels {
			return fmt.Errorf("Train: target %d at index %d outside [0,%d): %w", y, i, nLabels, ErrInvalidInput)
		}
		part[y] = append(part[y], inputs[i])
	}

	c.partition = part
	c.trained = true
	c.opts.logger.Debug("trained",
		slog.Int("examples", len(inputs)),
		slog.Int("labels", nLabels))

	return nil
}

// Update appends labeled examples to the existing partition without
// rebuilding it. Targets must already be known labels.
//
// Errors:
//   - ErrNotTrained   - called before Train.
//   - ErrInvalidInput - length mismatch or unknown label index.
func (c *CP[T]) Update(inputs []T, targets []int) error {
	if !c.trained {
		return fmt.Errorf("Update: %w", ErrNotTrained)
	}
	if len(inputs) != len(targets) {
		return fmt.Errorf("Update: %d inputs, %d targets: %w", len(inputs), len(targets), ErrInvalidInput)
	}
	n := len(c.partition)
	for i, y := range targets {
		if y < 0 || y >= n {
			return fmt.Errorf("Update: target %d at index %d outside [0,%d): %w", y, i, n, ErrInvalidInput)
		}
	}
	for i, y := range targets {
		c.partition[y] = append(c.partition[y], inputs[i])
	}
	c.opts.logger.Debug("updated", slog.Int("examples", len(inputs)))

	return nil
}

// NumLabels returns the number of labels seen by Train (0 before training).
func (c *CP[T]) NumLabels() int { return len(c.partition) }

// LabelCounts returns the pool size of every label.
func (c *CP[T]) LabelCounts() []int {
	out := make([]int, len(c.partition))
	for y, pool := range c.partition {
		out[y] = len(pool)
	}
	return out
}

// Partition returns a copy of the training partition. The outer and per-label
// slices are fresh; the objects themselves are shallow copies of T.
func (c *CP[T]) Partition() [][]T {
	out := make([][]T, len(c.partition))
	for y, pool := range c.partition {
		out[y] = append(make([]T, 0, len(pool)), pool...)
	}
	return out
}

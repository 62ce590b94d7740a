// SPDX-License-Identifier: MIT

package ncm

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// KNN scores a feature vector by the sum of Euclidean distances to its K
// nearest neighbours in the pool (the object itself excluded).
//
// When the pool holds fewer than K other objects, all of them are summed; a
// pool of one object scores 0.
//
// Complexity: O(n·d + n log n) per call for a pool of n d-dimensional vectors.
type KNN struct {
	K int
}

var _ Scorer[[]float64] = KNN{}

// NewKNN returns a KNN scorer or ErrBadK when k < 1.
func NewKNN(k int) (KNN, error) {
	if k < 1 {
		return KNN{}, ErrBadK
	}

	return KNN{K: k}, nil
}

// Score implements Scorer.
func (s KNN) Score(position int, pool [][]float64) (float64, error) {
	if s.K < 1 {
		return 0, ErrBadK
	}
	if position < 0 || position >= len(pool) {
		return 0, fmt.Errorf("KNN.Score(%d) over %d objects: %w", position, len(pool), ErrPosition)
	}

	x := pool[position]
	dists := make([]float64, 0, len(pool)-1)
	for j, other := range pool {
		if j == position {
			continue
		}
		if len(other) != len(x) {
			return 0, fmt.Errorf("KNN.Score: object %d has %d features, want %d: %w",
				j, len(other), len(x), ErrDimensionMismatch)
		}
		dists = append(dists, floats.Distance(x, other, 2))
	}
	sort.Float64s(dists)

	k := min(s.K, len(dists))

	return floats.Sum(dists[:k]), nil
}

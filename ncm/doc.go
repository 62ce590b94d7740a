// SPDX-License-Identifier: MIT

// Package ncm holds nonconformity measures for conformal prediction.
//
// A nonconformity measure tells how unusual one object looks next to a pool of
// other objects. The conformal predictor (package cp) depends on it only
// through Scorer:
//
//	type Scorer[T any] interface {
//	  Score(position int, pool []T) (float64, error)
//	}
//
// The package ships:
//   - ScorerFunc - adapt any function to Scorer.
//   - Constant   - a trivial scorer (every p-value becomes 1).
//   - KNN        - sum of distances to the K nearest neighbours, for []float64.
//
// Usage:
//
//	knn, err := ncm.NewKNN(1)
//	pred := cp.New[[]float64](knn, cp.WithEpsilon(0.1))
package ncm

// SPDX-License-Identifier: MIT

// Package cp implements a Transductive Conformal Predictor (TCP).
//
// 🚀 What is conformal prediction?
//
//	A conformal predictor wraps a nonconformity measure (how strange an object
//	looks next to others) and turns it into p-values with a finite-sample
//	guarantee: for a significance level ε, the true label falls outside the
//	predicted set with probability at most ε. The prediction for one object is
//	a set of labels, possibly empty, possibly several.
//
// ✨ Key features:
//   - generic over the object type T; scoring plugs in through ncm.Scorer[T]
//   - label-partitioned training pools, rebuilt on Train, extended by Update
//   - standard p-values (ties count fully) and smoothed p-values with an
//     injected random source
//   - region prediction with strict thresholding (p > ε)
//   - Summarize (forced prediction, credibility, confidence) and Evaluate
//     (error rate, region sizes)
//
// ⚙️ Usage:
//
//	knn, _ := ncm.NewKNN(1)
//	pred := cp.New[[]float64](knn, cp.WithEpsilon(0.1))
//	if err := pred.Train(X, y); err != nil { ... }
//	pvalues, err := pred.PredictConfidence(Xtest) // *matrix.Dense
//	region, err := pred.Predict(Xtest)            // *matrix.Bool
//
// Algorithm (per label y, per test object x):
//
//	pool_y ← pool_y ∪ {x}
//	α_j    ← Score(j, pool_y) for j = 0..n_y   (α_{n_y} is x's score)
//	p(x,y) ← |{j : α_j ≥ α_{n_y}}| / (n_y+1)
//	pool_y ← pool_y \ {x}
//
// Performance:
//
//   - Time:   O(L · m · cost(Score) · n) - transductive: every candidate
//     re-scores its whole augmented pool.
//   - Memory: O(n) for the partition plus O(max n_y) scratch scores.
//
// Concurrency: a CP is single-threaded; do not share one across goroutines.
//
// Limitations: smoothing without WithRand/WithSeed fails with
// ErrNotImplemented instead of producing a number.
package cp

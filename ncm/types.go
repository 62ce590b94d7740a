// SPDX-License-Identifier: MIT

// Nonconformity scorer contract.

package ncm

import "errors"

var (
	// ErrBadK is returned when a KNN scorer is configured with K < 1.
	ErrBadK = errors.New("ncm: K must be >= 1")

	// ErrPosition indicates the scored position lies outside the pool.
	ErrPosition = errors.New("ncm: position out of range")

	// ErrDimensionMismatch indicates vectors of different lengths in one pool.
	ErrDimensionMismatch = errors.New("ncm: vector dimension mismatch")
)

// Scorer assigns a nonconformity score to the object at position within pool.
//
// Contract:
//   - pool is read-only; implementations must not retain or mutate it.
//   - For a fixed pool and position the result is deterministic.
//   - Larger means "stranger": the predictor counts pool members whose score
//     is at least the candidate's. Any consistent order works as long as a
//     larger score marks a less conforming object.
type Scorer[T any] interface {
	Score(position int, pool []T) (float64, error)
}

// ScorerFunc adapts an ordinary function to the Scorer interface.
type ScorerFunc[T any] func(position int, pool []T) (float64, error)

// Score calls f(position, pool).
func (f ScorerFunc[T]) Score(position int, pool []T) (float64, error) {
	return f(position, pool)
}

// Constant returns a scorer that assigns v to every position. All scores tie,
// so every p-value computed from it is exactly 1.
func Constant[T any](v float64) Scorer[T] {
	return ScorerFunc[T](func(position int, pool []T) (float64, error) {
		if position < 0 || position >= len(pool) {
			return 0, ErrPosition
		}
		return v, nil
	})
}

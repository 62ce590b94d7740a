// SPDX-License-Identifier: MIT

package cp

import (
	"errors"

	"github.com/katalvlaran/conformal/matrix"
)

// Sentinel errors. Every call site wraps them with context via %w; callers
// match with errors.Is.
var (
	// ErrInvalidInput signals mismatched lengths, an empty training set, or a
	// label index outside the dense range [0, nLabels).
	ErrInvalidInput = errors.New("cp: invalid input")

	// ErrNotTrained is returned when prediction or update runs before Train.
	ErrNotTrained = errors.New("cp: predictor is not trained")

	// ErrEpsilonNotSet is returned by Predict when no significance level is set.
	ErrEpsilonNotSet = errors.New("cp: epsilon is not set")

	// ErrScoring wraps a scorer failure or a non-finite score.
	ErrScoring = errors.New("cp: nonconformity scoring failed")

	// ErrNotImplemented is returned when smoothed p-values are requested but
	// no random source was injected (see WithRand / WithSeed).
	ErrNotImplemented = errors.New("cp: not implemented")
)

// Predictor is the confidence-predictor surface: train on labeled objects,
// then report p-values or set-valued predictions for new objects.
//
// T is the object type (e.g. []float64 for feature vectors). Labels are dense
// zero-based indices; see package labels for arbitrary label values.
type Predictor[T any] interface {
	Train(inputs []T, targets []int) error
	Update(inputs []T, targets []int) error
	SetEpsilon(epsilon float64)
	PredictConfidence(inputs []T) (*matrix.Dense, error)
	Predict(inputs []T) (*matrix.Bool, error)
}

// RandSource yields uniform draws in [0,1). *math/rand.Rand satisfies it.
type RandSource interface {
	Float64() float64
}

// Forced is the single-label summary of one row of p-values.
//
//   - Label       - index with the largest p-value (lowest index on ties).
//   - Credibility - that largest p-value.
//   - Confidence  - 1 minus the second largest p-value (1 with a single label).
type Forced struct {
	Label       int
	Credibility float64
	Confidence  float64
}

// Report aggregates region predictions against known labels.
//
//   - Errors     - objects whose true label is missing from the region.
//   - ErrorRate  - Errors / objects; valid predictors keep it near or below epsilon.
//   - AvgSize    - mean number of labels per region.
//   - Empty, Singletons, Multiple - counts of regions of size 0, 1 and >1.
type Report struct {
	Objects    int     `json:"objects" yaml:"objects"`
	Errors     int     `json:"errors" yaml:"errors"`
	ErrorRate  float64 `json:"error_rate" yaml:"error_rate"`
	AvgSize    float64 `json:"avg_size" yaml:"avg_size"`
	Empty      int     `json:"empty" yaml:"empty"`
	Singletons int     `json:"singletons" yaml:"singletons"`
	Multiple   int     `json:"multiple" yaml:"multiple"`
}

// SPDX-License-Identifier: MIT

// Package labels maps arbitrary label values to the dense zero-based indices
// the conformal predictor works with, and back.
//
// Indices are assigned in ascending order of the label values, so the same
// set of labels always yields the same encoding regardless of input order.
//
//	enc := labels.NewEncoder[string]()
//	enc.Fit([]string{"setosa", "virginica", "setosa"})
//	idx, _ := enc.Encode([]string{"virginica"}) // [1]
//	name, _ := enc.Decode(0)                     // "setosa"
package labels

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrUnknownLabel is returned when encoding a value not seen by Fit.
	ErrUnknownLabel = errors.New("labels: unknown label")

	// ErrOutOfRange is returned when decoding an index outside [0, Len()).
	ErrOutOfRange = errors.New("labels: index out of range")
)

// Encoder is a bijection between label values and dense indices.
type Encoder[L cmp.Ordered] struct {
	classes []L
	index   map[L]int
}

// NewEncoder returns an empty encoder; call Fit before Encode/Decode.
func NewEncoder[L cmp.Ordered]() *Encoder[L] {
	return &Encoder[L]{index: map[L]int{}}
}

// Fit replaces the encoding with the distinct values of values, sorted.
func (e *Encoder[L]) Fit(values []L) {
	classes := slices.Clone(values)
	slices.Sort(classes)
	classes = slices.Compact(classes)

	e.classes = classes
	e.index = make(map[L]int, len(classes))
	for i, c := range classes {
		e.index[c] = i
	}
}

// FitEncode is Fit followed by Encode on the same values.
func (e *Encoder[L]) FitEncode(values []L) []int {
	e.Fit(values)
	out := make([]int, len(values))
	for i, v := range values {
		out[i] = e.index[v]
	}
	return out
}

// Encode maps values to their indices.
func (e *Encoder[L]) Encode(values []L) ([]int, error) {
	out := make([]int, len(values))
	for i, v := range values {
		idx, ok := e.index[v]
		if !ok {
			return nil, fmt.Errorf("Encode: value %v at %d: %w", v, i, ErrUnknownLabel)
		}
		out[i] = idx
	}
	return out, nil
}

// Decode maps an index back to its label value.
func (e *Encoder[L]) Decode(index int) (L, error) {
	if index < 0 || index >= len(e.classes) {
		var zero L
		return zero, fmt.Errorf("Decode(%d): %w", index, ErrOutOfRange)
	}
	return e.classes[index], nil
}

// Len returns the number of known labels.
func (e *Encoder[L]) Len() int { return len(e.classes) }

// Classes returns a copy of the known labels in index order.
func (e *Encoder[L]) Classes() []L { return slices.Clone(e.classes) }

// SPDX-License-Identifier: MIT
package cp_test

import (
	"testing"

	"github.com/katalvlaran/conformal/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPValue(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		want   float64
	}{
		{"candidate strangest", []float64{1, 2, 3}, 1.0 / 3},
		{"candidate most typical", []float64{3, 2, 1}, 1},
		{"ties count fully", []float64{2, 2, 1, 2}, 0.75},
		{"single score", []float64{7}, 1},
		{"negative scores", []float64{-3, -1, -2}, 2.0 / 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cp.PValue(tt.scores)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-15)
		})
	}

	_, err := cp.PValue(nil)
	assert.ErrorIs(t, err, cp.ErrInvalidInput)
}

func TestSmoothedPValue(t *testing.T) {
	scores := []float64{1, 3, 2, 2}

	// a=1 (the 3), b=2 (both 2s)
	p, err := cp.SmoothedPValue(scores, 0)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, p, 1e-15)

	p, err = cp.SmoothedPValue(scores, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, p, 1e-15)

	// r=1 recovers the non-smoothed p-value.
	p, err = cp.SmoothedPValue(scores, 1)
	require.NoError(t, err)
	ref, _ := cp.PValue(scores)
	assert.InDelta(t, ref, p, 1e-15)

	_, err = cp.SmoothedPValue(scores, 1.5)
	assert.ErrorIs(t, err, cp.ErrInvalidInput)
	_, err = cp.SmoothedPValue(nil, 0.5)
	assert.ErrorIs(t, err, cp.ErrInvalidInput)
}

// TestSmoothedPValue_NeverExceedsPValue: smoothing only shrinks tie credit.
func TestSmoothedPValue_NeverExceedsPValue(t *testing.T) {
	scores := []float64{0.4, 0.1, 0.4, 0.9, 0.4}
	ref, err := cp.PValue(scores)
	require.NoError(t, err)
	for _, r := range []float64{0, 0.1, 0.37, 0.99} {
		p, err := cp.SmoothedPValue(scores, r)
		require.NoError(t, err)
		assert.LessOrEqual(t, p, ref)
		assert.GreaterOrEqual(t, p, 0.0)
	}
}

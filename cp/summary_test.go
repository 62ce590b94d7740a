// SPDX-License-Identifier: MIT
package cp_test

import (
	"testing"

	"github.com/katalvlaran/conformal/cp"
	"github.com/katalvlaran/conformal/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	pv, err := matrix.NewDenseFrom([][]float64{
		{0.2, 0.9, 0.1},
		{0.5, 0.5, 0.0},
	})
	require.NoError(t, err)

	got, err := cp.Summarize(pv)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, 1, got[0].Label)
	assert.InDelta(t, 0.9, got[0].Credibility, 1e-15)
	assert.InDelta(t, 0.8, got[0].Confidence, 1e-15)

	// ties resolve to the lowest index; the runner-up equals the winner
	assert.Equal(t, 0, got[1].Label)
	assert.InDelta(t, 0.5, got[1].Credibility, 1e-15)
	assert.InDelta(t, 0.5, got[1].Confidence, 1e-15)
}

func TestSummarize_SingleLabel(t *testing.T) {
	pv, err := matrix.NewDenseFrom([][]float64{{0.3}})
	require.NoError(t, err)

	got, err := cp.Summarize(pv)
	require.NoError(t, err)
	assert.Equal(t, cp.Forced{Label: 0, Credibility: 0.3, Confidence: 1}, got[0])
}

func TestSummarize_Errors(t *testing.T) {
	_, err := cp.Summarize(nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)

	noLabels, _ := matrix.NewDense(2, 0)
	_, err = cp.Summarize(noLabels)
	assert.ErrorIs(t, err, cp.ErrInvalidInput)
}

func TestEvaluate(t *testing.T) {
	region, err := matrix.NewBool(3, 3)
	require.NoError(t, err)
	require.NoError(t, region.Set(0, 0, true))
	require.NoError(t, region.Set(1, 0, true))
	require.NoError(t, region.Set(1, 1, true))

	rep, err := cp.Evaluate(region, []int{0, 2, 1})
	require.NoError(t, err)

	assert.Equal(t, cp.Report{
		Objects:    3,
		Errors:     2,
		ErrorRate:  2.0 / 3,
		AvgSize:    1,
		Empty:      1,
		Singletons: 1,
		Multiple:   1,
	}, rep)
}

func TestEvaluate_Errors(t *testing.T) {
	region, _ := matrix.NewBool(1, 2)

	_, err := cp.Evaluate(region, []int{0, 1})
	assert.ErrorIs(t, err, cp.ErrInvalidInput)

	_, err = cp.Evaluate(region, []int{2})
	assert.ErrorIs(t, err, cp.ErrInvalidInput)

	_, err = cp.Evaluate(nil, nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestEvaluate_Coverage runs the full pipeline on well-separated clusters: at
// every significance level the empirical error stays small.
func TestEvaluate_Coverage(t *testing.T) {
	pred := cp.New[[]float64](newKNN(t, 1))
	var X [][]float64
	var y []int
	for i := 0; i < 10; i++ {
		X = append(X, []float64{float64(i) * 0.1, 0})
		y = append(y, 0)
		X = append(X, []float64{10 + float64(i)*0.1, 0})
		y = append(y, 1)
	}
	require.NoError(t, pred.Train(X, y))

	test := [][]float64{{0.45, 0}, {10.45, 0}}
	pv, err := pred.PredictConfidence(test)
	require.NoError(t, err)
	region, err := cp.Region(pv, 0.2)
	require.NoError(t, err)

	rep, err := cp.Evaluate(region, []int{0, 1})
	require.NoError(t, err)
	assert.Equal(t, 0, rep.Errors)
	assert.Equal(t, 2, rep.Singletons)
}

// SPDX-License-Identifier: MIT
package cp_test

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"testing"

	"github.com/katalvlaran/conformal/cp"
	"github.com/katalvlaran/conformal/matrix"
	"github.com/katalvlaran/conformal/ncm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// identity scores a scalar object by its own value.
var identity = ncm.ScorerFunc[float64](func(position int, pool []float64) (float64, error) {
	return pool[position], nil
})

// fixedRand always returns r; it stands in for a seeded source in tests.
type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

func exampleData() ([][]float64, []int) {
	inputs := [][]float64{
		{0, 0}, {1, 0},
		{0, 1}, {1, 1},
		{2, 2}, {1, 2},
	}
	targets := []int{0, 0, 1, 1, 2, 2}
	return inputs, targets
}

func newKNN(t *testing.T, k int) ncm.KNN {
	t.Helper()
	s, err := ncm.NewKNN(k)
	require.NoError(t, err)
	return s
}

// TestTrain_Partition checks the worked three-label example.
func TestTrain_Partition(t *testing.T) {
	pred := cp.New[[]float64](newKNN(t, 2), cp.WithEpsilon(0.1))
	inputs, targets := exampleData()

	require.NoError(t, pred.Train(inputs, targets))

	want := [][][]float64{
		{{0, 0}, {1, 0}},
		{{0, 1}, {1, 1}},
		{{2, 2}, {1, 2}},
	}
	assert.Equal(t, want, pred.Partition())
	assert.Equal(t, 3, pred.NumLabels())
	assert.Equal(t, []int{2, 2, 2}, pred.LabelCounts())
}

// TestTrain_PreservesOrder checks grouping with interleaved labels.
func TestTrain_PreservesOrder(t *testing.T) {
	pred := cp.New[float64](identity)
	inputs := []float64{10, 20, 11, 21, 12, 13}
	targets := []int{0, 1, 0, 1, 0, 0}

	require.NoError(t, pred.Train(inputs, targets))

	assert.Equal(t, [][]float64{{10, 11, 12, 13}, {20, 21}}, pred.Partition())
	sum := 0
	for _, n := range pred.LabelCounts() {
		sum += n
	}
	assert.Equal(t, len(inputs), sum)
}

func TestTrain_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		inputs  []float64
		targets []int
	}{
		{"length mismatch", []float64{1, 2}, []int{0}},
		{"empty", nil, nil},
		{"sparse labels", []float64{1, 2}, []int{0, 2}},
		{"negative label", []float64{1, 2}, []int{-1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred := cp.New[float64](identity)
			err := pred.Train(tt.inputs, tt.targets)
			assert.ErrorIs(t, err, cp.ErrInvalidInput)
		})
	}
}

// TestTrain_FailureKeepsState ensures a rejected Train leaves the previous partition.
func TestTrain_FailureKeepsState(t *testing.T) {
	pred := cp.New[float64](identity)
	require.NoError(t, pred.Train([]float64{1, 2}, []int{0, 1}))

	require.ErrorIs(t, pred.Train([]float64{1}, []int{3}), cp.ErrInvalidInput)
	assert.Equal(t, [][]float64{{1}, {2}}, pred.Partition())
}

// TestTrain_Replaces ensures a second Train discards the first partition.
func TestTrain_Replaces(t *testing.T) {
	pred := cp.New[float64](identity)
	require.NoError(t, pred.Train([]float64{1, 2, 3}, []int{0, 1, 2}))
	require.NoError(t, pred.Train([]float64{5}, []int{0}))
	assert.Equal(t, [][]float64{{5}}, pred.Partition())
}

func TestPredictConfidence_NotTrained(t *testing.T) {
	pred := cp.New[float64](identity)
	_, err := pred.PredictConfidence([]float64{1})
	assert.ErrorIs(t, err, cp.ErrNotTrained)
}

func TestPredict_EpsilonNotSet(t *testing.T) {
	pred := cp.New[float64](identity)
	require.NoError(t, pred.Train([]float64{1}, []int{0}))

	_, err := pred.Predict([]float64{1})
	assert.ErrorIs(t, err, cp.ErrEpsilonNotSet)

	_, ok := pred.Epsilon()
	assert.False(t, ok)
}

// TestPredictConfidence_ConstantScorer: all scores tie, so every p-value is 1.
func TestPredictConfidence_ConstantScorer(t *testing.T) {
	pred := cp.New[[]float64](ncm.Constant[[]float64](0))
	inputs, targets := exampleData()
	require.NoError(t, pred.Train(inputs, targets))

	pv, err := pred.PredictConfidence([][]float64{{0, 0}, {5, 5}, {1, 2}})
	require.NoError(t, err)
	require.Equal(t, 3, pv.Rows())
	require.Equal(t, 3, pv.Cols())

	for i := 0; i < pv.Rows(); i++ {
		for j := 0; j < pv.Cols(); j++ {
			v, err := pv.At(i, j)
			require.NoError(t, err)
			assert.Equal(t, 1.0, v)
		}
	}
}

// TestPredictConfidence_Formula checks p = |{s >= s_last}| / n on scalar scores.
func TestPredictConfidence_Formula(t *testing.T) {
	pred := cp.New[float64](identity)
	// label 0 pool: 1 2 3; label 1 pool: 10
	require.NoError(t, pred.Train([]float64{1, 10, 2, 3}, []int{0, 1, 0, 0}))

	pv, err := pred.PredictConfidence([]float64{2, 100})
	require.NoError(t, err)

	// x=2, y=0: scores 1 2 3 2 → {2,3,2} >= 2 → 3/4
	// x=2, y=1: scores 10 2 → both >= 2 → 1
	// x=100, y=0: scores 1 2 3 100 → 1/4
	// x=100, y=1: scores 10 100 → 1/2
	want := [][]float64{{0.75, 1}, {0.25, 0.5}}
	for i := range want {
		row, err := pv.Row(i)
		require.NoError(t, err)
		assert.Equal(t, want[i], row)
	}
}

// TestPredict_StrictBoundary: p == epsilon is excluded from the region.
func TestPredict_StrictBoundary(t *testing.T) {
	pred := cp.New[float64](identity, cp.WithEpsilon(0.1))
	require.NoError(t, pred.Train([]float64{0, 1, 2, 3, 4, 5, 6, 7, 8}, []int{0, 0, 0, 0, 0, 0, 0, 0, 0}))

	pv, err := pred.PredictConfidence([]float64{100})
	require.NoError(t, err)
	p, _ := pv.At(0, 0)
	require.Equal(t, 0.1, p)

	region, err := pred.Predict([]float64{100})
	require.NoError(t, err)
	in, err := region.At(0, 0)
	require.NoError(t, err)
	assert.False(t, in)

	// A larger pool value sits strictly above epsilon.
	region, err = pred.Predict([]float64{4})
	require.NoError(t, err)
	in, _ = region.At(0, 0)
	assert.True(t, in)
}

func TestRegion_StrictBoundary(t *testing.T) {
	pv, err := matrix.NewDenseFrom([][]float64{{0.1, 0.11, 0.09}})
	require.NoError(t, err)

	region, err := cp.Region(pv, 0.1)
	require.NoError(t, err)
	row, _ := region.Row(0)
	assert.Equal(t, []bool{false, true, false}, row)

	_, err = cp.Region(nil, 0.1)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestSetEpsilon(t *testing.T) {
	pred := cp.New[float64](identity)
	pred.SetEpsilon(0.05)
	eps, ok := pred.Epsilon()
	assert.True(t, ok)
	assert.Equal(t, 0.05, eps)
}

// TestPredictConfidence_NoLeak checks that pools return to their sizes and
// contents after prediction.
func TestPredictConfidence_NoLeak(t *testing.T) {
	pred := cp.New[[]float64](newKNN(t, 1))
	inputs, targets := exampleData()
	require.NoError(t, pred.Train(inputs, targets))
	before := pred.Partition()

	_, err := pred.PredictConfidence([][]float64{{9, 9}, {0, 0}, {3, 1}})
	require.NoError(t, err)

	assert.Equal(t, before, pred.Partition())
	assert.Equal(t, []int{2, 2, 2}, pred.LabelCounts())
}

// TestPredictConfidence_RestoresOnScorerFailure ensures the deferred restore
// runs on the error path too.
func TestPredictConfidence_RestoresOnScorerFailure(t *testing.T) {
	boom := errors.New("boom")
	failing := ncm.ScorerFunc[float64](func(position int, pool []float64) (float64, error) {
		if pool[position] < 0 {
			return 0, boom
		}
		return pool[position], nil
	})
	pred := cp.New[float64](failing)
	require.NoError(t, pred.Train([]float64{1, 2, 3}, []int{0, 1, 1}))

	_, err := pred.PredictConfidence([]float64{4, -1})
	require.ErrorIs(t, err, cp.ErrScoring)
	require.ErrorIs(t, err, boom)

	assert.Equal(t, [][]float64{{1}, {2, 3}}, pred.Partition())

	// The predictor still works afterwards.
	pv, err := pred.PredictConfidence([]float64{4})
	require.NoError(t, err)
	assert.Equal(t, 1, pv.Rows())
}

func TestPredictConfidence_NonFiniteScore(t *testing.T) {
	for name, bad := range map[string]float64{"nan": math.NaN(), "+inf": math.Inf(1), "-inf": math.Inf(-1)} {
		t.Run(name, func(t *testing.T) {
			s := ncm.ScorerFunc[float64](func(int, []float64) (float64, error) { return bad, nil })
			pred := cp.New[float64](s)
			require.NoError(t, pred.Train([]float64{1}, []int{0}))

			_, err := pred.PredictConfidence([]float64{2})
			assert.ErrorIs(t, err, cp.ErrScoring)
			assert.Equal(t, []int{1}, pred.LabelCounts())
		})
	}
}

// TestPredictConfidence_ScorerCalls counts Σ_y (n_y+1) calls per test object,
// and checks the candidate is always last in the pool.
func TestPredictConfidence_ScorerCalls(t *testing.T) {
	var calls int
	var test = map[float64]bool{100: true, 200: true, 300: true, 400: true}
	counting := ncm.ScorerFunc[float64](func(position int, pool []float64) (float64, error) {
		calls++
		assert.True(t, test[pool[len(pool)-1]], "candidate must sit at the last position")
		return pool[position], nil
	})
	pred := cp.New[float64](counting)
	require.NoError(t, pred.Train([]float64{1, 2, 3, 4, 5, 6}, []int{0, 0, 1, 1, 2, 2}))

	_, err := pred.PredictConfidence([]float64{100, 200, 300, 400})
	require.NoError(t, err)
	assert.Equal(t, 4*(3+3+3), calls)
}

// TestPredictConfidence_Idempotent: same state and inputs ⇒ bit-identical output.
func TestPredictConfidence_Idempotent(t *testing.T) {
	pred := cp.New[[]float64](newKNN(t, 1))
	inputs, targets := exampleData()
	require.NoError(t, pred.Train(inputs, targets))
	test := [][]float64{{0.5, 0.5}, {2, 1}, {1.5, 2.5}}

	first, err := pred.PredictConfidence(test)
	require.NoError(t, err)
	second, err := pred.PredictConfidence(test)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NoError(t, matrix.ValidateUnitInterval(first))
}

// TestPredictConfidence_OrderIndependent: each object's p-values do not depend
// on the other objects in the batch.
func TestPredictConfidence_OrderIndependent(t *testing.T) {
	pred := cp.New[[]float64](newKNN(t, 1))
	inputs, targets := exampleData()
	require.NoError(t, pred.Train(inputs, targets))

	batch, err := pred.PredictConfidence([][]float64{{0.5, 0.5}, {2, 1}})
	require.NoError(t, err)
	single, err := pred.PredictConfidence([][]float64{{2, 1}})
	require.NoError(t, err)

	r1, _ := batch.Row(1)
	r0, _ := single.Row(0)
	assert.Equal(t, r1, r0)
}

func TestPredictConfidence_EmptyBatch(t *testing.T) {
	pred := cp.New[float64](identity)
	require.NoError(t, pred.Train([]float64{1, 2}, []int{0, 1}))

	pv, err := pred.PredictConfidence(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, pv.Rows())
	assert.Equal(t, 2, pv.Cols())
}

func TestSmoothing_NeedsRandomSource(t *testing.T) {
	pred := cp.New[float64](identity, cp.WithSmoothing())
	require.NoError(t, pred.Train([]float64{1}, []int{0}))
	assert.True(t, pred.Smooth())

	_, err := pred.PredictConfidence([]float64{1})
	assert.ErrorIs(t, err, cp.ErrNotImplemented)
}

func TestSmoothing_FixedDraw(t *testing.T) {
	pred := cp.New[float64](identity, cp.WithSmoothing(), cp.WithRand(fixedRand(0.5)))
	require.NoError(t, pred.Train([]float64{1, 2, 2}, []int{0, 0, 0}))

	// scores 1 2 2 2: a=0, b=3 → (0 + 0.5·3)/4
	pv, err := pred.PredictConfidence([]float64{2})
	require.NoError(t, err)
	p, _ := pv.At(0, 0)
	assert.Equal(t, 0.375, p)
}

func TestSmoothing_SeedDeterministic(t *testing.T) {
	run := func() *matrix.Dense {
		pred := cp.New[[]float64](newKNN(t, 1), cp.WithSmoothing(), cp.WithSeed(42))
		inputs, targets := exampleData()
		require.NoError(t, pred.Train(inputs, targets))
		pv, err := pred.PredictConfidence([][]float64{{0, 0}, {1, 1}, {2, 2}})
		require.NoError(t, err)
		return pv
	}

	a, b := run(), run()
	assert.Equal(t, a, b)
	assert.NoError(t, matrix.ValidateUnitInterval(a))
}

func TestUpdate(t *testing.T) {
	pred := cp.New[float64](identity)
	require.ErrorIs(t, pred.Update([]float64{1}, []int{0}), cp.ErrNotTrained)

	require.NoError(t, pred.Train([]float64{1, 2}, []int{0, 1}))
	require.NoError(t, pred.Update([]float64{3, 4}, []int{1, 0}))
	assert.Equal(t, [][]float64{{1, 4}, {2, 3}}, pred.Partition())

	assert.ErrorIs(t, pred.Update([]float64{5}, []int{2}), cp.ErrInvalidInput)
	assert.ErrorIs(t, pred.Update([]float64{5}, nil), cp.ErrInvalidInput)
	assert.Equal(t, []int{2, 2}, pred.LabelCounts())
}

func TestPartition_IsCopy(t *testing.T) {
	pred := cp.New[float64](identity)
	require.NoError(t, pred.Train([]float64{1, 2}, []int{0, 0}))

	p := pred.Partition()
	p[0][0] = 99
	assert.Equal(t, [][]float64{{1, 2}}, pred.Partition())
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	pred := cp.New[float64](identity, cp.WithLogger(l))
	require.NoError(t, pred.Train([]float64{1, 2}, []int{0, 1}))
	_, err := pred.PredictConfidence([]float64{1})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "trained")
	assert.Contains(t, buf.String(), "labels=2")
	assert.Contains(t, buf.String(), "p-values computed")
}

func TestOptions_Panics(t *testing.T) {
	assert.Panics(t, func() { cp.WithEpsilon(math.NaN()) })
	assert.Panics(t, func() { cp.WithRand(nil) })
}

// SPDX-License-Identifier: MIT

package app

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/katalvlaran/conformal/config"
	"github.com/katalvlaran/conformal/cp"
	"github.com/katalvlaran/conformal/dataset"
	"github.com/katalvlaran/conformal/labels"
	"github.com/katalvlaran/conformal/matrix"
	"github.com/katalvlaran/conformal/ncm"
)

var (
	errNoLabels      = errors.New("training table has no label column")
	errFeatureLength = errors.New("feature count differs from training table")
)

// model is a trained predictor together with its label encoding.
type model struct {
	predictor *cp.CP[[]float64]
	encoder   *labels.Encoder[string]
	width     int
	epsilon   float64
}

// outcome is the result of running a model over one test table.
type outcome struct {
	pvalues *matrix.Dense
	region  *matrix.Bool
	forced  []cp.Forced
}

func dataOptions(cfg *config.Config, labelColumn string) dataset.Options {
	return dataset.Options{
		HasHeader:   cfg.Data.HasHeader,
		LabelColumn: labelColumn,
		Sheet:       cfg.Data.Sheet,
	}
}

// fit loads the training table and trains a KNN conformal predictor on it.
func fit(cfg *config.Config, path string, logger *slog.Logger) (*model, error) {
	tab, err := dataset.Load(path, dataOptions(cfg, cfg.Data.LabelColumn))
	if err != nil {
		return nil, fmt.Errorf("failed to load training data: %w", err)
	}
	if !tab.HasLabels() {
		return nil, fmt.Errorf("%s: %w", path, errNoLabels)
	}

	enc := labels.NewEncoder[string]()
	targets := enc.FitEncode(tab.Labels)

	scorer, err := ncm.NewKNN(cfg.Predictor.K)
	if err != nil {
		return nil, err
	}
	opts := []cp.Option{
		cp.WithEpsilon(cfg.Predictor.Epsilon),
		cp.WithLogger(logger),
	}
	if cfg.Predictor.Smooth {
		seed := runSeed(cfg.Predictor.Seed)
		logger.Info("smoothing", "seed", seed)
		opts = append(opts, cp.WithSmoothing(), cp.WithSeed(seed))
	}

	p := cp.New[[]float64](scorer, opts...)
	if err := p.Train(tab.Features, targets); err != nil {
		return nil, fmt.Errorf("failed to train: %w", err)
	}
	logger.Info("trained", "objects", tab.Len(), "labels", enc.Len(), "k", cfg.Predictor.K)

	return &model{
		predictor: p,
		encoder:   enc,
		width:     len(tab.Features[0]),
		epsilon:   cfg.Predictor.Epsilon,
	}, nil
}

// runSeed returns seed, or a fresh non-zero seed from the auto-seeded global
// source when seed is 0. fit logs the result so a run can be repeated.
func runSeed(seed int64) int64 {
	for seed == 0 {
		seed = rand.Int63()
	}
	return seed
}

// loadTest reads a test table and checks its width against the model.
func (m *model) loadTest(cfg *config.Config, path string, labeled bool) (*dataset.Table, error) {
	col := ""
	if labeled {
		col = cfg.Data.LabelColumn
	}
	tab, err := dataset.Load(path, dataOptions(cfg, col))
	if err != nil {
		return nil, fmt.Errorf("failed to load test data: %w", err)
	}
	for i, row := range tab.Features {
		if len(row) != m.width {
			return nil, fmt.Errorf("test row %d has %d features, want %d: %w", i, len(row), m.width, errFeatureLength)
		}
	}
	return tab, nil
}

// run computes p-values, regions and forced predictions for inputs.
func (m *model) run(inputs [][]float64) (*outcome, error) {
	pv, err := m.predictor.PredictConfidence(inputs)
	if err != nil {
		return nil, fmt.Errorf("failed to predict: %w", err)
	}
	region, err := cp.Region(pv, m.epsilon)
	if err != nil {
		return nil, err
	}
	// Callers index pvalues and region with the same (object, label) pairs.
	if err = matrix.ValidateSameShape(pv, region); err != nil {
		return nil, err
	}
	forced, err := cp.Summarize(pv)
	if err != nil {
		return nil, err
	}
	return &outcome{pvalues: pv, region: region, forced: forced}, nil
}

// SPDX-License-Identifier: MIT

// Package app implements the cpredict command tree.
package app

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/conformal/config"
	"github.com/katalvlaran/conformal/logging"
	"github.com/spf13/cobra"
)

// settings holds raw flag values for one command tree. Flags only override
// the loaded configuration when they were set explicitly.
type settings struct {
	configPath string
	logLevel   string

	train       string
	test        string
	epsilon     float64
	k           int
	smooth      bool
	seed        int64
	labelColumn string
	noHeader    bool
	sheet       string
	format      string
	testLabeled bool
}

// NewRootCmd builds a fresh cpredict command tree.
func NewRootCmd() *cobra.Command {
	s := &settings{}

	root := &cobra.Command{
		Use:   "cpredict",
		Short: "Set-valued predictions with guaranteed error rates",
		Long: `cpredict trains a transductive conformal predictor on a labeled table
and reports, for every new object, a p-value per label and the region of
labels whose p-value exceeds the significance level epsilon.

Under exchangeability, the region misses the true label with probability at
most epsilon. The nonconformity measure is k-nearest-neighbours distance.

Tables are CSV or XLSX files with one numeric feature per column. The label
column is selected with --label-column (a header name, or an index where -1
is the last column).

Configuration is layered: built-in defaults, then --config FILE (YAML), then
CPREDICT_* environment variables, then flags.`,
		Example: `  # Predict regions for unlabeled objects at 10% significance
  cpredict predict --train iris.csv --test new.csv --epsilon 0.1

  # Check empirical validity on a labeled hold-out set
  cpredict evaluate --train iris.csv --test holdout.csv --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&s.configPath, "config", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&s.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.SuggestionsMinimumDistance = 2

	root.AddCommand(newPredictCmd(s))
	root.AddCommand(newEvaluateCmd(s))
	root.AddCommand(newVersionCmd())

	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// addModelFlags registers the flags shared by predict and evaluate.
func addModelFlags(cmd *cobra.Command, s *settings) {
	f := cmd.Flags()
	f.StringVar(&s.train, "train", "", "labeled training table (.csv or .xlsx)")
	f.StringVar(&s.test, "test", "", "table of objects to predict (.csv or .xlsx)")
	f.Float64Var(&s.epsilon, "epsilon", 0, "significance level in (0,1)")
	f.IntVar(&s.k, "k", 0, "number of nearest neighbours in the nonconformity score")
	f.BoolVar(&s.smooth, "smooth", false, "use smoothed p-values")
	f.Int64Var(&s.seed, "seed", 0, "random seed for smoothed p-values (0 = fresh seed per run)")
	f.StringVar(&s.labelColumn, "label-column", "", "label column name or index (-1 = last)")
	f.BoolVar(&s.noHeader, "no-header", false, "tables have no header row")
	f.StringVar(&s.sheet, "sheet", "", "XLSX sheet name (default: first sheet)")
	f.StringVarP(&s.format, "format", "o", "", "output format: table, json, yaml")

	_ = cmd.MarkFlagRequired("train")
	_ = cmd.MarkFlagRequired("test")
}

// resolve loads the layered configuration, applies explicit flags and
// validates the result.
func (s *settings) resolve(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(s.configPath)
	if err != nil {
		return nil, nil, err
	}

	f := cmd.Flags()
	if f.Changed("log-level") {
		cfg.Log.Level = s.logLevel
	}
	if f.Changed("epsilon") {
		cfg.Predictor.Epsilon = s.epsilon
	}
	if f.Changed("k") {
		cfg.Predictor.K = s.k
	}
	if f.Changed("smooth") {
		cfg.Predictor.Smooth = s.smooth
	}
	if f.Changed("seed") {
		cfg.Predictor.Seed = s.seed
	}
	if f.Changed("label-column") {
		cfg.Data.LabelColumn = s.labelColumn
	}
	if f.Changed("no-header") {
		cfg.Data.HasHeader = !s.noHeader
	}
	if f.Changed("sheet") {
		cfg.Data.Sheet = s.sheet
	}
	if f.Changed("format") {
		cfg.Output.Format = s.format
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("config validation failed: %w", err)
	}

	logger := logging.NewCLILogger(cmd.ErrOrStderr(), cfg.Log.Level)
	return cfg, logger, nil
}

// SPDX-License-Identifier: MIT

package app

import (
	"fmt"

	"github.com/katalvlaran/conformal/cp"
	"github.com/spf13/cobra"
)

func newEvaluateCmd(s *settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Measure empirical error rate and region sizes on labeled data",
		Long: `Train on --train, predict regions for the labeled objects in --test and
report how often the true label falls outside its region. For a valid
predictor the error rate stays close to or below epsilon.`,
		Example: `  cpredict evaluate --train train.csv --test holdout.csv --epsilon 0.2`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEvaluate(cmd, s)
		},
	}
	addModelFlags(cmd, s)

	return cmd
}

func runEvaluate(cmd *cobra.Command, s *settings) error {
	cfg, logger, err := s.resolve(cmd)
	if err != nil {
		return err
	}
	m, err := fit(cfg, s.train, logger)
	if err != nil {
		return err
	}
	tab, err := m.loadTest(cfg, s.test, true)
	if err != nil {
		return err
	}
	if !tab.HasLabels() {
		return fmt.Errorf("%s: test table has no label column", s.test)
	}
	targets, err := m.encoder.Encode(tab.Labels)
	if err != nil {
		return fmt.Errorf("test labels: %w", err)
	}

	out, err := m.run(tab.Features)
	if err != nil {
		return err
	}
	report, err := cp.Evaluate(out.region, targets)
	if err != nil {
		return err
	}
	if report.ErrorRate > m.epsilon {
		logger.Warn("error rate above epsilon", "error_rate", report.ErrorRate, "epsilon", m.epsilon)
	}

	return render(cmd.OutOrStdout(), cfg.Output.Format, &evaluation{
		Epsilon: m.epsilon,
		K:       cfg.Predictor.K,
		Smooth:  cfg.Predictor.Smooth,
		Report:  report,
	})
}

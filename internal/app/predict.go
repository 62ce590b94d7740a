// SPDX-License-Identifier: MIT

package app

import (
	"github.com/spf13/cobra"
)

func newPredictCmd(s *settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Report p-values and prediction regions for new objects",
		Long: `Train on --train and report, for each object in --test, the p-value of
every label, the region of labels with p-value above epsilon, and the forced
single-label prediction with its credibility and confidence.

The test table carries no label column unless --test-labeled is given, in
which case the true label is shown next to each prediction.`,
		Example: `  cpredict predict --train iris.csv --test new.csv
  cpredict predict --train iris.xlsx --test new.xlsx --k 3 --epsilon 0.05 -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPredict(cmd, s)
		},
	}
	addModelFlags(cmd, s)
	cmd.Flags().BoolVar(&s.testLabeled, "test-labeled", false, "test table has a label column")

	return cmd
}

func runPredict(cmd *cobra.Command, s *settings) error {
	cfg, logger, err := s.resolve(cmd)
	if err != nil {
		return err
	}
	m, err := fit(cfg, s.train, logger)
	if err != nil {
		return err
	}
	tab, err := m.loadTest(cfg, s.test, s.testLabeled)
	if err != nil {
		return err
	}
	out, err := m.run(tab.Features)
	if err != nil {
		return err
	}

	classes := m.encoder.Classes()
	set := &predictionSet{
		Epsilon: m.epsilon,
		Labels:  classes,
		Objects: make([]objectPrediction, tab.Len()),
	}
	for i := range tab.Features {
		row, err := out.pvalues.Row(i)
		if err != nil {
			return err
		}
		idx, err := out.region.Indices(i)
		if err != nil {
			return err
		}

		o := objectPrediction{
			Index:       i,
			PValues:     make([]labelPValue, len(classes)),
			Region:      make([]string, len(idx)),
			Prediction:  classes[out.forced[i].Label],
			Credibility: out.forced[i].Credibility,
			Confidence:  out.forced[i].Confidence,
		}
		for y, p := range row {
			o.PValues[y] = labelPValue{Label: classes[y], PValue: p}
		}
		for n, y := range idx {
			o.Region[n] = classes[y]
		}
		if tab.HasLabels() {
			o.Truth = tab.Labels[i]
		}
		set.Objects[i] = o
	}
	logger.Debug("predicted", "objects", tab.Len())

	return render(cmd.OutOrStdout(), cfg.Output.Format, set)
}

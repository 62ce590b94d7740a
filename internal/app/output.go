// SPDX-License-Identifier: MIT

package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/katalvlaran/conformal/cp"
	"gopkg.in/yaml.v3"
)

// tabular values know how to print themselves as an aligned table.
type tabular interface {
	writeTable(w io.Writer) error
}

// render writes v in the configured format.
func render(w io.Writer, format string, v tabular) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "table", "":
		return v.writeTable(w)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

type labelPValue struct {
	Label  string  `json:"label" yaml:"label"`
	PValue float64 `json:"p_value" yaml:"p_value"`
}

type objectPrediction struct {
	Index       int           `json:"index" yaml:"index"`
	PValues     []labelPValue `json:"p_values" yaml:"p_values"`
	Region      []string      `json:"region" yaml:"region"`
	Prediction  string        `json:"prediction" yaml:"prediction"`
	Credibility float64       `json:"credibility" yaml:"credibility"`
	Confidence  float64       `json:"confidence" yaml:"confidence"`
	Truth       string        `json:"truth,omitempty" yaml:"truth,omitempty"`
}

type predictionSet struct {
	Epsilon float64            `json:"epsilon" yaml:"epsilon"`
	Labels  []string           `json:"labels" yaml:"labels"`
	Objects []objectPrediction `json:"objects" yaml:"objects"`
}

func (p *predictionSet) writeTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	withTruth := len(p.Objects) > 0 && p.Objects[0].Truth != ""

	head := []string{"#"}
	for _, l := range p.Labels {
		head = append(head, "p("+l+")")
	}
	head = append(head, "region", "prediction", "credibility", "confidence")
	if withTruth {
		head = append(head, "truth")
	}
	fmt.Fprintln(tw, strings.Join(head, "\t"))

	for _, o := range p.Objects {
		cells := []string{fmt.Sprint(o.Index)}
		for _, lp := range o.PValues {
			cells = append(cells, fmt.Sprintf("%.3f", lp.PValue))
		}
		cells = append(cells,
			"{"+strings.Join(o.Region, ",")+"}",
			o.Prediction,
			fmt.Sprintf("%.3f", o.Credibility),
			fmt.Sprintf("%.3f", o.Confidence),
		)
		if withTruth {
			cells = append(cells, o.Truth)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	fmt.Fprintf(tw, "\nepsilon = %g\n", p.Epsilon)

	return tw.Flush()
}

type evaluation struct {
	Epsilon float64   `json:"epsilon" yaml:"epsilon"`
	K       int       `json:"k" yaml:"k"`
	Smooth  bool      `json:"smooth" yaml:"smooth"`
	Report  cp.Report `json:"report" yaml:"report"`
}

func (e *evaluation) writeTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	r := e.Report
	rows := [][2]string{
		{"epsilon", fmt.Sprintf("%g", e.Epsilon)},
		{"k", fmt.Sprint(e.K)},
		{"smooth", fmt.Sprint(e.Smooth)},
		{"objects", fmt.Sprint(r.Objects)},
		{"errors", fmt.Sprint(r.Errors)},
		{"error rate", fmt.Sprintf("%.4f", r.ErrorRate)},
		{"avg region size", fmt.Sprintf("%.4f", r.AvgSize)},
		{"empty regions", fmt.Sprint(r.Empty)},
		{"singletons", fmt.Sprint(r.Singletons)},
		{"multiple", fmt.Sprint(r.Multiple)},
	}
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", row[0], row[1])
	}

	return tw.Flush()
}

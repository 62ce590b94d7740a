// SPDX-License-Identifier: MIT

// Package dataset loads feature tables for the conformal predictor CLI.
//
// A table is rows of numeric features with an optional label column. Labels
// stay as strings; package labels turns them into dense indices.
//
// Supported sources:
//   - CSV (ReadCSV / LoadCSV), via encoding/csv
//   - XLSX workbooks (LoadXLSX), via github.com/xuri/excelize/v2
//   - Load dispatches on the file extension (.csv, .xlsx)
package dataset

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrEmpty is returned when a source holds no data rows.
	ErrEmpty = errors.New("dataset: no data rows")

	// ErrRagged is returned when rows have different numbers of cells.
	ErrRagged = errors.New("dataset: rows have different lengths")

	// ErrParse is returned when a feature cell is not a finite number.
	ErrParse = errors.New("dataset: invalid numeric value")

	// ErrUnknownColumn is returned when the label column cannot be found.
	ErrUnknownColumn = errors.New("dataset: unknown label column")

	// ErrFormat is returned for unsupported file extensions.
	ErrFormat = errors.New("dataset: unsupported file format")
)

// Options controls how raw rows are interpreted.
//
//   - HasHeader   - first row holds column names.
//   - LabelColumn - header name of the label column; without a header, a
//     zero-based column index ("-1" selects the last column). Empty means the
//     table carries no labels (e.g. a test set).
//   - Sheet       - XLSX sheet name; empty selects the first sheet.
type Options struct {
	HasHeader   bool
	LabelColumn string
	Sheet       string
}

// Table is a parsed data set.
type Table struct {
	Header   []string    // feature column names (nil without a header)
	Features [][]float64 // one row per object
	Labels   []string    // parallel to Features; nil when no label column
}

// Len returns the number of objects.
func (t *Table) Len() int { return len(t.Features) }

// HasLabels reports whether the table carries a label column.
func (t *Table) HasLabels() bool { return t.Labels != nil }

// fromRecords turns raw string cells into a Table.
func fromRecords(records [][]string, opts Options) (*Table, error) {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		if !blank(r) {
			rows = append(rows, r)
		}
	}

	var header []string
	if opts.HasHeader && len(rows) > 0 {
		header, rows = trimAll(rows[0]), rows[1:]
	}
	if len(rows) == 0 {
		return nil, ErrEmpty
	}

	width := len(rows[0])
	if header != nil && len(header) != width {
		return nil, fmt.Errorf("header has %d columns, rows have %d: %w", len(header), width, ErrRagged)
	}
	labelCol, err := resolveLabelColumn(header, width, opts)
	if err != nil {
		return nil, err
	}

	t := &Table{Features: make([][]float64, 0, len(rows))}
	if labelCol >= 0 {
		t.Labels = make([]string, 0, len(rows))
	}
	if header != nil {
		t.Header = make([]string, 0, width)
		for j, h := range header {
			if j != labelCol {
				t.Header = append(t.Header, h)
			}
		}
	}

	for i, r := range rows {
		if len(r) != width {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", i, len(r), width, ErrRagged)
		}
		feat := make([]float64, 0, width)
		for j, cell := range r {
			cell = strings.TrimSpace(cell)
			if j == labelCol {
				t.Labels = append(t.Labels, cell)
				continue
			}
			v, perr := strconv.ParseFloat(cell, 64)
			if perr != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("row %d column %d: %q: %w", i, j, cell, ErrParse)
			}
			feat = append(feat, v)
		}
		t.Features = append(t.Features, feat)
	}

	return t, nil
}

// resolveLabelColumn returns the label column index or -1 for none.
func resolveLabelColumn(header []string, width int, opts Options) (int, error) {
	name := strings.TrimSpace(opts.LabelColumn)
	if name == "" {
		return -1, nil
	}
	for j, h := range header {
		if h == name {
			return j, nil
		}
	}
	idx, err := strconv.Atoi(name)
	if err != nil {
		return 0, fmt.Errorf("label column %q: %w", name, ErrUnknownColumn)
	}
	if idx == -1 {
		idx = width - 1
	}
	if idx < 0 || idx >= width {
		return 0, fmt.Errorf("label column %d of %d: %w", idx, width, ErrUnknownColumn)
	}
	return idx, nil
}

func blank(r []string) bool {
	for _, c := range r {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func trimAll(r []string) []string {
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = strings.TrimSpace(c)
	}
	return out
}

// SPDX-License-Identifier: MIT

package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadCSV parses comma-separated rows from r.
func ReadCSV(r io.Reader, opts Options) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are reported by fromRecords
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("ReadCSV: %w", err)
	}
	t, err := fromRecords(records, opts)
	if err != nil {
		return nil, fmt.Errorf("ReadCSV: %w", err)
	}
	return t, nil
}

// LoadCSV reads a CSV file.
func LoadCSV(path string, opts Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return ReadCSV(f, opts)
}

// LoadXLSX reads one sheet of an Excel workbook.
func LoadXLSX(path string, opts Options) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("LoadXLSX: no sheets: %w", ErrEmpty)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("LoadXLSX: sheet %q: %w", sheet, err)
	}
	t, err := fromRecords(padRows(rows), opts)
	if err != nil {
		return nil, fmt.Errorf("LoadXLSX: sheet %q: %w", sheet, err)
	}
	return t, nil
}

// padRows extends every row with empty cells to the widest row. GetRows
// omits trailing empty cells, so a missing value would otherwise look like a
// short row.
func padRows(rows [][]string) [][]string {
	width := 0
	for _, r := range rows {
		width = max(width, len(r))
	}
	for i, r := range rows {
		if len(r) < width {
			rows[i] = append(r, make([]string, width-len(r))...)
		}
	}
	return rows
}

// Load picks the reader from the file extension.
func Load(path string, opts Options) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return LoadCSV(path, opts)
	case ".xlsx", ".xlsm":
		return LoadXLSX(path, opts)
	default:
		return nil, fmt.Errorf("Load %s: %w", path, ErrFormat)
	}
}

// SPDX-License-Identifier: MIT

// Bool storage for set-valued (region) predictions.
//
// Bool mirrors Dense: row-major flat buffer, bounds-checked accessors that
// return sentinels, O(1) At/Set. Row i is one object; column j is one label;
// true means label j belongs to the predicted set of object i.

package matrix

import (
	"fmt"
	"strings"
)

// Bool is a row-major matrix of booleans.
type Bool struct {
	r, c int
	data []bool
}

var _ fmt.Stringer = (*Bool)(nil)

// NewBool creates an r×c matrix of false values. Zero-sized shapes are legal.
func NewBool(rows, cols int) (*Bool, error) {
	if rows < 0 || cols < 0 {
		return nil, ErrInvalidDimensions
	}

	return &Bool{r: rows, c: cols, data: make([]bool, rows*cols)}, nil
}

// Rows returns the row count.
func (b *Bool) Rows() int { return b.r }

// Cols returns the column count.
func (b *Bool) Cols() int { return b.c }

func (b *Bool) indexOf(row, col int) (int, error) {
	if row < 0 || row >= b.r || col < 0 || col >= b.c {
		return 0, ErrOutOfRange
	}

	return row*b.c + col, nil
}

// At returns the flag at (row, col) or ErrOutOfRange.
func (b *Bool) At(row, col int) (bool, error) {
	off, err := b.indexOf(row, col)
	if err != nil {
		return false, boolErrorf(ctxAt, row, col, err)
	}

	return b.data[off], nil
}

// Set stores v at (row, col) or returns ErrOutOfRange.
func (b *Bool) Set(row, col int, v bool) error {
	off, err := b.indexOf(row, col)
	if err != nil {
		return boolErrorf(ctxSet, row, col, err)
	}
	b.data[off] = v

	return nil
}

// Row returns a copy of row i.
func (b *Bool) Row(i int) ([]bool, error) {
	if i < 0 || i >= b.r {
		return nil, boolErrorf(ctxRow, i, 0, ErrOutOfRange)
	}
	out := make([]bool, b.c)
	copy(out, b.data[i*b.c:(i+1)*b.c])

	return out, nil
}

// RowCount returns the number of true entries in row i (the region size).
func (b *Bool) RowCount(i int) (int, error) {
	if i < 0 || i >= b.r {
		return 0, boolErrorf(ctxRow, i, 0, ErrOutOfRange)
	}
	var n, j int
	for j = 0; j < b.c; j++ {
		if b.data[i*b.c+j] {
			n++
		}
	}

	return n, nil
}

// Indices returns the column indices set to true in row i, ascending.
func (b *Bool) Indices(i int) ([]int, error) {
	if i < 0 || i >= b.r {
		return nil, boolErrorf(ctxRow, i, 0, ErrOutOfRange)
	}
	out := make([]int, 0, b.c)
	var j int
	for j = 0; j < b.c; j++ {
		if b.data[i*b.c+j] {
			out = append(out, j)
		}
	}

	return out, nil
}

// String renders rows as lines of 0/1 flags.
func (b *Bool) String() string {
	var sb strings.Builder
	var i, j int
	for i = 0; i < b.r; i++ {
		sb.WriteString(_fmtRowOpen)
		for j = 0; j < b.c; j++ {
			if j > 0 {
				sb.WriteString(_fmtSep)
			}
			if b.data[i*b.c+j] {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
		sb.WriteString(_fmtRowClose)
	}

	return sb.String()
}

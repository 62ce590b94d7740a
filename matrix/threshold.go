// SPDX-License-Identifier: MIT

package matrix

// GreaterThan returns a Bool of the same shape with out[i,j] = m[i,j] > threshold.
//
// The comparison is strict: an entry equal to threshold maps to false. A NaN
// threshold yields an all-false result.
//
// Complexity: O(r*c).
func GreaterThan(m Matrix, threshold float64) (*Bool, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf("GreaterThan", err)
	}
	out, err := NewBool(m.Rows(), m.Cols())
	if err != nil {
		return nil, matrixErrorf("GreaterThan", err)
	}

	// Fast path: read the flat buffer directly.
	if d, ok := m.(*Dense); ok {
		for k, v := range d.data {
			out.data[k] = v > threshold
		}

		return out, nil
	}

	var i, j int
	var v float64
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf("GreaterThan", err)
			}
			out.data[i*out.c+j] = v > threshold
		}
	}

	return out, nil
}

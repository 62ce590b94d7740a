// SPDX-License-Identifier: MIT

// Package matrix provides the small dense containers used to report
// conformal predictions.
//
// The matrix package provides:
//
//   - Dense: a row-major float64 matrix holding p-values, one row per test
//     object and one column per label. Set rejects NaN and ±Inf.
//   - Bool: a row-major boolean matrix holding region predictions; true at
//     (i, j) means label j is in the predicted set of object i.
//   - GreaterThan: strict thresholding of a Dense into a Bool.
//   - Validators (ValidateNotNil, ValidateSameShape, ValidateUnitInterval).
//
// Accessors never panic on bad indices; they return ErrOutOfRange wrapped
// with the method name and coordinates. Zero-sized shapes are legal.
package matrix

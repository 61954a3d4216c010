// SPDX-License-Identifier: MIT
package lmmutil

import (
	"errors"
	"fmt"
)

// Error classes. Errors returned by this package that belong to one of these
// classes wrap it, so callers can test the class with errors.Is.
var (
	// ErrValue marks invalid input values.
	ErrValue = errors.New("value error")
	// ErrNumerical marks a computation whose assumptions do not hold for the input.
	ErrNumerical = errors.New("numerical error")
)

var (
	ErrNonFiniteStatistic = fmt.Errorf("%w: there are non-finite values in `q`", ErrValue)
	ErrNonFiniteWeights   = fmt.Errorf("%w: there are non-finite values in `w`", ErrValue)
	ErrNegativeDOF        = fmt.Errorf("%w: non-negative-definite violation, fitted degrees of freedom cannot be negative", ErrNumerical)

	ErrColumnNotFound  = errors.New("column not found")
	ErrAmbiguousColumn = errors.New("cannot choose a phenotype column unambiguously")
	ErrEmptyTable      = errors.New("table has no header")
)

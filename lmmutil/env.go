// SPDX-License-Identifier: MIT
package lmmutil

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// NormEnvMatrix standardizes every column of E (samples x environments) to
// zero mean and unit population variance. A column without variance comes
// out as NaN/Inf.
func NormEnvMatrix(E mat.Matrix) *mat.Dense {
	r, c := E.Dims()
	if r == 0 || c == 0 {
		return &mat.Dense{}
	}
	out := mat.NewDense(r, c, nil)

	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, E)
		mean, std := stat.PopMeanStdDev(col, nil)
		for i, v := range col {
			col[i] = (v - mean) / std
		}
		out.SetCol(j, col)
	}
	return out
}

// ImportEnvMatrixFromCSV reads every non-index column of a table as a
// samples x environments matrix, returning the column names alongside.
func ImportEnvMatrixFromCSV(path string) (*mat.Dense, []string, error) {
	table, err := ReadTable(path)
	if err != nil {
		return nil, nil, err
	}
	E, err := table.FloatMatrix()
	if err != nil {
		return nil, nil, err
	}
	return E, table.Columns, nil
}

// FloatMatrix parses the non-index cells as a rows x columns matrix.
func (t *Table) FloatMatrix() (*mat.Dense, error) {
	rows, cols := len(t.Records), len(t.Columns)
	if rows == 0 || cols == 0 {
		return nil, fmt.Errorf("%s has no values: %w", t.Path, ErrEmptyTable)
	}
	E := mat.NewDense(rows, cols, nil)
	for j := 0; j < cols; j++ {
		values, err := t.FloatColumn(j)
		if err != nil {
			return nil, err
		}
		E.SetCol(j, values)
	}
	return E, nil
}

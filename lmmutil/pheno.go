// SPDX-License-Identifier: MIT
package lmmutil

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ImportOnePhenoFromCSV reads one phenotype from a delimited table whose
// first column is the sample index. With an empty phenoID the table must
// hold exactly one phenotype column.
func ImportOnePhenoFromCSV(path, phenoID string) ([]float64, error) {
	table, err := ReadTable(path)
	if err != nil {
		return nil, err
	}
	_, values, err := table.PhenoColumn(phenoID)
	return values, err
}

// ImportOnePhenoFromXLSX is ImportOnePhenoFromCSV for an Excel workbook. An
// empty sheet selects the first sheet of the workbook.
func ImportOnePhenoFromXLSX(path, sheet, phenoID string) ([]float64, error) {
	table, err := readXLSXTable(path, sheet)
	if err != nil {
		return nil, err
	}
	_, values, err := table.PhenoColumn(phenoID)
	return values, err
}

// ImportOnePheno picks the reader from the file extension.
func ImportOnePheno(path, phenoID string) ([]float64, error) {
	table, err := ReadPhenoTable(path)
	if err != nil {
		return nil, err
	}
	_, values, err := table.PhenoColumn(phenoID)
	return values, err
}

// ReadPhenoTable reads a phenotype table, from the first sheet for ".xlsx"
// workbooks and with ReadTable otherwise. Use it when the sample index is
// needed next to the values.
func ReadPhenoTable(path string) (*Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return readXLSXTable(path, "")
	}
	return ReadTable(path)
}

// PhenoColumn selects a phenotype by name, or the only non-index column when
// phenoID is empty, and returns its name with the values aligned to t.Index.
func (t *Table) PhenoColumn(phenoID string) (string, []float64, error) {
	ii := 0
	if phenoID != "" {
		var err error
		if ii, err = t.ColumnIndex(phenoID); err != nil {
			return "", nil, err
		}
	} else if len(t.Columns) != 1 {
		return "", nil, fmt.Errorf("%w: `%s` has %d phenotype columns, pass a phenotype id", ErrAmbiguousColumn, t.Path, len(t.Columns))
	}

	values, err := t.FloatColumn(ii)
	if err != nil {
		return "", nil, err
	}
	return t.Columns[ii], values, nil
}

func readXLSXTable(path, sheet string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening Excel file %s: %w", path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%s: %w", path, ErrEmptyTable)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s of %s: %w", sheet, path, err)
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyTable)
	}

	header := rows[0]
	table := &Table{Path: path, IndexName: header[0], Columns: header[1:]}
	for _, row := range rows[1:] {
		// Trailing empty cells are not returned by excelize.
		cells := make([]string, len(header))
		copy(cells, row)
		table.Index = append(table.Index, cells[0])
		table.Records = append(table.Records, cells[1:])
	}
	return table, nil
}

// SPDX-License-Identifier: MIT
package lmmutil

import (
	"compress/gzip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Table is a delimited text table whose first column is the row index
// (sample identifiers).
type Table struct {
	Path string
	// IndexName is the header of the index column, possibly empty.
	IndexName string
	// Columns are the header names of the non-index columns.
	Columns []string
	Index   []string
	// Records hold the non-index cells of each row, aligned with Columns.
	Records [][]string
}

// ReadTable reads a delimited table with a header row. Files ending in ".gz"
// are gunzipped. The delimiter is a tab for ".tsv" and ".txt" files and a
// comma otherwise.
func ReadTable(path string) (*Table, error) {
	fReader, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fReader.Close()

	var dataReader io.Reader = fReader
	name := path
	if strings.HasSuffix(name, ".gz") {
		gzReader, err := gzip.NewReader(fReader)
		if err != nil {
			return nil, fmt.Errorf("gunzip-ing %s: %w", path, err)
		}
		defer gzReader.Close()
		dataReader = gzReader
		name = strings.TrimSuffix(name, ".gz")
	}

	reader := csv.NewReader(dataReader)
	reader.Comma = delimiterFor(name)

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyTable)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing header of %s: %w", path, err)
	}

	table := &Table{Path: path, IndexName: header[0], Columns: header[1:]}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing row of %s: %w", path, err)
		}
		table.Index = append(table.Index, row[0])
		table.Records = append(table.Records, row[1:])
	}

	return table, nil
}

func delimiterFor(path string) rune {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv", ".txt":
		return '\t'
	default:
		return ','
	}
}

// ColumnIndex returns the position of name in t.Columns.
func (t *Table) ColumnIndex(name string) (int, error) {
	for ii, col := range t.Columns {
		if col == name {
			return ii, nil
		}
	}
	return -1, fmt.Errorf("%w: `%s` in header of `%s`", ErrColumnNotFound, name, t.Path)
}

// FloatColumn parses column ii as floats, missing markers as NaN.
func (t *Table) FloatColumn(ii int) ([]float64, error) {
	values := make([]float64, len(t.Records))
	for row, record := range t.Records {
		v, err := ParseFloatNA(record[ii])
		if err != nil {
			return nil, fmt.Errorf("parsing `%s` at row %d of `%s`: %w", t.Columns[ii], row+1, t.Path, err)
		}
		values[row] = v
	}
	return values, nil
}

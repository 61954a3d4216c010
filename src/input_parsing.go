// SPDX-License-Identifier: MIT
package main

import (
	"bufio"
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

func compressionOf(filepath string) string {
	if strings.HasSuffix(filepath, ".gz") {
		return "gzip"
	}
	return "uncompressed"
}

// streamTsv sends each data row of a TSV file over rowChannel as a map of
// header -> value, then closes the channel.
//
// Given an input file like this:
//
//	col1  col2  col3
//	  a1    a2    a3
//	  b1    b2    b3
//
// Send this data over the channel:
//
//	map[string]string{"col1": "a1", "col2": "a2", "col3": "a3"}
//	map[string]string{"col1": "b1", "col2": "b2", "col3": "b3"}
func streamTsv(filepath string, rowChannel chan<- map[string]string) error {
	defer close(rowChannel)

	fReader, err := os.Open(filepath)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer fReader.Close()

	// Uncompress the file if necessary
	var dataReader io.Reader

	switch compression := compressionOf(filepath); compression {
	case "uncompressed":
		dataReader = fReader

	case "gzip":
		gzReader, err := gzip.NewReader(fReader)
		if err != nil {
			return fmt.Errorf("gunzip-ing file %s: %w", filepath, err)
		}
		defer gzReader.Close()
		dataReader = gzReader

	default:
		return fmt.Errorf("unrecognized compression type `%s`, possible values are: uncompressed, gzip", compression)
	}

	tsvReader := csv.NewReader(dataReader)
	tsvReader.Comma = '\t'

	header, err := tsvReader.Read()
	if err != nil {
		return fmt.Errorf("parsing TSV header of %s: %w", filepath, err)
	}

	for {
		row, err := tsvReader.Read()

		// Can't read more data if end of file or parsing error
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("parsing TSV row of %s: %w", filepath, err)
		}

		rowWithHeader := make(map[string]string, len(header))
		for ii := 0; ii < len(header); ii++ {
			rowWithHeader[header[ii]] = row[ii]
		}
		rowChannel <- rowWithHeader
	}

	return nil
}

// Weights are read either from the configuration or from a file holding
// whitespace separated numbers.
func readWeights(conf LiuTestConf) ([]float64, error) {
	if conf.WeightsFilepath == "" {
		return conf.Weights, nil
	}

	f, err := os.Open(conf.WeightsFilepath)
	if err != nil {
		return nil, fmt.Errorf("opening weights file: %w", err)
	}
	defer f.Close()

	var weights []float64
	scanner := bufio.NewScanner(f)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		w, err := strconv.ParseFloat(scanner.Text(), 64)
		if err != nil {
			return nil, fmt.Errorf("parsing weight #%d of %s: %w", len(weights), conf.WeightsFilepath, err)
		}
		weights = append(weights, w)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading weights file %s: %w", conf.WeightsFilepath, err)
	}
	if len(weights) == 0 {
		return nil, fmt.Errorf("no weights in %s", conf.WeightsFilepath)
	}
	return weights, nil
}

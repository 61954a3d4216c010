// SPDX-License-Identifier: MIT
package main

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/FINNGEN/structlmm/lmmutil"
	"gonum.org/v1/gonum/mat"
)

func liuOutputPath(outputDir, tag string) string {
	return filepath.Join(outputDir, fmt.Sprintf("%s.liu.tsv", tag))
}

func phenoOutputPath(outputDir, tag string) string {
	return filepath.Join(outputDir, fmt.Sprintf("%s.pheno.tsv", tag))
}

func envOutputPath(outputDir, tag string) string {
	return filepath.Join(outputDir, fmt.Sprintf("%s.env_norm.tsv", tag))
}

func writeLiuOutput(path string, out LiuTestOutput) error {
	var headerFields []string
	if out.HasQ {
		headerFields = []string{"id", "q", "pval", "mean", "sd", "dof", "fdr_bh"}
	} else {
		headerFields = []string{"id", "pval", "fdr_bh"}
	}

	outRecords := [][]string{headerFields}
	for _, row := range out.Rows {
		var record []string
		if out.HasQ {
			// Rows without a statistic were never fitted.
			if math.IsNaN(row.PVal) {
				record = []string{row.ID, lmmutil.FormatFloat(row.Q), "NA", "NA", "NA", "NA", "NA"}
			} else {
				record = []string{
					row.ID,
					lmmutil.FormatFloat(row.Q),
					lmmutil.FormatFloat(row.PVal),
					lmmutil.FormatFloat(row.Fit.Mean),
					lmmutil.FormatFloat(row.Fit.StdDev),
					lmmutil.FormatFloat(row.Fit.DOF),
					lmmutil.FormatFloat(row.Fdr),
				}
			}
		} else {
			record = []string{row.ID, lmmutil.FormatFloat(row.PVal), lmmutil.FormatFloat(row.Fdr)}
		}
		outRecords = append(outRecords, record)
	}

	return writeTsv(path, outRecords)
}

// The sample index comes first so the outputs can be joined back to samples.
func writePhenoOutput(path, indexName string, index []string, name string, values []float64) error {
	outRecords := [][]string{{indexName, name}}
	for i, v := range values {
		outRecords = append(outRecords, []string{index[i], lmmutil.FormatFloat(v)})
	}
	return writeTsv(path, outRecords)
}

func writeEnvOutput(path, indexName string, index, columns []string, E mat.Matrix) error {
	r, c := E.Dims()
	outRecords := [][]string{append([]string{indexName}, columns...)}
	for i := 0; i < r; i++ {
		record := make([]string, c+1)
		record[0] = index[i]
		for j := 0; j < c; j++ {
			record[j+1] = lmmutil.FormatFloat(E.At(i, j))
		}
		outRecords = append(outRecords, record)
	}
	return writeTsv(path, outRecords)
}

func writeTsv(path string, outRecords [][]string) error {
	outFile, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer outFile.Close()

	tsvWriter := csv.NewWriter(outFile)
	tsvWriter.Comma = '\t'
	tsvWriter.WriteAll(outRecords)
	if err := tsvWriter.Error(); err != nil {
		return fmt.Errorf("writing TSV output %s: %w", path, err)
	}
	return outFile.Close()
}

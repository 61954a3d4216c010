package main

import (
	"fmt"
	"math"

	"github.com/FINNGEN/structlmm/lmmutil"
	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"
)

type LiuTestRow struct {
	ID   string
	Q    float64
	Fit  lmmutil.LiuResult
	PVal float64
	Fdr  float64
}

type LiuTestOutput struct {
	Tag            string
	HasQ           bool
	Rows           []LiuTestRow
	NumMissing     int
	NumSignificant int
	Lambda         float64
}

func runLiuTests(conf Conf) error {
	var g errgroup.Group
	g.SetLimit(max(conf.NumThreads, 1))

	for _, testConf := range conf.LiuTests {
		g.Go(func() error {
			fmt.Printf("- processing %s\n", testConf.Tag)

			out, err := runLiuTest(testConf)
			if err != nil {
				return fmt.Errorf("liu test %s: %w", testConf.Tag, err)
			}
			if err := writeLiuOutput(liuOutputPath(conf.OutputDir, testConf.Tag), out); err != nil {
				return fmt.Errorf("liu test %s: %w", testConf.Tag, err)
			}

			fmt.Printf("* done %s: %d variants, %d missing, %d with FDR < %g, lambda GC %.4f\n",
				out.Tag, len(out.Rows), out.NumMissing, out.NumSignificant, testConf.FdrThreshold, out.Lambda)
			return nil
		})
	}

	return g.Wait()
}

func runLiuTest(testConf LiuTestConf) (LiuTestOutput, error) {
	out := LiuTestOutput{Tag: testConf.Tag, HasQ: testConf.ColQ != ""}

	var weights []float64
	if out.HasQ {
		var err error
		weights, err = readWeights(testConf)
		if err != nil {
			return out, err
		}
	}

	var g errgroup.Group
	rowChannel := make(chan map[string]string)
	g.Go(func() error {
		return streamTsv(testConf.Filepath, rowChannel)
	})

	// Keep draining the channel after an error so the reader can finish.
	var parseErr error
	for row := range rowChannel {
		if parseErr != nil {
			continue
		}
		parsed, err := parseLiuTestRow(testConf, row)
		if err != nil {
			parseErr = err
			continue
		}
		out.Rows = append(out.Rows, parsed)
	}
	if err := g.Wait(); err != nil {
		return out, err
	}
	if parseErr != nil {
		return out, parseErr
	}

	if out.HasQ {
		if err := fitLiuRows(out.Rows, weights); err != nil {
			return out, err
		}
	}

	pvals := make([]float64, len(out.Rows))
	for i, row := range out.Rows {
		pvals[i] = row.PVal
	}
	fdr := fdrFinite(pvals)

	for i := range out.Rows {
		out.Rows[i].Fdr = fdr[i]
		if math.IsNaN(pvals[i]) {
			out.NumMissing++
		}
		if fdr[i] < testConf.FdrThreshold {
			out.NumSignificant++
		}
	}

	lambda, err := lmmutil.GenomicInflation(pvals)
	if err != nil {
		lambda = math.NaN()
	}
	out.Lambda = lambda

	return out, nil
}

func parseLiuTestRow(testConf LiuTestConf, row map[string]string) (LiuTestRow, error) {
	parsed := LiuTestRow{Q: math.NaN(), PVal: math.NaN(), Fdr: math.NaN()}

	id, found := row[testConf.ColID]
	if !found {
		return parsed, fmt.Errorf("could not find column `%s` in header of input file `%s`", testConf.ColID, testConf.Filepath)
	}
	parsed.ID = id

	col := testConf.ColPVal
	if testConf.ColQ != "" {
		col = testConf.ColQ
	}
	value, found := row[col]
	if !found {
		return parsed, fmt.Errorf("could not find column `%s` in header of input file `%s`", col, testConf.Filepath)
	}
	parsedValue, err := lmmutil.ParseFloatNA(value)
	if err != nil {
		return parsed, fmt.Errorf("parsing `%s` of variant %s as float: %w", col, id, err)
	}

	if testConf.ColQ != "" {
		parsed.Q = parsedValue
	} else {
		parsed.PVal = parsedValue
	}
	return parsed, nil
}

// fitLiuRows fills the Liu fit and p-value of every row with a finite
// statistic. Rows without one keep NA.
func fitLiuRows(rows []LiuTestRow, weights []float64) error {
	var finite []int
	var qs []float64
	for i, row := range rows {
		if math.IsNaN(row.Q) || math.IsInf(row.Q, 0) {
			continue
		}
		finite = append(finite, i)
		qs = append(qs, row.Q)
	}

	results, err := lmmutil.ModLiuCorrectedVec(qs, weights)
	if err != nil {
		return err
	}
	for j, i := range finite {
		rows[i].Fit = results[j]
		rows[i].PVal = results[j].PValue
	}
	return nil
}

// fdrFinite adjusts the non-missing p-values only, the others stay NaN.
func fdrFinite(pvals []float64) []float64 {
	var finite []int
	var present []float64
	for i, p := range pvals {
		if !math.IsNaN(p) {
			finite = append(finite, i)
			present = append(present, p)
		}
	}

	adjusted := lmmutil.FdrBH(present)
	fdr := make([]float64, len(pvals))
	for i := range fdr {
		fdr[i] = math.NaN()
	}
	for j, i := range finite {
		fdr[i] = adjusted[j]
	}
	return fdr
}

type PhenoSummary struct {
	N       int
	Missing int
	Mean    float64
	StdDev  float64
}

func summarizePheno(values []float64) PhenoSummary {
	summary := PhenoSummary{N: len(values), Mean: math.NaN(), StdDev: math.NaN()}

	var present stats.Float64Data
	for _, v := range values {
		if math.IsNaN(v) {
			summary.Missing++
			continue
		}
		present = append(present, v)
	}

	if mean, err := stats.Mean(present); err == nil {
		summary.Mean = mean
	}
	if sd, err := stats.StandardDeviationPopulation(present); err == nil {
		summary.StdDev = sd
	}
	return summary
}

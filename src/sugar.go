// SPDX-License-Identifier: MIT
package main

import (
	"fmt"

	"github.com/FINNGEN/structlmm/lmmutil"
)

func runPhenotypes(conf Conf) error {
	for _, phenoConf := range conf.Phenotypes {
		fmt.Printf("- processing %s\n", phenoConf.Tag)

		table, err := lmmutil.ReadPhenoTable(phenoConf.Filepath)
		if err != nil {
			return fmt.Errorf("phenotype %s: %w", phenoConf.Tag, err)
		}
		name, values, err := table.PhenoColumn(phenoConf.PhenoID)
		if err != nil {
			return fmt.Errorf("phenotype %s: %w", phenoConf.Tag, err)
		}

		outPath := phenoOutputPath(conf.OutputDir, phenoConf.Tag)
		if err := writePhenoOutput(outPath, table.IndexName, table.Index, name, values); err != nil {
			return fmt.Errorf("phenotype %s: %w", phenoConf.Tag, err)
		}

		summary := summarizePheno(values)
		fmt.Printf("* done %s: %d samples, %d missing, mean %.4g, sd %.4g\n",
			phenoConf.Tag, summary.N, summary.Missing, summary.Mean, summary.StdDev)
	}
	return nil
}

func runEnvironments(conf Conf) error {
	for _, envConf := range conf.Environments {
		fmt.Printf("- processing %s\n", envConf.Tag)

		table, err := lmmutil.ReadTable(envConf.Filepath)
		if err != nil {
			return fmt.Errorf("environment %s: %w", envConf.Tag, err)
		}
		E, err := table.FloatMatrix()
		if err != nil {
			return fmt.Errorf("environment %s: %w", envConf.Tag, err)
		}

		normalized := lmmutil.NormEnvMatrix(E)
		outPath := envOutputPath(conf.OutputDir, envConf.Tag)
		if err := writeEnvOutput(outPath, table.IndexName, table.Index, table.Columns, normalized); err != nil {
			return fmt.Errorf("environment %s: %w", envConf.Tag, err)
		}

		r, c := normalized.Dims()
		fmt.Printf("* done %s: %d samples x %d environments\n", envConf.Tag, r, c)
	}
	return nil
}

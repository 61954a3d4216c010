// SPDX-License-Identifier: MIT
package main

import (
	"fmt"

	"github.com/FINNGEN/structlmm/lmmutil"
)

func main() {
	parseFlags()

	conf, err := readConf(configPath)
	logCheck("reading configuration", err)

	fmt.Printf("[1/4] Creating output directory %s ...\n", conf.OutputDir)
	logCheck("creating output directory", lmmutil.MakeOutDir(conf.OutputDir))

	fmt.Println("[2/4] Computing Liu p-values and FDR...")
	logCheck("running Liu tests", runLiuTests(conf))

	fmt.Println("[3/4] Extracting phenotypes...")
	logCheck("extracting phenotypes", runPhenotypes(conf))

	fmt.Println("[4/4] Normalizing environment matrices...")
	logCheck("normalizing environments", runEnvironments(conf))
}

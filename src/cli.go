// SPDX-License-Identifier: MIT
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var configPath string
var showVersion bool

// Get the program version from git.
// This should be passed as a build time variable, for example:
// go build -ldflags "-X main.StructLMMVersion=$(git describe --tags)"
var StructLMMVersion string

const defaultFdrThreshold = 0.05

type LiuTestConf struct {
	Tag             string    `json:"tag" toml:"tag" yaml:"tag"`
	Filepath        string    `json:"filepath" toml:"filepath" yaml:"filepath"`
	ColID           string    `json:"col_id" toml:"col_id" yaml:"col_id"`
	ColQ            string    `json:"col_q" toml:"col_q" yaml:"col_q"`
	ColPVal         string    `json:"col_pval" toml:"col_pval" yaml:"col_pval"`
	Weights         []float64 `json:"weights" toml:"weights" yaml:"weights"`
	WeightsFilepath string    `json:"weights_filepath" toml:"weights_filepath" yaml:"weights_filepath"`
	FdrThreshold    float64   `json:"fdr_threshold" toml:"fdr_threshold" yaml:"fdr_threshold"`
}

type PhenoConf struct {
	Tag      string `json:"tag" toml:"tag" yaml:"tag"`
	Filepath string `json:"filepath" toml:"filepath" yaml:"filepath"`
	PhenoID  string `json:"pheno_id" toml:"pheno_id" yaml:"pheno_id"`
}

type EnvConf struct {
	Tag      string `json:"tag" toml:"tag" yaml:"tag"`
	Filepath string `json:"filepath" toml:"filepath" yaml:"filepath"`
}

type Conf struct {
	OutputDir    string        `json:"output_dir" toml:"output_dir" yaml:"output_dir"`
	NumThreads   int           `json:"num_threads" toml:"num_threads" yaml:"num_threads"`
	LiuTests     []LiuTestConf `json:"liu_tests" toml:"liu_tests" yaml:"liu_tests"`
	Phenotypes   []PhenoConf   `json:"phenotypes" toml:"phenotypes" yaml:"phenotypes"`
	Environments []EnvConf     `json:"environments" toml:"environments" yaml:"environments"`
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s (%s):\n", os.Args[0], StructLMMVersion)
		flag.PrintDefaults()
	}
	flag.StringVar(&configPath, "config", "config.json", "Specify the configuration path (JSON, TOML or YAML), defaults to $STRUCTLMM_CONFIG when set")
	flag.BoolVar(&showVersion, "version", false, "Show structlmm version")
}

// parseFlags is kept out of init so the package can be tested.
func parseFlags() {
	// A missing .env is fine, the environment is used as is.
	_ = godotenv.Load()
	if envConfig := os.Getenv("STRUCTLMM_CONFIG"); envConfig != "" {
		configPath = envConfig
	}

	flag.Parse()

	if showVersion {
		fmt.Fprintf(flag.CommandLine.Output(), "%s\n", StructLMMVersion)
		os.Exit(0)
	}
}

func readConf(filePath string) (Conf, error) {
	var conf Conf

	data, err := os.ReadFile(filePath)
	if err != nil {
		return conf, fmt.Errorf("reading configuration file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".toml":
		err = toml.Unmarshal(data, &conf)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &conf)
	default:
		err = json.Unmarshal(data, &conf)
	}
	if err != nil {
		return conf, fmt.Errorf("parsing configuration file %s: %w", filePath, err)
	}

	if conf.NumThreads < 1 {
		conf.NumThreads = 1
	}
	for ii := range conf.LiuTests {
		if conf.LiuTests[ii].FdrThreshold == 0 {
			conf.LiuTests[ii].FdrThreshold = defaultFdrThreshold
		}
	}

	return conf, validateConf(conf)
}

// Decoders fill missing fields with their zero value, so required fields are
// checked by hand.
func validateConf(conf Conf) error {
	if conf.OutputDir == "" {
		return errors.New("missing `output_dir` field in the configuration file")
	}
	if len(conf.LiuTests)+len(conf.Phenotypes)+len(conf.Environments) == 0 {
		return errors.New("nothing to do: `liu_tests`, `phenotypes` and `environments` are all empty")
	}

	tags := make(map[string]bool)
	checkTag := func(tag string, ii int, section string) error {
		if tag == "" {
			return missingKeyError("tag", ii, section)
		}
		if tags[tag] {
			return fmt.Errorf("duplicate tag `%s` in the `%s` section, tags name the output files", tag, section)
		}
		tags[tag] = true
		return nil
	}

	for ii, test := range conf.LiuTests {
		if err := checkTag(test.Tag, ii, "liu_tests"); err != nil {
			return err
		}
		if test.Filepath == "" {
			return missingKeyError("filepath", ii, "liu_tests")
		}
		if test.ColID == "" {
			return missingKeyError("col_id", ii, "liu_tests")
		}
		if (test.ColQ == "") == (test.ColPVal == "") {
			return fmt.Errorf("element #%d of `liu_tests` needs exactly one of `col_q` or `col_pval`", ii)
		}
		hasWeights := len(test.Weights) > 0 || test.WeightsFilepath != ""
		if test.ColQ != "" && !hasWeights {
			return missingKeyError("weights", ii, "liu_tests")
		}
		if len(test.Weights) > 0 && test.WeightsFilepath != "" {
			return fmt.Errorf("element #%d of `liu_tests` has both `weights` and `weights_filepath`", ii)
		}
		if test.FdrThreshold < 0 || test.FdrThreshold > 1 {
			return fmt.Errorf("element #%d of `liu_tests` has `fdr_threshold` outside [0, 1]: %g", ii, test.FdrThreshold)
		}
	}

	for ii, pheno := range conf.Phenotypes {
		if err := checkTag(pheno.Tag, ii, "phenotypes"); err != nil {
			return err
		}
		if pheno.Filepath == "" {
			return missingKeyError("filepath", ii, "phenotypes")
		}
		// We don't check for `pheno_id` as it is optional.
	}

	for ii, env := range conf.Environments {
		if err := checkTag(env.Tag, ii, "environments"); err != nil {
			return err
		}
		if env.Filepath == "" {
			return missingKeyError("filepath", ii, "environments")
		}
	}

	return nil
}

func missingKeyError(colName string, elementIndex int, section string) error {
	return fmt.Errorf("missing `%s` key of element #%d in the `%s` section of the configuration file, check config.json.sample for reference", colName, elementIndex, section)
}

// SPDX-License-Identifier: MIT
package lmmutil

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// GenomicInflation returns the genomic control factor lambda of a scan: the
// median 1-df chi-squared statistic implied by the p-values over its
// expectation under the null. NaN p-values are skipped.
func GenomicInflation(pvals []float64) (float64, error) {
	chi2 := distuv.ChiSquared{K: 1}

	statistics := make([]float64, 0, len(pvals))
	for _, p := range pvals {
		if math.IsNaN(p) {
			continue
		}
		statistics = append(statistics, chi2.Quantile(1-clip01(p)))
	}

	observed, err := stats.Median(statistics)
	if err != nil {
		return math.NaN(), fmt.Errorf("%w: no p-values to compute lambda from", ErrValue)
	}
	return observed / chi2.Quantile(0.5), nil
}

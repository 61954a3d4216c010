// SPDX-License-Identifier: MIT
package lmmutil

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Relative size of the neglected Poisson tail at which the mixture stops.
const ncx2Tolerance = 1e-15

// NoncentralChiSquaredSurvival returns P(X > x) for X following a noncentral
// chi-squared distribution with df degrees of freedom and noncentrality nc.
//
// The survival function is the Poisson(nc/2) mixture
//
//	S(x; df, nc) = sum_j Pois(j; nc/2) * S_central(x; df+2j)
//
// Parameters that do not define a distribution (NaN, df < 0, nc < 0) give NaN.
func NoncentralChiSquaredSurvival(x, df, nc float64) float64 {
	if math.IsNaN(x) || math.IsNaN(df) || math.IsNaN(nc) || df < 0 || nc < 0 {
		return math.NaN()
	}
	if x <= 0 {
		return 1
	}
	if math.IsInf(x, 1) {
		return 0
	}
	if nc == 0 {
		return centralChiSquaredSurvival(x, df)
	}

	lambda := nc / 2
	poisson := distuv.Poisson{Lambda: lambda}
	maxTerms := int(lambda+50*math.Sqrt(lambda)) + 1000

	sum := 0.0
	for j := 0; j < maxTerms; j++ {
		weight := math.Exp(poisson.LogProb(float64(j)))
		sum += weight * centralChiSquaredSurvival(x, df+2*float64(j))

		// Past the mode the Poisson weights shrink at least geometrically with
		// ratio r, so the remaining mass is below weight*r/(1-r).
		if float64(j+1) > lambda {
			r := lambda / float64(j+1)
			if weight*r/(1-r) <= ncx2Tolerance*sum {
				break
			}
		}
	}
	return sum
}

func centralChiSquaredSurvival(x, df float64) float64 {
	if df == 0 {
		// Point mass at zero.
		return 0
	}
	return distuv.ChiSquared{K: df}.Survival(x)
}

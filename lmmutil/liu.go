// SPDX-License-Identifier: MIT
package lmmutil

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// LiuResult is the outcome of the moment-matching fit of ModLiuCorrected.
type LiuResult struct {
	// PValue approximates P(Q > q).
	PValue float64
	// Mean and StdDev are the mean and standard deviation of Q on the scale of
	// the original weights.
	Mean   float64
	StdDev float64
	// DOF is the degrees of freedom of the fitted noncentral chi-squared.
	DOF float64
}

// ModLiuCorrected approximates the significance of a statistic q distributed
// as sum_i w[i]*chi2_1, matching the skewness with a noncentral chi-squared
// distribution (Liu, Tang & Zhang 2009, modified version).
//
// Liu, Huan, Yongqiang Tang, and Hao Helen Zhang. "A new chi-square
// approximation to the distribution of non-negative definite quadratic forms
// in non-central normal variables." Computational Statistics & Data Analysis
// 53.4 (2009): 853-856.
//
// w is not modified. A zero weight sum, or weights without any spread in
// their third moment, are not rejected: the NaN/Inf they produce reach the
// result.
func ModLiuCorrected(q float64, w []float64) (LiuResult, error) {
	if !allFinite([]float64{q}) {
		return LiuResult{}, ErrNonFiniteStatistic
	}
	fit, err := fitLiu(w)
	if err != nil {
		return LiuResult{}, err
	}
	return fit.result(q), nil
}

// ModLiuCorrectedVec is ModLiuCorrected for several statistics sharing the
// same weights. Any non-finite statistic fails the whole call.
func ModLiuCorrectedVec(q []float64, w []float64) ([]LiuResult, error) {
	if !allFinite(q) {
		return nil, ErrNonFiniteStatistic
	}
	fit, err := fitLiu(w)
	if err != nil {
		return nil, err
	}
	results := make([]LiuResult, len(q))
	for i := range q {
		results[i] = fit.result(q[i])
	}
	return results, nil
}

// liuFit holds the q-independent part of the approximation.
type liuFit struct {
	d      float64
	muQ    float64
	sigmaQ float64
	l      float64
	delta  float64
}

func fitLiu(w []float64) (liuFit, error) {
	if !allFinite(w) {
		return liuFit{}, ErrNonFiniteWeights
	}

	d := floats.Sum(w)
	normalized := make([]float64, len(w))
	for i := range w {
		normalized[i] = w[i] / d
	}

	c1 := floats.Sum(normalized)
	c2 := floats.Dot(normalized, normalized)
	var c3, c4 float64
	for _, v := range normalized {
		v2 := v * v
		c3 += v2 * v
		c4 += v2 * v2
	}

	s1 := c3 / (c2 * math.Sqrt(c2))
	s2 := c4 / (c2 * c2)

	muQ := c1
	sigmaQ := math.Sqrt(2 * c2)

	l, delta, err := liuParams(s1, s2)
	if err != nil {
		return liuFit{}, err
	}

	return liuFit{d: d, muQ: muQ, sigmaQ: sigmaQ, l: l, delta: delta}, nil
}

func (f liuFit) result(q float64) LiuResult {
	qNorm := (q/f.d-f.muQ)/f.sigmaQ*math.Sqrt(2*f.l+4*f.delta) + (f.l + f.delta)

	return LiuResult{
		PValue: NoncentralChiSquaredSurvival(qNorm, f.l, f.delta),
		Mean:   f.muQ * f.d,
		StdDev: f.sigmaQ * f.d,
		DOF:    f.l,
	}
}

// liuParams fits the degrees of freedom l and noncentrality delta from the
// skewness ratios s1 = c3/c2^1.5 and s2 = c4/c2^2.
func liuParams(s1, s2 float64) (l, delta float64, err error) {
	if s1*s1 > s2 {
		a := 1 / (s1 - math.Sqrt(s1*s1-s2))
		delta = s1*a*a*a - a*a
		l = a*a - 2*delta
		if l < 0 {
			return 0, 0, fmt.Errorf("%w (l=%g)", ErrNegativeDOF, l)
		}
		return l, delta, nil
	}
	return 1 / (s1 * s1), 0, nil
}

// SPDX-License-Identifier: MIT

// Package lmmutil holds the statistical helpers shared by structured linear
// mixed model association scans: multiple-testing correction, Liu's
// approximation for quadratic forms in normal variables, and the phenotype and
// environment plumbing around them.
package lmmutil

import (
	"math"
	"sort"
)

// FdrBH returns the Benjamini-Hochberg adjusted p-values of pvals, in the
// order of the input. The input is left untouched.
//
// NaN p-values sort last and propagate through the step-up minimum.
func FdrBH(pvals []float64) []float64 {
	n := len(pvals)
	adjusted := make([]float64, n)
	if n == 0 {
		return adjusted
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		pa, pb := pvals[order[a]], pvals[order[b]]
		return pa < pb || (!math.IsNaN(pa) && math.IsNaN(pb))
	})

	// Step-up: running minimum from the largest rank down.
	running := math.Inf(1)
	for rank := n; rank >= 1; rank-- {
		idx := order[rank-1]
		q := pvals[idx] * float64(n) / float64(rank)
		running = math.Min(running, q)
		adjusted[idx] = clip01(running)
	}

	return adjusted
}

func clip01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

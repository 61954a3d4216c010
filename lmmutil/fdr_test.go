// SPDX-License-Identifier: MIT
package lmmutil

import (
	"math"
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFdrBHEmpty(t *testing.T) {
	got := FdrBH([]float64{})
	require.NotNil(t, got)
	assert.Empty(t, got)

	assert.Empty(t, FdrBH(nil))
}

func TestFdrBHSorted(t *testing.T) {
	got := FdrBH([]float64{0.01, 0.02, 0.03, 0.5})
	assert.InDeltaSlice(t, []float64{0.04, 0.04, 0.04, 0.5}, got, 1e-12)
}

func TestFdrBHKeepsInputOrder(t *testing.T) {
	pvals := []float64{0.5, 0.01, 0.04, 0.03}
	got := FdrBH(pvals)

	assert.InDeltaSlice(t, []float64{0.5, 0.04, 0.04 * 4 / 3, 0.04 * 4 / 3}, got, 1e-12)
	assert.Equal(t, []float64{0.5, 0.01, 0.04, 0.03}, pvals, "input must not be modified")
}

func TestFdrBHTies(t *testing.T) {
	got := FdrBH([]float64{0.02, 0.02, 0.02})
	assert.InDeltaSlice(t, []float64{0.02, 0.02, 0.02}, got, 1e-12)
}

func TestFdrBHClips(t *testing.T) {
	got := FdrBH([]float64{1.5, -0.1})
	assert.Equal(t, []float64{1, 0}, got)
}

func TestFdrBHNaNDoesNotPanic(t *testing.T) {
	var got []float64
	require.NotPanics(t, func() {
		got = FdrBH([]float64{0.01, math.NaN(), 0.2})
	})
	require.Len(t, got, 3)
	assert.True(t, math.IsNaN(got[1]))
}

func TestFdrBHProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for trial := 0; trial < 50; trial++ {
		n := 1 + rng.IntN(200)
		pvals := make([]float64, n)
		for i := range pvals {
			pvals[i] = rng.Float64()
		}

		got := FdrBH(pvals)
		require.Len(t, got, n)

		order := make([]int, n)
		for i := range order {
			order[i] = i
		}
		sort.Slice(order, func(a, b int) bool { return pvals[order[a]] < pvals[order[b]] })

		for rank, idx := range order {
			assert.GreaterOrEqual(t, got[idx], 0.0)
			assert.LessOrEqual(t, got[idx], 1.0)
			assert.GreaterOrEqual(t, got[idx], pvals[idx])
			if rank > 0 {
				assert.GreaterOrEqual(t, got[idx], got[order[rank-1]])
			}
		}
	}
}

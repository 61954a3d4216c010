// SPDX-License-Identifier: MIT
package lmmutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/stat/distuv"
)

// Reference values are 1 - scipy.stats.ncx2.cdf(x, df, nc).
func TestNoncentralChiSquaredSurvivalReference(t *testing.T) {
	cases := []struct {
		x, df, nc float64
		want      float64
	}{
		{x: 5.0, df: 2.0, nc: 3.0, want: 0.4059391969218036},
		{x: 10.0, df: 5.0, nc: 0.1, want: 0.08096223603015351},
		{x: 3.33, df: 17.0, nc: 2.7, want: 0.9999523853009433},
		{x: 77.0, df: 22.0, nc: 41.7, want: 0.17639779327463811},
	}

	for _, tc := range cases {
		got := NoncentralChiSquaredSurvival(tc.x, tc.df, tc.nc)
		assert.InDelta(t, tc.want, got, 1e-9, "x=%g df=%g nc=%g", tc.x, tc.df, tc.nc)
	}

	// Deep tail, compared relatively.
	assert.InEpsilon(t, 2.678987522874987e-05, NoncentralChiSquaredSurvival(77, 2, 21.7), 1e-6)
}

func TestNoncentralChiSquaredSurvivalCentral(t *testing.T) {
	for _, df := range []float64{0.5, 1, 2.117283950617284, 4, 30} {
		for _, x := range []float64{0.1, 1, 4, 12.5, 60} {
			want := distuv.ChiSquared{K: df}.Survival(x)
			assert.InDelta(t, want, NoncentralChiSquaredSurvival(x, df, 0), 1e-15)
		}
	}
}

func TestNoncentralChiSquaredSurvivalBounds(t *testing.T) {
	assert.Equal(t, 1.0, NoncentralChiSquaredSurvival(0, 3, 2))
	assert.Equal(t, 1.0, NoncentralChiSquaredSurvival(-4, 3, 2))
	assert.Equal(t, 0.0, NoncentralChiSquaredSurvival(math.Inf(1), 3, 2))
	assert.InDelta(t, 0.0, NoncentralChiSquaredSurvival(1e6, 4, 7), 1e-300)

	// Large noncentrality still converges.
	assert.InDelta(t, 0.5, NoncentralChiSquaredSurvival(2001, 1, 2000), 0.05)
}

func TestNoncentralChiSquaredSurvivalInvalid(t *testing.T) {
	assert.True(t, math.IsNaN(NoncentralChiSquaredSurvival(math.NaN(), 3, 2)))
	assert.True(t, math.IsNaN(NoncentralChiSquaredSurvival(1, math.NaN(), 2)))
	assert.True(t, math.IsNaN(NoncentralChiSquaredSurvival(1, 3, math.NaN())))
	assert.True(t, math.IsNaN(NoncentralChiSquaredSurvival(1, -1, 2)))
	assert.True(t, math.IsNaN(NoncentralChiSquaredSurvival(1, 3, -2)))
}

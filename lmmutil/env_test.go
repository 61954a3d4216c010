// SPDX-License-Identifier: MIT
package lmmutil

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

func TestNormEnvMatrix(t *testing.T) {
	E := mat.NewDense(4, 2, []float64{
		1, 10,
		2, 20,
		3, 25,
		4, 45,
	})
	orig := mat.DenseCopyOf(E)

	got := NormEnvMatrix(E)
	r, c := got.Dims()
	require.Equal(t, 4, r)
	require.Equal(t, 2, c)

	for j := 0; j < c; j++ {
		col := mat.Col(nil, j, got)
		mean, variance := stat.PopMeanVariance(col, nil)
		assert.InDelta(t, 0, mean, 1e-12)
		assert.InDelta(t, 1, variance, 1e-12)
	}

	// Population standard deviation of 1..4 is sqrt(1.25).
	assert.InDelta(t, -1.5/math.Sqrt(1.25), got.At(0, 0), 1e-12)
	assert.True(t, mat.Equal(orig, E), "input must not be modified")
}

func TestNormEnvMatrixConstantColumn(t *testing.T) {
	E := mat.NewDense(3, 2, []float64{
		1, 5,
		2, 5,
		3, 5,
	})
	got := NormEnvMatrix(E)
	for i := 0; i < 3; i++ {
		assert.True(t, math.IsNaN(got.At(i, 1)))
	}
	assert.InDelta(t, 0, got.At(1, 0), 1e-12)
}

func TestImportEnvMatrixFromCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "env.tsv")
	writeFile(t, path, "sample\tage\tsmoking\ns1\t30\t0\ns2\t41\t1\ns3\t55\t1\n")

	E, cols, err := ImportEnvMatrixFromCSV(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"age", "smoking"}, cols)
	assert.True(t, mat.Equal(mat.NewDense(3, 2, []float64{30, 0, 41, 1, 55, 1}), E))

	headerOnly := filepath.Join(dir, "header.tsv")
	writeFile(t, headerOnly, "sample\tage\n")
	_, _, err = ImportEnvMatrixFromCSV(headerOnly)
	assert.ErrorIs(t, err, ErrEmptyTable)
}

func TestTableFloatMatrix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.csv")
	writeFile(t, path, "iid,age,smoking\ns1,30,0\ns2,NA,1\n")

	table, err := ReadTable(path)
	require.NoError(t, err)
	assert.Equal(t, "iid", table.IndexName)
	assert.Equal(t, []string{"s1", "s2"}, table.Index)

	E, err := table.FloatMatrix()
	require.NoError(t, err)
	r, c := E.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, 30.0, E.At(0, 0))
	assert.True(t, math.IsNaN(E.At(1, 0)))
	assert.Equal(t, 1.0, E.At(1, 1))
}

// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic fixtures and property checkers for the
//     factorization and solve kernels.
//   • Keep all data finite and well-formed unless a test targets the NaN/Inf policy.

package matrix_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/lvlu/matrix"
	"github.com/stretchr/testify/require"
)

// hide wraps any Matrix to hide its concrete type from type assertions.
// Use hide{X} in tests to force the non-*Dense (At/Set) path.
type hide struct{ matrix.Matrix }

// MustDense allocates an r×c *Dense or fails the test.
func MustDense(t *testing.T, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	require.NoError(t, err, "NewDense(%d,%d)", r, c)

	return m
}

// NewFilledDense builds an r×c *Dense from row-major vals.
func NewFilledDense(t *testing.T, r, c int, vals []float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFromData(r, c, vals)
	require.NoError(t, err)

	return m
}

// FromRows builds a *Dense from a row literal.
func FromRows(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)

	return m
}

// RandFilledDense returns an r×c *Dense with entries uniform in [-1, 1).
// Deterministic for a given seed.
func RandFilledDense(t testing.TB, r, c int, seed int64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	vals := make([]float64, r*c)
	for i := range vals {
		vals[i] = 2*rng.Float64() - 1
	}
	m, err := matrix.NewDenseFromData(r, c, vals)
	require.NoError(t, err)

	return m
}

// RandVec returns n entries uniform in [-1, 1).
func RandVec(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	v := make([]float64, n)
	for i := range v {
		v[i] = 2*rng.Float64() - 1
	}

	return v
}

// MustAt reads m(i,j) or fails the test.
func MustAt(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err, "At(%d,%d)", i, j)

	return v
}

// MustSet writes m(i,j)=v or fails the test.
func MustSet(t *testing.T, m matrix.Matrix, i, j int, v float64) {
	t.Helper()
	require.NoError(t, m.Set(i, j, v), "Set(%d,%d)", i, j)
}

// CompareExact asserts m equals want bit-for-bit (shape and values).
func CompareExact(t *testing.T, want [][]float64, m matrix.Matrix) {
	t.Helper()
	require.Equal(t, len(want), m.Rows(), "rows")
	for i := range want {
		require.Equal(t, len(want[i]), m.Cols(), "cols")
		for j := range want[i] {
			require.Equal(t, want[i][j], MustAt(t, m, i, j), "(%d,%d)", i, j)
		}
	}
}

// CompareClose asserts AllClose(a, b, rtol, atol).
func CompareClose(t *testing.T, a, b matrix.Matrix, rtol, atol float64) {
	t.Helper()
	ok, err := matrix.AllClose(a, b, rtol, atol)
	require.NoError(t, err)
	require.True(t, ok, "matrices differ:\n%v\nvs\n%v", a, b)
}

// SliceClose asserts |a[i]-b[i]| <= atol + rtol*|b[i]| for every i.
func SliceClose(t *testing.T, a, b []float64, rtol, atol float64) {
	t.Helper()
	require.Len(t, a, len(b))
	for i := range a {
		require.LessOrEqual(t, math.Abs(a[i]-b[i]), atol+rtol*math.Abs(b[i]), "index %d: %g vs %g", i, a[i], b[i])
	}
}

// ExpectPanic asserts fn panics with the given message.
func ExpectPanic(t *testing.T, msg string, fn func()) {
	t.Helper()
	require.PanicsWithValue(t, msg, fn)
}

// ---------- property checkers ----------

// propUnitLower asserts L is unit lower triangular (exact 1 diagonal, exact 0 above).
func propUnitLower(t *testing.T, L matrix.Matrix) {
	t.Helper()
	n := L.Rows()
	require.Equal(t, n, L.Cols())
	for i := 0; i < n; i++ {
		require.Equal(t, 1.0, MustAt(t, L, i, i), "L[%d][%d]", i, i)
		for j := i + 1; j < n; j++ {
			require.Equal(t, 0.0, MustAt(t, L, i, j), "L[%d][%d]", i, j)
		}
	}
}

// propUpper asserts U is upper triangular with exact zeros below the diagonal.
func propUpper(t *testing.T, U matrix.Matrix) {
	t.Helper()
	n := U.Rows()
	require.Equal(t, n, U.Cols())
	for i := 1; i < n; i++ {
		for j := 0; j < i; j++ {
			require.Equal(t, 0.0, MustAt(t, U, i, j), "U[%d][%d]", i, j)
		}
	}
}

// propPermutation asserts P holds each of 0..n-1 exactly once.
func propPermutation(t *testing.T, P *matrix.Permutation, n int) {
	t.Helper()
	require.Equal(t, n, P.Len())
	seen := make([]bool, n)
	for _, v := range P.Indices() {
		require.True(t, v >= 0 && v < n, "index %d out of range", v)
		require.False(t, seen[v], "index %d repeated", v)
		seen[v] = true
	}
}

// propReconstruct asserts P·A ≈ L·U entrywise within tol*max|A|.
func propReconstruct(t *testing.T, A matrix.Matrix, L, U *matrix.Dense, P *matrix.Permutation, tol float64) {
	t.Helper()
	PA, err := P.ApplyRows(A)
	require.NoError(t, err)
	LU, err := matrix.Mul(L, U)
	require.NoError(t, err)
	R, err := matrix.Sub(PA, LU)
	require.NoError(t, err)
	rmax, err := matrix.NormMax(R)
	require.NoError(t, err)
	amax, err := matrix.NormMax(A)
	require.NoError(t, err)
	require.LessOrEqual(t, rmax, tol*math.Max(amax, 1), "‖PA−LU‖max")
}

// propResidual asserts ‖A·x − b‖₂ <= tol * (‖A‖_F·‖x‖₂ + ‖b‖₂).
func propResidual(t *testing.T, A matrix.Matrix, x, b []float64, tol float64) {
	t.Helper()
	Ax, err := matrix.MatVec(A, x)
	require.NoError(t, err)
	var r2, x2, b2 float64
	for i := range b {
		d := Ax[i] - b[i]
		r2 += d * d
		b2 += b[i] * b[i]
	}
	for _, v := range x {
		x2 += v * v
	}
	af, err := matrix.NormFrobenius(A)
	require.NoError(t, err)
	require.LessOrEqual(t, math.Sqrt(r2), tol*(af*math.Sqrt(x2)+math.Sqrt(b2)))
}

// onesVec returns n ones (the harness right-hand side).
func onesVec(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = 1
	}

	return v
}

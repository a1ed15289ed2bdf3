// SPDX-License-Identifier: MIT
// Package matrix_test - tests for LUP (P·A = L·U with partial pivoting).

package matrix_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/katalvlaran/lvlu/matrix"
	"github.com/stretchr/testify/require"
)

// TestLUP_TwoByTwoPivoted checks exact factors for [[2,1],[4,3]].
func TestLUP_TwoByTwoPivoted(t *testing.T) {
	A := FromRows(t, [][]float64{{2, 1}, {4, 3}})
	L, U, P, err := matrix.LUP(A, true)
	require.NoError(t, err)

	require.Equal(t, []int{1, 0}, P.Indices())
	CompareExact(t, [][]float64{{1, 0}, {0.5, 1}}, L)
	CompareExact(t, [][]float64{{4, 3}, {0, -0.5}}, U)
	propReconstruct(t, A, L, U, P, 0)
}

// TestLUP_TwoByTwoNatural keeps natural order when pivoting is off.
func TestLUP_TwoByTwoNatural(t *testing.T) {
	A := FromRows(t, [][]float64{{2, 1}, {4, 3}})
	L, U, P, err := matrix.LUP(A, false)
	require.NoError(t, err)

	require.Equal(t, []int{0, 1}, P.Indices())
	CompareExact(t, [][]float64{{1, 0}, {2, 1}}, L)
	CompareExact(t, [][]float64{{2, 1}, {0, 1}}, U)
}

// TestLUP_Identity factorizes I into I, I, identity.
func TestLUP_Identity(t *testing.T) {
	for _, permute := range []bool{true, false} {
		I, err := matrix.NewIdentity(4)
		require.NoError(t, err)
		L, U, P, err := matrix.LUP(I, permute)
		require.NoError(t, err)
		CompareClose(t, L, I, 0, 0)
		CompareClose(t, U, I, 0, 0)
		require.Equal(t, []int{0, 1, 2, 3}, P.Indices())
	}
}

// TestLUP_OneByOne covers the degenerate order without an elimination step.
func TestLUP_OneByOne(t *testing.T) {
	A := FromRows(t, [][]float64{{-3}})
	L, U, P, err := matrix.LUP(A, true)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{1}}, L)
	CompareExact(t, [][]float64{{-3}}, U)
	require.Equal(t, []int{0}, P.Indices())

	_, _, _, err = matrix.LUP(FromRows(t, [][]float64{{0}}), true)
	require.ErrorIs(t, err, matrix.ErrSingular)
}

// TestLUP_Singular reports ErrSingular on the final pivot with and without pivoting.
func TestLUP_Singular(t *testing.T) {
	A := FromRows(t, [][]float64{{1, 2}, {2, 4}})
	for _, permute := range []bool{true, false} {
		L, U, P, err := matrix.LUP(A, permute)
		require.ErrorIs(t, err, matrix.ErrSingular, "permute=%v", permute)
		require.Nil(t, L)
		require.Nil(t, U)
		require.Nil(t, P)
	}
}

// TestLUP_ZeroLeadingPivot needs pivoting: [[0,1],[1,0]].
func TestLUP_ZeroLeadingPivot(t *testing.T) {
	A := FromRows(t, [][]float64{{0, 1}, {1, 0}})

	_, _, _, err := matrix.LUP(A, false)
	require.ErrorIs(t, err, matrix.ErrSingular)

	L, U, P, err := matrix.LUP(A, true)
	require.NoError(t, err)
	require.Equal(t, []int{1, 0}, P.Indices())
	CompareExact(t, [][]float64{{1, 0}, {0, 1}}, L)
	CompareExact(t, [][]float64{{1, 0}, {0, 1}}, U)
	require.Equal(t, -1.0, P.Sign())
}

// TestLUP_PivotTieKeepsFirstRow checks that equal magnitudes keep the smallest index.
func TestLUP_PivotTieKeepsFirstRow(t *testing.T) {
	A := FromRows(t, [][]float64{{-2, 1}, {2, 5}})
	_, U, P, err := matrix.LUP(A, true)
	require.NoError(t, err)
	require.Equal(t, []int{0, 1}, P.Indices())
	CompareExact(t, [][]float64{{-2, 1}, {0, 6}}, U)
}

// TestLUP_ThreeByThreeKnown checks L's prefix-only row swaps on a 3×3 input.
func TestLUP_ThreeByThreeKnown(t *testing.T) {
	A := FromRows(t, [][]float64{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 10},
	})
	L, U, P, err := matrix.LUP(A, true)
	require.NoError(t, err)

	propUnitLower(t, L)
	propUpper(t, U)
	propPermutation(t, P, 3)
	require.Equal(t, 2, P.At(0), "largest first-column entry leads")
	propReconstruct(t, A, L, U, P, 1e-14)

	// |L[i][j]| <= 1 under partial pivoting.
	for i := 0; i < 3; i++ {
		for j := 0; j < i; j++ {
			require.LessOrEqual(t, math.Abs(MustAt(t, L, i, j)), 1.0)
		}
	}
}

// TestLUP_Errors covers nil, non-square and NaN/Inf inputs.
func TestLUP_Errors(t *testing.T) {
	_, _, _, err := matrix.LUP(nil, true)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	_, _, _, err = matrix.LUP(MustDense(t, 2, 3), true)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	bad, err := matrix.ExportedNewDenseWithPolicy(2, 2, false)
	require.NoError(t, err)
	MustSet(t, bad, 0, 0, math.NaN())
	MustSet(t, bad, 1, 1, 1)
	_, _, _, err = matrix.LUP(bad, true)
	require.ErrorIs(t, err, matrix.ErrNaNInf)
	require.ErrorIs(t, err, matrix.ErrNonFiniteInput)

	// With the scan disabled a NaN pivot still cannot pass the tolerance test.
	_, _, _, err = matrix.LUP(bad, false, matrix.WithNoValidateNaNInf())
	require.ErrorIs(t, err, matrix.ErrSingular)
}

// TestLUP_EliminationOverflow stops on entries that leave the finite range.
func TestLUP_EliminationOverflow(t *testing.T) {
	A := FromRows(t, [][]float64{{1e308, 1e308}, {-1e308, 1e308}})
	for _, m := range []matrix.Matrix{A, hide{A}} {
		_, _, _, err := matrix.LUP(m, true)
		require.ErrorIs(t, err, matrix.ErrNaNInf)
		require.NotErrorIs(t, err, matrix.ErrSingular)
	}

	// The multiplier itself can overflow when the pivot is tiny.
	B := FromRows(t, [][]float64{{1e-300, 1}, {1e300, 1}})
	_, _, _, err := matrix.LUP(B, false, matrix.WithPivotTolerance(0))
	require.ErrorIs(t, err, matrix.ErrNaNInf)

	// The relaxed policy hands the overflowed factor back.
	_, U, _, err := matrix.LUP(A, true, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	require.True(t, math.IsInf(MustAt(t, U, 1, 1), 1))
}

// TestLUP_PivotTolerance shows the relative threshold at work.
func TestLUP_PivotTolerance(t *testing.T) {
	A := FromRows(t, [][]float64{{1, 1}, {1, 1 + 1e-10}})

	_, _, _, err := matrix.LUP(A, true)
	require.NoError(t, err, "default tolerance accepts a 1e-10 pivot")

	_, _, _, err = matrix.LUP(A, true, matrix.WithPivotTolerance(1e-8))
	require.ErrorIs(t, err, matrix.ErrSingular)

	Z := FromRows(t, [][]float64{{0, 0}, {0, 0}})
	_, _, _, err = matrix.LUP(Z, true, matrix.WithPivotTolerance(0))
	require.ErrorIs(t, err, matrix.ErrSingular, "exact zero is singular at tol 0")
}

// TestLUP_DoesNotMutateInput compares A before and after.
func TestLUP_DoesNotMutateInput(t *testing.T) {
	A := RandFilledDense(t, 6, 6, 7)
	before := A.Clone()
	_, _, _, err := matrix.LUP(A, true)
	require.NoError(t, err)
	CompareClose(t, A, before, 0, 0)
}

// TestLUP_FallbackMatchesDense runs the At path through hide{} and expects identical factors.
func TestLUP_FallbackMatchesDense(t *testing.T) {
	A := RandFilledDense(t, 5, 5, 99)
	L1, U1, P1, err := matrix.LUP(A, true)
	require.NoError(t, err)
	L2, U2, P2, err := matrix.LUP(hide{A}, true)
	require.NoError(t, err)

	CompareClose(t, L1, L2, 0, 0)
	CompareClose(t, U1, U2, 0, 0)
	require.Equal(t, P1.Indices(), P2.Indices())
}

// TestLUP_RandomProperties checks structure and reconstruction on seeded inputs.
func TestLUP_RandomProperties(t *testing.T) {
	for _, n := range []int{2, 3, 8, 17, 40} {
		for seed := int64(1); seed <= 3; seed++ {
			t.Run(fmt.Sprintf("n=%d/seed=%d", n, seed), func(t *testing.T) {
				A := RandFilledDense(t, n, n, seed*1000+int64(n))
				L, U, P, err := matrix.LUP(A, true)
				require.NoError(t, err)
				require.Equal(t, n, L.Rows())
				require.Equal(t, n, U.Cols())

				propUnitLower(t, L)
				propUpper(t, U)
				propPermutation(t, P, n)
				propReconstruct(t, A, L, U, P, 1e-12)
			})
		}
	}
}

// TestLUP_Deterministic expects bit-identical output on repeated calls.
func TestLUP_Deterministic(t *testing.T) {
	A := RandFilledDense(t, 12, 12, 5)
	L1, U1, P1, err := matrix.LUP(A, true)
	require.NoError(t, err)
	L2, U2, P2, err := matrix.LUP(A, true)
	require.NoError(t, err)
	require.Equal(t, L1.String(), L2.String())
	require.Equal(t, U1.String(), U2.String())
	require.Equal(t, P1.String(), P2.String())
}

// TestFactorize bundles the factors for repeated solves.
func TestFactorize(t *testing.T) {
	A := FromRows(t, [][]float64{{2, 1}, {4, 3}})
	f, err := matrix.Factorize(A, true)
	require.NoError(t, err)
	require.Equal(t, 2, f.Order())

	x, err := f.Solve([]float64{1, 1})
	require.NoError(t, err)
	require.Equal(t, []float64{1, -1}, x)

	_, err = matrix.Factorize(FromRows(t, [][]float64{{1, 2}, {2, 4}}), true)
	require.ErrorIs(t, err, matrix.ErrSingular)
}

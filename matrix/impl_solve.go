// SPDX-License-Identifier: MIT

// Package matrix - triangular solves on LUP factors.
//
// Purpose:
//   - Solve A·x = b from P·A = L·U in two O(n^2) sweeps:
//     forward substitution L·y = P·b, then backward substitution U·x = y.
//   - Read only the strictly lower part of L (its unit diagonal is implied)
//     and the upper part of U; zero regions are never consulted.

package matrix

import (
	"fmt"
	"math"
)

// SolveLU solves A·x = b given the factors of LUP.
// MAIN DESCRIPTION:
//   - Apply P to b, solve the unit lower system, then the upper system.
//
// Implementation:
//   - Stage 1: ValidateNotNil(L,U), P != nil, ValidateSquare(L,U), same order,
//     P.Len() == n, ValidateVecLen(b, n); finite L, U, b under the NaN/Inf policy.
//   - Stage 2: bp = P·b.
//   - Stage 3: forward,  i↑: y[i] = bp[i] − Σ_{j<i} L[i][j]·y[j]  (no division).
//   - Stage 4: backward, i↓: x[i] = (y[i] − Σ_{j>i} U[i][j]·x[j]) / U[i][i],
//     with |U[i][i]| <= pivotTol*max|U| → ErrSingular.
//
// Behavior highlights:
//   - y is complete before backward substitution starts.
//   - L, U, P and b are never mutated; y and x are fresh per call.
//   - *Dense factors use flat indexing; other Matrix types go through At.
//
// Inputs:
//   - L, U: factors from one LUP call (n×n).
//   - P: permutation from the same call.
//   - b: right-hand side, len n.
//
// Returns:
//   - x: solution, len n.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf, ErrSingular (wrapped with "SolveLU").
//
// Complexity:
//   - Time O(n^2), Space O(n).
func SolveLU(L, U Matrix, P *Permutation, b []float64, opts ...Option) ([]float64, error) {
	// Stage 1: validation.
	if err := ValidateNotNil(L); err != nil {
		return nil, matrixErrorf(opSolveLU, fmt.Errorf("L: %w", err))
	}
	if err := ValidateNotNil(U); err != nil {
		return nil, matrixErrorf(opSolveLU, fmt.Errorf("U: %w", err))
	}
	if P == nil {
		return nil, matrixErrorf(opSolveLU, fmt.Errorf("P: %w", ErrNilMatrix))
	}
	if err := ValidateSquare(L); err != nil {
		return nil, matrixErrorf(opSolveLU, fmt.Errorf("L: %w", err))
	}
	if err := ValidateSquare(U); err != nil {
		return nil, matrixErrorf(opSolveLU, fmt.Errorf("U: %w", err))
	}
	if err := ValidateSameShape(L, U); err != nil {
		return nil, matrixErrorf(opSolveLU, err)
	}
	n := L.Rows()
	if P.Len() != n {
		return nil, matrixErrorf(opSolveLU, fmt.Errorf("P has order %d, want %d: %w", P.Len(), n, ErrDimensionMismatch))
	}
	if err := ValidateVecLen(b, n); err != nil {
		return nil, matrixErrorf(opSolveLU, err)
	}
	o := gatherOptions(opts...)
	if o.validateNaNInf {
		if err := ValidateFiniteVec(b); err != nil {
			return nil, matrixErrorf(opSolveLU, err)
		}
		if err := validateTriangleFinite(L, true); err != nil {
			return nil, matrixErrorf(opSolveLU, fmt.Errorf("L: %w", err))
		}
		if err := validateTriangleFinite(U, false); err != nil {
			return nil, matrixErrorf(opSolveLU, fmt.Errorf("U: %w", err))
		}
	}

	// Stage 2: bp = P·b (fresh slice, b untouched).
	bp, err := P.ApplyVec(b)
	if err != nil {
		return nil, matrixErrorf(opSolveLU, err)
	}

	Ld, okL := L.(*Dense)
	Ud, okU := U.(*Dense)
	if okL && okU {
		x, err := solveDense(Ld, Ud, bp, o.pivotTol*upperMaxAbs(Ud))
		if err != nil {
			return nil, matrixErrorf(opSolveLU, err)
		}

		return x, nil
	}

	x, err := solveGeneric(L, U, bp, o.pivotTol)
	if err != nil {
		return nil, matrixErrorf(opSolveLU, err)
	}

	return x, nil
}

// solveDense runs both sweeps over the flat row-major buffers.
func solveDense(L, U *Dense, bp []float64, tol float64) ([]float64, error) {
	n := L.r
	y := make([]float64, n)
	x := make([]float64, n)
	var (
		i, j int
		base int
		sum  float64
		piv  float64
	)

	// Forward substitution: L·y = bp (unit diagonal).
	for i = 0; i < n; i++ {
		sum = ZeroSum
		base = i * n
		for j = 0; j < i; j++ {
			sum += L.data[base+j] * y[j]
		}
		y[i] = bp[i] - sum
	}

	// Backward substitution: U·x = y.
	for i = n - 1; i >= 0; i-- {
		sum = ZeroSum
		base = i * n
		for j = i + 1; j < n; j++ {
			sum += U.data[base+j] * x[j]
		}
		piv = U.data[base+i]
		if !(math.Abs(piv) > tol) {
			return nil, fmt.Errorf("U[%d][%d]: |%g| <= %g: %w", i, i, piv, tol, ErrSingular)
		}
		x[i] = (y[i] - sum) / piv
	}

	return x, nil
}

// solveGeneric is the At-based fallback for non-*Dense factors.
// The relative tolerance is scaled by max|U_ij| over the upper part.
func solveGeneric(L, U Matrix, bp []float64, pivotTol float64) ([]float64, error) {
	n := L.Rows()
	y := make([]float64, n)
	x := make([]float64, n)
	var (
		i, j     int
		sum, v   float64
		piv, big float64
		err      error
	)

	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			if v, err = U.At(i, j); err != nil {
				return nil, fmt.Errorf("U.At(%d,%d): %w", i, j, err)
			}
			if math.Abs(v) > big {
				big = math.Abs(v)
			}
		}
	}
	tol := pivotTol * big

	for i = 0; i < n; i++ {
		sum = ZeroSum
		for j = 0; j < i; j++ {
			if v, err = L.At(i, j); err != nil {
				return nil, fmt.Errorf("L.At(%d,%d): %w", i, j, err)
			}
			sum += v * y[j]
		}
		y[i] = bp[i] - sum
	}

	for i = n - 1; i >= 0; i-- {
		sum = ZeroSum
		for j = i + 1; j < n; j++ {
			if v, err = U.At(i, j); err != nil {
				return nil, fmt.Errorf("U.At(%d,%d): %w", i, j, err)
			}
			sum += v * x[j]
		}
		if piv, err = U.At(i, i); err != nil {
			return nil, fmt.Errorf("U.At(%d,%d): %w", i, i, err)
		}
		if !(math.Abs(piv) > tol) {
			return nil, fmt.Errorf("U[%d][%d]: |%g| <= %g: %w", i, i, piv, tol, ErrSingular)
		}
		x[i] = (y[i] - sum) / piv
	}

	return x, nil
}

// validateTriangleFinite rejects NaN/±Inf in the strictly lower part of m
// (lower) or in its upper part including the diagonal (!lower). The other
// region is never read.
func validateTriangleFinite(m Matrix, lower bool) error {
	n := m.Rows()
	d, dense := m.(*Dense)
	var (
		i, j, lo, hi int
		v            float64
		err          error
	)
	for i = 0; i < n; i++ {
		lo, hi = i, n
		if lower {
			lo, hi = 0, i
		}
		for j = lo; j < hi; j++ {
			if dense {
				v = d.data[i*n+j]
			} else if v, err = m.At(i, j); err != nil {
				return validatorErrorf("ValidateFinite", err)
			}
			if isNonFinite(v) {
				return validatorErrorf(fmt.Sprintf("ValidateFinite(%d,%d)", i, j), ErrNaNInf)
			}
		}
	}

	return nil
}

// upperMaxAbs returns max|U_ij| over j >= i.
func upperMaxAbs(U *Dense) float64 {
	n := U.r
	var big, a float64
	for i := 0; i < n; i++ {
		for _, v := range U.data[i*n+i : (i+1)*n] {
			if a = math.Abs(v); a > big {
				big = a
			}
		}
	}

	return big
}

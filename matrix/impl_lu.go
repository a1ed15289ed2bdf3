// SPDX-License-Identifier: MIT

// Package matrix - LU factorization with partial pivoting (P·A = L·U).
//
// Purpose:
//   - Gaussian elimination on a private copy of A, producing a unit lower
//     triangular L, an upper triangular U and a row permutation P.
//   - Partial pivoting (largest |U[i][k]| in column k, rows k..n-1) bounds the
//     growth of intermediate values; it can be disabled to study stability.
//
// Determinism:
//   - Fixed loop orders (k↑, i↑, j↑); ties in the pivot search resolve to the
//     smallest row index. Identical inputs give bit-identical factors.
//
// Complexity:
//   - Time O(n^3) (2n^3/3 flops), Space O(n^2) for L and U, O(n) for P.

package matrix

import (
	"fmt"
	"math"
)

// LUP computes P·A = L·U by Gaussian elimination.
// MAIN DESCRIPTION:
//   - Factorize a square matrix, optionally with partial pivoting, without
//     touching the caller's matrix.
//
// Implementation:
//   - Stage 1: ValidateNotNil → ValidateSquare → ValidateFinite (policy).
//   - Stage 2: U = copy(A) (flat copy for *Dense, At-walk otherwise), L = I, P = identity.
//     tol = pivotTol * max|a_ij|.
//   - Stage 3: for k = 0..n-2:
//     a) permute: p = argmax_{i∈[k,n)} |U[i][k]| (first maximum wins);
//     b) p != k: SwapRows(U), Swap(P), SwapRowPrefix(L, k) (columns 0..k-1 only);
//     c) |U[k][k]| <= tol → ErrSingular;
//     d) for i > k: L[i][k] = U[i][k]/U[k][k]; U[i][k] = 0; U[i][j] -= L[i][k]*U[k][j], j > k.
//   - Stage 4: check the final pivot U[n-1][n-1] against tol.
//
// Behavior highlights:
//   - The pivot search covers columns 0..n-2; the last 1×1 block has nothing to choose from.
//   - Entries of U below the diagonal are written as exact zeros, never left as rounding residue.
//   - The pivot comparison is written as !(|p| > tol) so a NaN pivot is singular too.
//   - Under the NaN/Inf policy a multiplier or updated entry that overflows to
//     ±Inf/NaN stops elimination with ErrNaNInf; the relaxed policy lets it
//     propagate.
//
// Inputs:
//   - m: square Matrix (n×n), not mutated.
//   - permute: enable partial pivoting. false keeps natural row order and
//     fails with ErrSingular on the first (near-)zero pivot.
//   - opts: WithPivotTolerance, WithValidateNaNInf / WithNoValidateNaNInf.
//
// Returns:
//   - L: *Dense unit lower triangular.
//   - U: *Dense upper triangular.
//   - P: *Permutation with P·A = L·U.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf, ErrSingular (all wrapped with "LUP").
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
//
// AI-Hints:
//   - Factorize once, then call SolveLU per right-hand side.
//   - Pass *Dense to skip the per-element copy through At.
func LUP(m Matrix, permute bool, opts ...Option) (*Dense, *Dense, *Permutation, error) {
	// Stage 1: validation in documented priority.
	if err := ValidateNotNil(m); err != nil {
		return nil, nil, nil, matrixErrorf(opLUP, err)
	}
	if err := ValidateSquare(m); err != nil {
		return nil, nil, nil, matrixErrorf(opLUP, err)
	}
	o := gatherOptions(opts...)
	if o.validateNaNInf {
		if err := ValidateFinite(m); err != nil {
			return nil, nil, nil, matrixErrorf(opLUP, err)
		}
	}

	// Stage 2: private working copies.
	n := m.Rows()
	U, err := denseCopyOf(m)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opLUP, err)
	}
	L, err := NewIdentity(n)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opLUP, err)
	}
	P, err := NewPermutation(n)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opLUP, err)
	}
	tol := o.pivotTol * U.maxAbs()

	// Stage 3: elimination.
	ud, ld := U.data, L.data
	var (
		i, j, k, p       int
		baseK, baseI     int
		pivot, mult, big float64
		cand             float64
	)
	for k = 0; k < n-1; k++ {
		if permute {
			p, big = k, math.Abs(ud[k*n+k])
			for i = k + 1; i < n; i++ {
				if cand = math.Abs(ud[i*n+k]); cand > big {
					p, big = i, cand
				}
			}
			if p != k {
				if err = U.SwapRows(k, p); err != nil {
					return nil, nil, nil, matrixErrorf(opLUP, err)
				}
				if err = P.Swap(k, p); err != nil {
					return nil, nil, nil, matrixErrorf(opLUP, err)
				}
				if err = L.SwapRowPrefix(k, p, k); err != nil {
					return nil, nil, nil, matrixErrorf(opLUP, err)
				}
			}
		}

		baseK = k * n
		pivot = ud[baseK+k]
		if !(math.Abs(pivot) > tol) {
			return nil, nil, nil, matrixErrorf(opLUP, singularPivotErr(k, pivot, tol))
		}

		for i = k + 1; i < n; i++ {
			baseI = i * n
			mult = ud[baseI+k] / pivot
			ld[baseI+k] = mult
			ud[baseI+k] = 0 // exact zero below the diagonal
			if mult == 0 {
				continue // row already eliminated in this column
			}
			if o.validateNaNInf && isNonFinite(mult) {
				return nil, nil, nil, matrixErrorf(opLUP, overflowErr(i, k))
			}
			for j = k + 1; j < n; j++ {
				ud[baseI+j] -= mult * ud[baseK+j]
			}
			if o.validateNaNInf {
				for j = k + 1; j < n; j++ {
					if isNonFinite(ud[baseI+j]) {
						return nil, nil, nil, matrixErrorf(opLUP, overflowErr(i, j))
					}
				}
			}
		}
	}

	// Stage 4: the last pivot is never searched but still divides in SolveLU.
	if last := ud[n*n-1]; !(math.Abs(last) > tol) {
		return nil, nil, nil, matrixErrorf(opLUP, singularPivotErr(n-1, last, tol))
	}

	return L, U, P, nil
}

// singularPivotErr attaches the failing column, pivot value and tolerance to ErrSingular.
func singularPivotErr(k int, pivot, tol float64) error {
	return fmt.Errorf("pivot %d: |%g| <= %g: %w", k, pivot, tol, ErrSingular)
}

// overflowErr reports an entry that left the finite range during elimination.
func overflowErr(i, j int) error {
	return fmt.Errorf("elimination overflow at (%d,%d): %w", i, j, ErrNaNInf)
}

// denseCopyOf returns an owned *Dense holding the entries of m.
// Flat copy for *Dense, At-walk for other implementations.
// Complexity: O(r*c).
func denseCopyOf(m Matrix) (*Dense, error) {
	if d, ok := m.(*Dense); ok {
		return d.clone(), nil
	}
	r, c := m.Rows(), m.Cols()
	out, err := NewDense(r, c)
	if err != nil {
		return nil, err
	}
	var (
		i, j int
		v    float64
	)
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, fmt.Errorf("At(%d,%d): %w", i, j, err)
			}
			out.data[i*c+j] = v
		}
	}

	return out, nil
}

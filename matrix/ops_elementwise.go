// SPDX-License-Identifier: MIT
// Package matrix - element-wise comparisons and entry norms.
//
// Purpose:
//   - Tolerance comparisons and norms used to judge factorization quality
//     (‖P·A − L·U‖, ‖A·x − b‖) without pulling in a linear-algebra dependency.
//
// Contracts:
//   - Inputs are never mutated; *Dense inputs use flat loops, others go through At.

package matrix

import (
	"fmt"
	"math"
)

const (
	opAllClose      = "AllClose"
	opNormMax       = "NormMax"
	opNormFrobenius = "NormFrobenius"
)

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
//
// Policy:
//   - a and b must be non-nil and have identical shapes.
//   - rtol, atol are treated as |rtol|, |atol|; non-finite tolerances are ErrNaNInf.
//   - A NaN entry never compares close.
//
// Complexity: Time O(r*c), Space O(1).
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if isNonFinite(rtol) || isNonFinite(atol) {
		return false, matrixErrorf(opAllClose, ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}

	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			for idx, bv := range db.data {
				if !(math.Abs(da.data[idx]-bv) <= atol+rtol*math.Abs(bv)) {
					return false, nil
				}
			}

			return true, nil
		}
	}

	r, c := a.Rows(), a.Cols()
	var (
		av, bv float64
		err    error
	)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if av, err = a.At(i, j); err != nil {
				return false, matrixErrorf(opAllClose, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			if bv, err = b.At(i, j); err != nil {
				return false, matrixErrorf(opAllClose, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			if !(math.Abs(av-bv) <= atol+rtol*math.Abs(bv)) {
				return false, nil
			}
		}
	}

	return true, nil
}

// NormMax returns max |m_ij|.
// Errors: ErrNilMatrix, accessor errors.
func NormMax(m Matrix) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opNormMax, err)
	}
	if d, ok := m.(*Dense); ok {
		return d.maxAbs(), nil
	}
	var mx float64
	err := visit(m, func(v float64) {
		if a := math.Abs(v); a > mx {
			mx = a
		}
	})
	if err != nil {
		return 0, matrixErrorf(opNormMax, err)
	}

	return mx, nil
}

// NormFrobenius returns sqrt(Σ m_ij²), scaled to avoid overflow.
// Errors: ErrNilMatrix, accessor errors.
// Complexity: Time O(r*c), Space O(1).
func NormFrobenius(m Matrix) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opNormFrobenius, err)
	}
	// Running scale/sum-of-squares (LAPACK dnrm2 style).
	scale, ssq := 0.0, 1.0
	acc := func(v float64) {
		if v == 0 {
			return
		}
		a := math.Abs(v)
		if scale < a {
			ssq = 1 + ssq*(scale/a)*(scale/a)
			scale = a
		} else {
			ssq += (a / scale) * (a / scale)
		}
	}
	if d, ok := m.(*Dense); ok {
		for _, v := range d.data {
			acc(v)
		}
	} else if err := visit(m, acc); err != nil {
		return 0, matrixErrorf(opNormFrobenius, err)
	}

	return scale * math.Sqrt(ssq), nil
}

// visit calls f on every entry of m in row-major order through At.
func visit(m Matrix, f func(v float64)) error {
	r, c := m.Rows(), m.Cols()
	var (
		v   float64
		err error
	)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return fmt.Errorf("At(%d,%d): %w", i, j, err)
			}
			f(v)
		}
	}

	return nil
}

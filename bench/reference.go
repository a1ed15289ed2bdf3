// SPDX-License-Identifier: MIT

package bench

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/lvlu/matrix"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ReferenceSolve solves a·x = b with gonum's LAPACK-backed LU and serves as
// ground truth for the relative error. An ill-conditioned but nonsingular a
// still yields a solution; a singular one fails with ErrReference.
func ReferenceSolve(a *matrix.Dense, b []float64) ([]float64, error) {
	if a == nil || b == nil {
		return nil, matrix.ErrNilMatrix
	}
	n := a.Rows()
	if a.Cols() != n || len(b) != n {
		return nil, fmt.Errorf("ReferenceSolve: %dx%d with len(b)=%d: %w", n, a.Cols(), len(b), matrix.ErrDimensionMismatch)
	}

	data := make([]float64, 0, n*n)
	for i := 0; i < n; i++ {
		row, err := a.Row(i)
		if err != nil {
			return nil, err
		}
		data = append(data, row...)
	}

	var x mat.VecDense
	err := x.SolveVec(mat.NewDense(n, n, data), mat.NewVecDense(n, append([]float64(nil), b...)))
	if err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
			return nil, fmt.Errorf("%w: %v", ErrReference, err)
		}
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = x.AtVec(i)
	}

	return out, nil
}

// RelativeError returns ‖x − ref‖₂ / ‖ref‖₂, or the absolute distance when
// ref is the zero vector.
func RelativeError(x, ref []float64) (float64, error) {
	if len(x) != len(ref) {
		return 0, fmt.Errorf("RelativeError: len %d vs %d: %w", len(x), len(ref), matrix.ErrDimensionMismatch)
	}
	if len(x) == 0 {
		return 0, nil
	}
	d := floats.Distance(x, ref, 2)
	if nr := floats.Norm(ref, 2); nr != 0 {
		return d / nr, nil
	}

	return d, nil
}

// Residual returns ‖a·x − b‖₂.
func Residual(a matrix.Matrix, x, b []float64) (float64, error) {
	ax, err := matrix.MatVec(a, x)
	if err != nil {
		return 0, err
	}
	if len(ax) != len(b) {
		return 0, fmt.Errorf("Residual: len %d vs %d: %w", len(ax), len(b), matrix.ErrDimensionMismatch)
	}

	return floats.Distance(ax, b, 2), nil
}

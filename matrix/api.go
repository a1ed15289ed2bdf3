// SPDX-License-Identifier: MIT
// Package matrix: public API facades.
//
// Purpose:
//   - Provide thin entry points for common tasks across the package.
//   - Each facade delegates to the canonical implementation; no logic duplication.
//
// AI-Hints:
//   - Prefer passing *Dense to unlock fast-paths in kernels (flat-slice loops).
//   - Use NewIdentity/NewZeros to build matrices with explicit shape and neutral elements.
//   - Use Factorize when you want the three factors bundled for repeated solves.

package matrix

// ---------- Constructors & Utilities ----------

// NewZeros returns a new zero-initialized *Dense of size rows×cols.
// It is a thin alias of NewDense with an intention-revealing name.
func NewZeros(rows, cols int) (*Dense, error) {
	return NewDense(rows, cols)
}

// NewIdentity returns I_n (n×n identity; ones on the diagonal, zeros elsewhere).
// Complexity: O(n^2) zeroing (constructor) + O(n) writes on the diagonal.
func NewIdentity(n int) (*Dense, error) {
	I, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		I.data[i*n+i] = 1.0
	}

	return I, nil
}

// IdentityLike returns I with the order of square m.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func IdentityLike(m Matrix) (*Dense, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, err
	}

	return NewIdentity(m.Rows())
}

// CloneMatrix returns a structural clone of m (same type if m is *Dense).
func CloneMatrix(m Matrix) Matrix {
	if m == nil {
		return nil
	}

	return m.Clone()
}

// ---------- Factorization bundle ----------

// Factorization holds the result of one LUP call for repeated solves.
type Factorization struct {
	L *Dense       // unit lower triangular
	U *Dense       // upper triangular
	P *Permutation // row permutation, P·A = L·U
}

// Factorize runs LUP and bundles the factors.
// Errors: see LUP.
func Factorize(m Matrix, permute bool, opts ...Option) (*Factorization, error) {
	L, U, P, err := LUP(m, permute, opts...)
	if err != nil {
		return nil, err
	}

	return &Factorization{L: L, U: U, P: P}, nil
}

// Solve solves A·x = b with the stored factors. See SolveLU.
func (f *Factorization) Solve(b []float64, opts ...Option) ([]float64, error) {
	return SolveLU(f.L, f.U, f.P, b, opts...)
}

// Order returns n.
func (f *Factorization) Order() int { return f.L.r }

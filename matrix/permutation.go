// SPDX-License-Identifier: MIT

// Package matrix - compact row permutation.
//
// Purpose:
//   - Represent the P of P·A = L·U as an index slice instead of a dense 0/1 matrix.
//   - perm[i] is the row of A that lands in row i of P·A, so (P·v)[i] = v[perm[i]].
//   - Materialize the matrix form (Dense) only when a caller wants to multiply.
//
// Complexity quicksheet:
//   - NewPermutation: O(n); Swap/At: O(1); ApplyVec: O(n); ApplyRows: O(n*c); Dense: O(n^2).

package matrix

import (
	"fmt"
	"math"
	"strings"
)

const (
	opPermFrom      = "PermutationFrom"
	opPermFromDense = "PermutationFromDense"
	opPermApplyVec  = "Permutation.ApplyVec"
	opPermApplyRows = "Permutation.ApplyRows"
	opPermSwap      = "Permutation.Swap"
)

// Permutation is a row permutation of the n×n identity.
// The zero value is not usable; build it with NewPermutation or PermutationFrom.
type Permutation struct {
	perm  []int // perm[i] = source row for destination row i
	swaps int   // number of non-trivial transpositions applied since identity
}

// NewPermutation returns the identity permutation of order n.
// Errors: ErrInvalidDimensions when n <= 0.
// Complexity: O(n).
func NewPermutation(n int) (*Permutation, error) {
	if n <= 0 {
		return nil, ErrInvalidDimensions
	}
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}

	return &Permutation{perm: p}, nil
}

// PermutationFrom validates idx and returns a Permutation copying it.
// MAIN DESCRIPTION:
//   - Accept an index slice produced elsewhere (e.g. a pivot log) and check
//     that every value in [0,n) occurs exactly once.
//
// Errors:
//   - ErrInvalidDimensions for an empty slice.
//   - ErrBadPermutation for repeated or out-of-range entries.
//
// Notes:
//   - swaps is recovered from the cycle decomposition, so Sign is exact.
//
// Complexity:
//   - Time O(n), Space O(n).
func PermutationFrom(idx []int) (*Permutation, error) {
	n := len(idx)
	if n == 0 {
		return nil, matrixErrorf(opPermFrom, ErrInvalidDimensions)
	}
	seen := make([]bool, n)
	for i, v := range idx {
		if v < 0 || v >= n || seen[v] {
			return nil, matrixErrorf(opPermFrom, fmt.Errorf("idx[%d]=%d: %w", i, v, ErrBadPermutation))
		}
		seen[v] = true
	}
	p := make([]int, n)
	copy(p, idx)

	return &Permutation{perm: p, swaps: n - cycleCount(p)}, nil
}

// PermutationFromDense reads a 0/1 matrix back into compact form.
// Entries must be within eps (WithEpsilon) of 0 or 1, with exactly one 1
// per row and per column.
// Errors: ErrNilMatrix, ErrDimensionMismatch (non-square), ErrBadPermutation.
// Complexity: O(n^2).
func PermutationFromDense(m Matrix, opts ...Option) (*Permutation, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opPermFromDense, err)
	}
	o := gatherOptions(opts...)
	n := m.Rows()
	idx := make([]int, n)
	var (
		i, j int
		v    float64
		err  error
	)
	for i = 0; i < n; i++ {
		idx[i] = -1
		for j = 0; j < n; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opPermFromDense, err)
			}
			switch {
			case math.Abs(v) <= o.eps:
			case math.Abs(v-1) <= o.eps && idx[i] < 0:
				idx[i] = j
			default:
				return nil, matrixErrorf(opPermFromDense, fmt.Errorf("entry (%d,%d)=%g: %w", i, j, v, ErrBadPermutation))
			}
		}
		if idx[i] < 0 {
			return nil, matrixErrorf(opPermFromDense, fmt.Errorf("row %d has no unit entry: %w", i, ErrBadPermutation))
		}
	}

	return PermutationFrom(idx)
}

// cycleCount returns the number of cycles (fixed points included) of p.
func cycleCount(p []int) int {
	visited := make([]bool, len(p))
	cycles := 0
	for i := range p {
		if visited[i] {
			continue
		}
		cycles++
		for j := i; !visited[j]; j = p[j] {
			visited[j] = true
		}
	}

	return cycles
}

// Len returns the order n.
func (p *Permutation) Len() int { return len(p.perm) }

// At returns the source row for destination row i, or -1 when out of range.
func (p *Permutation) At(i int) int {
	if i < 0 || i >= len(p.perm) {
		return -1
	}

	return p.perm[i]
}

// Indices returns a copy of the index slice.
func (p *Permutation) Indices() []int {
	out := make([]int, len(p.perm))
	copy(out, p.perm)

	return out
}

// Swap exchanges destination rows i and j (the row swap of P as a matrix).
// Errors: ErrOutOfRange. Complexity: O(1).
func (p *Permutation) Swap(i, j int) error {
	n := len(p.perm)
	if i < 0 || i >= n || j < 0 || j >= n {
		return matrixErrorf(opPermSwap, fmt.Errorf("(%d,%d): %w", i, j, ErrOutOfRange))
	}
	if i == j {
		return nil
	}
	p.perm[i], p.perm[j] = p.perm[j], p.perm[i]
	p.swaps++

	return nil
}

// Sign returns det(P): +1 for an even number of transpositions, -1 otherwise.
func (p *Permutation) Sign() float64 {
	if p.swaps%2 == 0 {
		return 1
	}

	return -1
}

// Inverse returns P⁻¹ = Pᵀ as a fresh Permutation.
// Complexity: O(n).
func (p *Permutation) Inverse() *Permutation {
	inv := make([]int, len(p.perm))
	for i, src := range p.perm {
		inv[src] = i
	}

	return &Permutation{perm: inv, swaps: p.swaps}
}

// ApplyVec returns P·v as a new slice (v is not mutated).
// Errors: ErrNilMatrix for nil v, ErrDimensionMismatch for len(v) != n.
// Complexity: O(n).
func (p *Permutation) ApplyVec(v []float64) ([]float64, error) {
	if err := ValidateVecLen(v, len(p.perm)); err != nil {
		return nil, matrixErrorf(opPermApplyVec, err)
	}
	out := make([]float64, len(v))
	for i, src := range p.perm {
		out[i] = v[src]
	}

	return out, nil
}

// ApplyRows returns P·m as a new Dense: row i of the result is row perm[i] of m.
// MAIN DESCRIPTION:
//   - Row reordering without forming the dense P; m is not mutated.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (m.Rows() != n), accessor errors.
//
// Complexity:
//   - Time O(n*c), Space O(n*c).
func (p *Permutation) ApplyRows(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opPermApplyRows, err)
	}
	n, c := len(p.perm), m.Cols()
	if m.Rows() != n {
		return nil, matrixErrorf(opPermApplyRows, ErrDimensionMismatch)
	}
	out, err := NewDense(n, c)
	if err != nil {
		return nil, matrixErrorf(opPermApplyRows, err)
	}

	// Fast-path: contiguous row copies.
	if d, ok := m.(*Dense); ok {
		for i, src := range p.perm {
			copy(out.data[i*c:(i+1)*c], d.data[src*c:(src+1)*c])
		}

		return out, nil
	}

	var (
		j int
		v float64
	)
	for i, src := range p.perm {
		for j = 0; j < c; j++ {
			if v, err = m.At(src, j); err != nil {
				return nil, matrixErrorf(opPermApplyRows, fmt.Errorf("At(%d,%d): %w", src, j, err))
			}
			out.data[i*c+j] = v
		}
	}

	return out, nil
}

// Dense materializes P as an n×n 0/1 matrix with P[i][perm[i]] = 1.
// Complexity: O(n^2).
func (p *Permutation) Dense() *Dense {
	n := len(p.perm)
	d := &Dense{r: n, c: n, data: make([]float64, n*n), validateNaNInf: DefaultValidateNaNInf}
	for i, src := range p.perm {
		d.data[i*n+src] = 1
	}

	return d
}

// String renders the index slice, e.g. "[1 0 2]".
func (p *Permutation) String() string {
	var b strings.Builder
	b.WriteString("[")
	for i, v := range p.perm {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(fmt.Sprint(v))
	}
	b.WriteString("]")

	return b.String()
}

// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the matrix
// package. All kernels MUST return these sentinels and tests MUST check them
// via errors.Is. No kernel panics on user-triggered error conditions.
// Panics are reserved for programmer errors in option constructors.

package matrix

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs. Validators wrap with their own tag, kernels wrap
// once more with the operation tag (matrixErrorf); callers still match with
// errors.Is.
//
// ERROR PRIORITY (documented, enforced in tests):
// nil -> shape/dimension mismatch -> NaN/Inf -> singular pivot.

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set/SwapRows) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands:
	// a non-square input to a factorization, a right-hand side whose length
	// differs from n, or L/U/P of different orders passed to a solve.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required
	// by the numeric policy (Set, factorization and solve inputs).
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil Matrix, vector or permutation was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrSingular is returned when a pivot used as a divisor is zero or lies
	// within the pivot tolerance, during factorization or back substitution.
	ErrSingular = errors.New("matrix: singular matrix")

	// ErrBadPermutation marks an index slice or 0/1 matrix that is not a
	// permutation (repeated or out-of-range entries).
	ErrBadPermutation = errors.New("matrix: invalid permutation")
)

// ErrNonFiniteInput names the NaN/Inf input condition of factorization and
// solve. It aliases ErrNaNInf so errors.Is matches either name.
var ErrNonFiniteInput = ErrNaNInf

// ErrIndexOutOfBounds historically named the same condition as ErrOutOfRange.
var ErrIndexOutOfBounds = ErrOutOfRange // Deprecated: use ErrOutOfRange.

// SPDX-License-Identifier: MIT

// Package matrix implements dense LU factorization with partial pivoting
// and the triangular solves built on it.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked accessors and
//     explicit row primitives (SwapRows, SwapRowPrefix).
//   - LUP, which computes P·A = L·U with L unit lower triangular, U upper
//     triangular and P a compact Permutation. Pivoting can be switched off.
//   - SolveLU, which solves A·x = b from the factors by forward and backward
//     substitution; Solve, Det and Inverse compose the two.
//   - Mul, Sub, MatVec, AllClose and the entry norms used to check a
//     factorization (‖P·A − L·U‖) or a solution (‖A·x − b‖).
//
// Numeric policy is set with functional options (WithPivotTolerance,
// WithNoValidateNaNInf, WithEpsilon). Failures are reported through the
// sentinels in errors.go and matched with errors.Is.
//
// Kernels take a flat-slice fast path for *Dense and fall back to At/Set for
// any other Matrix implementation; both paths give identical results.
package matrix

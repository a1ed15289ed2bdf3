// Package lvlu is a dense LU factorization toolkit: Gaussian elimination with
// partial pivoting, triangular solves, and a benchmark harness that checks
// the results against a reference solver.
//
// Layout:
//
//	matrix/       - Dense, Permutation, LUP, SolveLU and the Solve/Det/Inverse facades
//	mmio/         - Matrix Market (.mtx) reader producing *matrix.Dense
//	bench/        - config, matrix list, timing runner, reference solver, metrics
//	cmd/lubench/  - command line front end (run, solve)
//	examples/     - runnable usage sample
//
// Quick example:
//
//	A, _ := matrix.NewDenseFromRows([][]float64{{2, 1}, {4, 3}})
//	L, U, P, err := matrix.LUP(A, true)
//	if err != nil {
//		// errors.Is(err, matrix.ErrSingular) for singular input
//	}
//	x, _ := matrix.SolveLU(L, U, P, []float64{1, 1}) // x = [1, -1]
//
// The matrix package is pure computation: it never logs, never retains state
// between calls and never mutates its inputs.
package lvlu

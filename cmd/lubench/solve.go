// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/lvlu/bench"
	"github.com/katalvlaran/lvlu/matrix"
	"github.com/katalvlaran/lvlu/mmio"
	"gopkg.in/urfave/cli.v1"
)

var (
	errMissingFile  = errors.New("lubench: solve needs a Matrix Market file")
	errBadTolerance = errors.New("lubench: pivot tolerance must be finite and non-negative")
)

var SolveCommand = cli.Command{
	Action:    solveAction,
	Name:      "solve",
	Usage:     "factorizes one matrix and solves A·x = ones",
	ArgsUsage: "<file.mtx>",
	Flags: []cli.Flag{
		NoPermuteFlag,
		PivotToleranceFlag,
	},
	Description: `
The lubench solve command requires one argument: the Matrix Market file to
load. It prints the order of the matrix, the residual ‖A·x − b‖₂ and the
relative error against gonum's LU solver.
`,
}

func solveAction(ctx *cli.Context) error {
	path := ctx.Args().First()
	if path == "" {
		return errMissingFile
	}
	tol := matrix.DefaultPivotTolerance
	if ctx.IsSet(PivotToleranceFlag.Name) {
		tol = ctx.Float64(PivotToleranceFlag.Name)
		if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
			return fmt.Errorf("%w: %g", errBadTolerance, tol)
		}
	}
	opts := []matrix.Option{matrix.WithPivotTolerance(tol)}

	A, err := mmio.ReadFile(path, opts...)
	if err != nil {
		return err
	}
	f, err := matrix.Factorize(A, !ctx.Bool(NoPermuteFlag.Name), opts...)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	b := make([]float64, f.Order())
	for i := range b {
		b[i] = 1
	}
	x, err := f.Solve(b, opts...)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	res, err := bench.Residual(A, x, b)
	if err != nil {
		return err
	}
	ref, err := bench.ReferenceSolve(A, b)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	rel, err := bench.RelativeError(x, ref)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(ctx.App.Writer, "Matrix: %s. Order: %d. Residual: %.2e. Relative error: %.2e\n",
		path, f.Order(), res, rel)

	return err
}

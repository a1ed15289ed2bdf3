// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/katalvlaran/lvlu/bench"
	"github.com/katalvlaran/lvlu/internal/logging"
	"gopkg.in/urfave/cli.v1"
)

var errMatricesFailed = errors.New("lubench: some matrices failed")

var (
	ConfigFlag = cli.StringFlag{
		Name:  "config",
		Usage: "YAML configuration file",
	}
	DirFlag = cli.StringFlag{
		Name:  "dir",
		Usage: "directory holding the matrix list and the matrices/ folder",
	}
	MatricesFlag = cli.StringFlag{
		Name:  "matrices",
		Usage: "matrix list file, relative to --dir",
	}
	RunsFlag = cli.IntFlag{
		Name:  "runs",
		Usage: "factorizations per matrix",
		Value: 1,
	}
	WorkersFlag = cli.IntFlag{
		Name:  "workers",
		Usage: "matrices benchmarked concurrently",
		Value: 1,
	}
	NoPermuteFlag = cli.BoolFlag{
		Name:  "no-permute",
		Usage: "disable partial pivoting",
	}
	PivotToleranceFlag = cli.Float64Flag{
		Name:  "pivot-tolerance",
		Usage: "relative pivot tolerance; 0 flags only exact zeros",
	}
	FailFastFlag = cli.BoolFlag{
		Name:  "fail-fast",
		Usage: "stop at the first failing matrix",
	}
	MetricsFileFlag = cli.StringFlag{
		Name:  "metrics-file",
		Usage: "write Prometheus metrics in textfile format to this path",
	}
	LogLevelFlag = cli.StringFlag{
		Name:  "log-level",
		Usage: "debug, info, warn or error",
	}
	LogFileFlag = cli.StringFlag{
		Name:  "log-file",
		Usage: "rotated log file; stderr when empty",
	}
)

var runFlags = []cli.Flag{
	ConfigFlag,
	DirFlag,
	MatricesFlag,
	RunsFlag,
	WorkersFlag,
	NoPermuteFlag,
	PivotToleranceFlag,
	FailFastFlag,
	MetricsFileFlag,
	LogLevelFlag,
	LogFileFlag,
}

var RunCommand = cli.Command{
	Action: runAction,
	Name:   "run",
	Usage:  "benchmarks every matrix of the list",
	Flags:  runFlags,
	Description: `
The lubench run command reads the matrix list (matrices.yaml by default)
from --dir, loads each <dir>/matrices/<name> Matrix Market file, factorizes
it --runs times and solves A·x = ones once against gonum's LU solver.

The average factorization time and the relative error of every matrix are
printed as a summary. The exit status is non-zero if any matrix failed.
`,
}

// flagOverrides maps explicitly set flags onto configuration keys.
func flagOverrides(ctx *cli.Context) map[string]any {
	o := make(map[string]any)
	if ctx.IsSet(DirFlag.Name) {
		o["dir"] = ctx.String(DirFlag.Name)
	}
	if ctx.IsSet(MatricesFlag.Name) {
		o["matrices_file"] = ctx.String(MatricesFlag.Name)
	}
	if ctx.IsSet(RunsFlag.Name) {
		o["runs"] = ctx.Int(RunsFlag.Name)
	}
	if ctx.IsSet(WorkersFlag.Name) {
		o["workers"] = ctx.Int(WorkersFlag.Name)
	}
	if ctx.Bool(NoPermuteFlag.Name) {
		o["permute"] = false
	}
	if ctx.IsSet(PivotToleranceFlag.Name) {
		o["pivot_tolerance"] = ctx.Float64(PivotToleranceFlag.Name)
	}
	if ctx.Bool(FailFastFlag.Name) {
		o["fail_fast"] = true
	}
	if ctx.IsSet(MetricsFileFlag.Name) {
		o["metrics_file"] = ctx.String(MetricsFileFlag.Name)
	}
	if ctx.IsSet(LogLevelFlag.Name) {
		o["log.level"] = ctx.String(LogLevelFlag.Name)
	}
	if ctx.IsSet(LogFileFlag.Name) {
		o["log.file"] = ctx.String(LogFileFlag.Name)
	}

	return o
}

func runAction(ctx *cli.Context) error {
	cfg, err := bench.LoadConfig(ctx.String(ConfigFlag.Name), flagOverrides(ctx))
	if err != nil {
		return err
	}
	logger := logging.New(cfg.Logging("lubench", "bench"))
	metrics := bench.NewMetrics()

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner, err := bench.NewRunner(cfg, logger, metrics)
	if err != nil {
		return err
	}
	results, runErr := runner.Run(sigCtx)
	if results == nil && runErr != nil {
		return runErr
	}
	if err = bench.WriteSummary(ctx.App.Writer, results); err != nil {
		return err
	}
	if cfg.MetricsFile != "" {
		if err = metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			return fmt.Errorf("lubench: metrics: %w", err)
		}
	}
	if runErr != nil {
		return runErr
	}
	if n := bench.Failed(results); n > 0 {
		return fmt.Errorf("%w: %d of %d", errMatricesFailed, n, len(results))
	}

	return nil
}

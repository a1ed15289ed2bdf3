// SPDX-License-Identifier: MIT

// Package bench times the LUP factorizer on a list of Matrix Market files
// and checks each solution against gonum's LU solver.
//
// Workflow per matrix:
//   - read <dir>/<matrix_dir>/<name> with mmio into a dense matrix A;
//   - build b = ones(n);
//   - factorize A runs times, timing every call;
//   - on the first run solve with SolveLU, solve again with the reference
//     solver and record ‖x − x_ref‖₂ / ‖x_ref‖₂.
//
// Matrices run on up to Config.Workers goroutines; results keep list order.
package bench

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/katalvlaran/lvlu/internal/logging"
	"github.com/katalvlaran/lvlu/matrix"
	"github.com/katalvlaran/lvlu/mmio"
	"golang.org/x/sync/errgroup"
)

// Performance accumulates the measurements of one matrix.
type Performance struct {
	Time          float64 // total seconds over all runs
	RelativeError float64
}

// Result is the outcome for one list entry.
type Result struct {
	Name string
	Rows int
	Runs int // completed factorizations
	Perf Performance
	Err  error
}

// AverageTime is Perf.Time divided by the completed runs.
func (r Result) AverageTime() float64 {
	if r.Runs == 0 {
		return 0
	}

	return r.Perf.Time / float64(r.Runs)
}

// Failed reports how many results carry an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}

	return n
}

// Runner executes a benchmark described by a Config.
type Runner struct {
	cfg     Config
	log     *slog.Logger
	metrics *Metrics
}

// NewRunner validates cfg and returns a Runner. A nil logger discards output
// and nil metrics record nothing.
func NewRunner(cfg Config, logger *slog.Logger, metrics *Metrics) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Discard()
	}

	return &Runner{cfg: cfg, log: logger, metrics: metrics}, nil
}

// Run benchmarks every matrix of the configured list.
//
// A failing matrix is recorded in its Result and does not stop the others,
// unless FailFast is set; then the first failure cancels pending matrices and
// is returned. Cancellation of ctx is returned as well. Results are always
// returned in list order once the list itself could be loaded.
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	names, err := LoadMatrixList(r.cfg.MatricesPath())
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			results[i] = r.runOne(gctx, i, len(names), name)
			if err := results[i].Err; err != nil && (r.cfg.FailFast || gctx.Err() != nil) {
				return err
			}

			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return results, err
	}

	return results, ctx.Err()
}

func (r *Runner) runOne(ctx context.Context, idx, total int, name string) Result {
	res := Result{Name: name}
	log := r.log.With(slog.String("matrix", name))
	fail := func(err error) Result {
		res.Err = fmt.Errorf("%s: %w", name, err)
		reason := FailureReason(err)
		r.metrics.recordFailure(name, reason)
		log.Error("matrix failed", slog.String("reason", reason), slog.Any("error", err))

		return res
	}
	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	log.Info("processing matrix", slog.Int("index", idx+1), slog.Int("total", total))
	opts := r.cfg.MatrixOptions()

	A, err := mmio.ReadFile(r.cfg.MatrixPath(name), opts...)
	if err != nil {
		return fail(err)
	}
	res.Rows = A.Rows()
	b := make([]float64, A.Rows())
	for i := range b {
		b[i] = 1
	}

	for run := 0; run < r.cfg.Runs; run++ {
		if err = ctx.Err(); err != nil {
			return fail(err)
		}
		start := time.Now()
		L, U, P, err := matrix.LUP(A, r.cfg.Permute, opts...)
		elapsed := time.Since(start)
		if err != nil {
			return fail(err)
		}
		res.Perf.Time += elapsed.Seconds()
		res.Runs++
		r.metrics.observeRun(name, elapsed)
		log.Debug("factorized", slog.Int("run", run+1), slog.Duration("elapsed", elapsed))

		if run > 0 {
			continue
		}
		x, err := matrix.SolveLU(L, U, P, b, opts...)
		if err != nil {
			return fail(err)
		}
		ref, err := ReferenceSolve(A, b)
		if err != nil {
			return fail(err)
		}
		if res.Perf.RelativeError, err = RelativeError(x, ref); err != nil {
			return fail(err)
		}
		r.metrics.setRelativeError(name, res.Perf.RelativeError)
	}

	log.Info("matrix done",
		slog.Int("n", res.Rows),
		slog.Float64("average_seconds", res.AverageTime()),
		slog.Float64("relative_error", res.Perf.RelativeError),
	)

	return res
}

// SPDX-License-Identifier: MIT

package bench_test

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/katalvlaran/lvlu/bench"
	"github.com/katalvlaran/lvlu/matrix"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := bench.LoadConfig("", nil)
	require.NoError(t, err)
	require.Equal(t, ".", cfg.Dir)
	require.Equal(t, "matrices.yaml", cfg.MatricesFile)
	require.Equal(t, "matrices", cfg.MatrixDir)
	require.Equal(t, 1, cfg.Runs)
	require.Equal(t, 1, cfg.Workers)
	require.True(t, cfg.Permute)
	require.Equal(t, matrix.DefaultPivotTolerance, cfg.PivotTolerance)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "json", cfg.Log.Format)
}

func TestLoadConfig_FileEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "lubench.yaml", `
dir: /data/hw
runs: 5
workers: 2
permute: false
log:
  level: debug
  file: /tmp/lubench.log
`)
	t.Setenv("LUBENCH_WORKERS", "4")
	t.Setenv("LUBENCH_LOG_FORMAT", "text")

	cfg, err := bench.LoadConfig(path, map[string]any{"runs": 7})
	require.NoError(t, err)
	require.Equal(t, "/data/hw", cfg.Dir)
	require.Equal(t, 7, cfg.Runs, "overrides win over the file")
	require.Equal(t, 4, cfg.Workers, "environment wins over the file")
	require.False(t, cfg.Permute)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "text", cfg.Log.Format)
	require.Equal(t, "/tmp/lubench.log", cfg.Log.File)

	lc := cfg.Logging("lubench", "bench")
	require.Equal(t, "lubench", lc.Service)
	require.Equal(t, "debug", lc.Level)
	require.Equal(t, 100, lc.MaxSize)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]any
	}{
		{"zero runs", map[string]any{"runs": 0}},
		{"zero workers", map[string]any{"workers": 0}},
		{"negative tolerance", map[string]any{"pivot_tolerance": -1.0}},
		{"infinite tolerance", map[string]any{"pivot_tolerance": math.Inf(1)}},
		{"nan tolerance", map[string]any{"pivot_tolerance": math.NaN()}},
		{"unknown level", map[string]any{"log.level": "trace"}},
		{"empty dir", map[string]any{"dir": ""}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := bench.LoadConfig("", tc.overrides)
			require.ErrorIs(t, err, bench.ErrInvalidConfig)
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
		})
	}

	_, err := bench.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)
}

func TestLoadConfig_NonFiniteToleranceFromEnv(t *testing.T) {
	t.Setenv("LUBENCH_PIVOT_TOLERANCE", "Inf")
	_, err := bench.LoadConfig("", nil)
	require.ErrorIs(t, err, bench.ErrInvalidConfig)

	path := writeFile(t, t.TempDir(), "lubench.yaml", "pivot_tolerance: .nan\n")
	t.Setenv("LUBENCH_PIVOT_TOLERANCE", "1e-12")
	cfg, err := bench.LoadConfig(path, nil)
	require.NoError(t, err, "environment wins over the file")
	require.Equal(t, 1e-12, cfg.PivotTolerance)

	_, err = bench.LoadConfig(path, map[string]any{"pivot_tolerance": math.Inf(-1)})
	require.ErrorIs(t, err, bench.ErrInvalidConfig)
}

func TestConfigPaths(t *testing.T) {
	cfg := bench.Config{Dir: "/hw", MatricesFile: "list.yaml", MatrixDir: "matrices"}
	require.Equal(t, filepath.Join("/hw", "list.yaml"), cfg.MatricesPath())
	require.Equal(t, filepath.Join("/hw", "matrices", "a.mtx"), cfg.MatrixPath("a.mtx"))
	require.Equal(t, "/abs/a.mtx", cfg.MatrixPath("/abs/a.mtx"))

	cfg.MatricesFile = "/etc/list.yaml"
	require.Equal(t, "/etc/list.yaml", cfg.MatricesPath())
}

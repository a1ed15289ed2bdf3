// SPDX-License-Identifier: MIT

package bench

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/katalvlaran/lvlu/internal/logging"
	"github.com/katalvlaran/lvlu/matrix"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides, e.g. LUBENCH_RUNS or
// LUBENCH_LOG_LEVEL for the nested log.level key.
const EnvPrefix = "LUBENCH"

// Config drives one benchmark run.
type Config struct {
	Dir            string    `mapstructure:"dir"             validate:"required"`
	MatricesFile   string    `mapstructure:"matrices_file"   validate:"required"`
	MatrixDir      string    `mapstructure:"matrix_dir"`
	Runs           int       `mapstructure:"runs"            validate:"min=1"`
	Workers        int       `mapstructure:"workers"         validate:"min=1"`
	Permute        bool      `mapstructure:"permute"`
	PivotTolerance float64   `mapstructure:"pivot_tolerance" validate:"finite,gte=0"`
	FailFast       bool      `mapstructure:"fail_fast"`
	MetricsFile    string    `mapstructure:"metrics_file"`
	Log            LogConfig `mapstructure:"log"`
}

// LogConfig mirrors logging.Config for the harness.
type LogConfig struct {
	Level      string `mapstructure:"level"        validate:"oneof=debug info warn error"`
	Format     string `mapstructure:"format"       validate:"oneof=json text"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size_mb"  validate:"gte=0"`
	MaxBackups int    `mapstructure:"max_backups"  validate:"gte=0"`
	MaxAge     int    `mapstructure:"max_age_days" validate:"gte=0"`
	Compress   bool   `mapstructure:"compress"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("dir", ".")
	v.SetDefault("matrices_file", "matrices.yaml")
	v.SetDefault("matrix_dir", "matrices")
	v.SetDefault("runs", 1)
	v.SetDefault("workers", 1)
	v.SetDefault("permute", true)
	v.SetDefault("pivot_tolerance", matrix.DefaultPivotTolerance)
	v.SetDefault("fail_fast", false)
	v.SetDefault("metrics_file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
	v.SetDefault("log.compress", false)
}

// LoadConfig reads path (YAML, optional when empty), applies LUBENCH_*
// environment variables, then overrides (dotted keys, highest priority), and
// validates the result.
func LoadConfig(path string, overrides map[string]any) (Config, error) {
	var cfg Config

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("bench: read config %s: %w", path, err)
		}
	}
	for k, val := range overrides {
		v.Set(k, val)
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("bench: decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// configValidator knows the "finite" tag in addition to the built-in ones.
var configValidator = sync.OnceValue(func() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})
	if err != nil {
		panic(err)
	}

	return v
})

// Validate checks the struct tags of c. Failures wrap ErrInvalidConfig.
func (c Config) Validate() error {
	if err := configValidator().Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// MatricesPath resolves MatricesFile against Dir.
func (c Config) MatricesPath() string {
	if filepath.IsAbs(c.MatricesFile) {
		return c.MatricesFile
	}

	return filepath.Join(c.Dir, c.MatricesFile)
}

// MatrixPath resolves a list entry to <Dir>/<MatrixDir>/<name>.
func (c Config) MatrixPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}

	return filepath.Join(c.Dir, c.MatrixDir, name)
}

// MatrixOptions translates the numeric settings into matrix options.
func (c Config) MatrixOptions() []matrix.Option {
	return []matrix.Option{matrix.WithPivotTolerance(c.PivotTolerance)}
}

// Logging converts the log section into a logging.Config.
func (c Config) Logging(service, module string) logging.Config {
	return logging.Config{
		Service:    service,
		Module:     module,
		Level:      c.Log.Level,
		Format:     c.Log.Format,
		File:       c.Log.File,
		MaxSize:    c.Log.MaxSize,
		MaxBackups: c.Log.MaxBackups,
		MaxAge:     c.Log.MaxAge,
		Compress:   c.Log.Compress,
	}
}

package qsim

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/viper"
	"github.com/theapemachine/errnie"
)

const (
	defaultTolerance      = 1e-9
	defaultMaxMatrixBytes = int64(1 << 30)
)

/*
Config holds the defaults an Engine applies when a caller does not pass an
explicit value. Tolerance is the only numeric tolerance used anywhere in the
engine; nothing reads a package-level tolerance.
*/
type Config struct {
	MaxConcurrency int
	Tolerance      float64
	Strategy       StrategyKind
	MaxMatrixBytes int64
}

func NewConfig() *Config {
	return &Config{
		MaxConcurrency: runtime.NumCPU(),
		Tolerance:      defaultTolerance,
		Strategy:       Auto,
		MaxMatrixBytes: defaultMaxMatrixBytes,
	}
}

/*
LoadConfig reads configuration from the environment (QSIM_MAX_CONCURRENCY,
QSIM_TOLERANCE, QSIM_STRATEGY, QSIM_MAX_MATRIX_BYTES) and, when path is not
empty, from a config file in any format viper understands. Keys that are not
set keep their NewConfig defaults.
*/
func LoadConfig(path string) (*Config, error) {
	defaults := NewConfig()

	v := viper.New()
	v.SetEnvPrefix("qsim")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("max_concurrency", defaults.MaxConcurrency)
	v.SetDefault("tolerance", defaults.Tolerance)
	v.SetDefault("strategy", defaults.Strategy.String())
	v.SetDefault("max_matrix_bytes", defaults.MaxMatrixBytes)

	if path != "" {
		v.SetConfigFile(path)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	strategy, err := ParseStrategy(v.GetString("strategy"))
	if err != nil {
		return nil, err
	}

	config := &Config{
		MaxConcurrency: v.GetInt("max_concurrency"),
		Tolerance:      v.GetFloat64("tolerance"),
		Strategy:       strategy,
		MaxMatrixBytes: v.GetInt64("max_matrix_bytes"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	errnie.Info(
		"LoadConfig - maxConcurrency %d, tolerance %g, strategy %s, maxMatrixBytes %d",
		config.MaxConcurrency,
		config.Tolerance,
		config.Strategy,
		config.MaxMatrixBytes,
	)

	return config, nil
}

// Validate rejects configurations the engine cannot run with.
func (c *Config) Validate() error {
	if c.MaxConcurrency <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidConcurrency, c.MaxConcurrency)
	}

	if c.Tolerance <= 0 {
		return fmt.Errorf("%w: got %g", ErrInvalidTolerance, c.Tolerance)
	}

	if c.MaxMatrixBytes <= 0 {
		return fmt.Errorf("%w: budget %d", ErrMatrixTooLarge, c.MaxMatrixBytes)
	}

	if _, err := StrategyFor(c.Strategy); err != nil {
		return err
	}

	return nil
}

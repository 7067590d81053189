// Package config loads and validates the YAML configuration of the
// sortbench command.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/exascience/sortbench/bench"
	"github.com/exascience/sortbench/sort"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Session modes.
const (
	ModeSequential = "sequential"
	ModeParallel   = "parallel"
)

// Config is the complete sortbench configuration.
type Config struct {
	Benchmark     BenchmarkConfig     `yaml:"benchmark"`
	Data          DataConfig          `yaml:"data"`
	Sweep         SweepConfig         `yaml:"sweep"`
	Output        OutputConfig        `yaml:"output"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// BenchmarkConfig configures a benchmark session.
type BenchmarkConfig struct {
	Trials int `yaml:"trials"`

	// Algorithms lists the algorithms to run, in order. Empty means all.
	Algorithms []string `yaml:"algorithms"`

	Mode       string `yaml:"mode"`
	SampleName string `yaml:"sample_name"`

	// Timeout interrupts the session once elapsed. Zero disables it.
	Timeout time.Duration `yaml:"timeout"`
}

// DataConfig selects the benchmarked dataset. Input, when set, is read
// from file; otherwise Size records are generated from Seed.
type DataConfig struct {
	Input string `yaml:"input"`
	Size  int    `yaml:"size"`
	Seed  uint64 `yaml:"seed"`
}

// SweepConfig is the geometric size range of a scalability sweep.
type SweepConfig struct {
	Start  int `yaml:"start"`
	End    int `yaml:"end"`
	Factor int `yaml:"factor"`
}

// OutputConfig configures persisted output.
type OutputConfig struct {
	Dir string `yaml:"dir"`

	// SaveSorted persists the sorted copy of every completed algorithm.
	SaveSorted bool `yaml:"save_sorted"`
}

// ObservabilityConfig configures logging and metrics.
type ObservabilityConfig struct {
	LogLevel string `yaml:"log_level"`

	// Verbose logs every compare, swap and partition step.
	Verbose bool `yaml:"verbose"`

	// MetricsAddr serves Prometheus metrics when not empty.
	MetricsAddr string `yaml:"metrics_addr"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Benchmark: BenchmarkConfig{
			Trials:     bench.DefaultTrials,
			Mode:       ModeParallel,
			SampleName: "sample",
		},
		Data: DataConfig{
			Size: 10000,
			Seed: 1,
		},
		Sweep: SweepConfig{
			Start:  100,
			End:    100000,
			Factor: 10,
		},
		Output: OutputConfig{
			Dir:        "output",
			SaveSorted: true,
		},
		Observability: ObservabilityConfig{
			LogLevel: "info",
		},
	}
}

// Load reads the YAML file at path over the defaults and validates the
// result. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}
	return cfg, cfg.Validate()
}

// Validate reports every invalid setting, joined into one error.
func (c *Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if c.Benchmark.Trials < 1 {
		invalid("trials must be at least 1, got %d", c.Benchmark.Trials)
	}
	seen := make(map[string]bool, len(c.Benchmark.Algorithms))
	for _, name := range c.Benchmark.Algorithms {
		alg, err := sort.ByName(name)
		if err != nil {
			invalid("%v", err)
			continue
		}
		if seen[alg.Name()] {
			invalid("algorithm %s listed more than once", alg.Name())
		}
		seen[alg.Name()] = true
	}
	switch c.Benchmark.Mode {
	case ModeSequential, ModeParallel:
	default:
		invalid("mode must be %q or %q, got %q", ModeSequential, ModeParallel, c.Benchmark.Mode)
	}
	if c.Benchmark.SampleName == "" {
		invalid("sample_name must not be empty")
	}
	if c.Benchmark.Timeout < 0 {
		invalid("timeout must not be negative")
	}
	if c.Data.Input == "" && c.Data.Size < 1 {
		invalid("size must be at least 1 when no input file is given, got %d", c.Data.Size)
	}
	if c.Sweep.Start < 1 || c.Sweep.End < c.Sweep.Start {
		invalid("sweep range [%d, %d] is empty", c.Sweep.Start, c.Sweep.End)
	}
	if c.Sweep.Factor < 2 {
		invalid("sweep factor must be at least 2, got %d", c.Sweep.Factor)
	}
	if _, err := c.Level(); err != nil {
		invalid("log_level: %v", err)
	}
	return errors.Join(errs...)
}

// Level parses the configured log level.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(c.Observability.LogLevel))
	return level, err
}

// Algorithms resolves the configured algorithm names. Step logging
// goes to stepLog when Verbose is set.
func (c *Config) Algorithms(stepLog *slog.Logger) ([]sort.Algorithm, error) {
	var opts []sort.Option
	if c.Observability.Verbose && stepLog != nil {
		opts = append(opts, sort.WithStepLog(stepLog))
	}
	if len(c.Benchmark.Algorithms) == 0 {
		return sort.All(opts...), nil
	}
	algs := make([]sort.Algorithm, 0, len(c.Benchmark.Algorithms))
	for _, name := range c.Benchmark.Algorithms {
		alg, err := sort.ByName(name, opts...)
		if err != nil {
			return nil, err
		}
		algs = append(algs, alg)
	}
	return algs, nil
}

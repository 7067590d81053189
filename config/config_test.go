package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exascience/sortbench/sort"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sortbench.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 10, cfg.Benchmark.Trials)
	assert.Equal(t, ModeParallel, cfg.Benchmark.Mode)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
benchmark:
  trials: 3
  algorithms: [mergesort, TimSort]
  mode: sequential
  timeout: 90s
data:
  seed: 42
sweep:
  end: 1000
observability:
  log_level: debug
  verbose: true
  metrics_addr: ":9090"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Benchmark.Trials)
	assert.Equal(t, ModeSequential, cfg.Benchmark.Mode)
	assert.Equal(t, 90*time.Second, cfg.Benchmark.Timeout)
	assert.Equal(t, uint64(42), cfg.Data.Seed)
	assert.Equal(t, 10000, cfg.Data.Size, "unset values keep their defaults")
	assert.Equal(t, 100, cfg.Sweep.Start)
	assert.Equal(t, 1000, cfg.Sweep.End)
	assert.Equal(t, ":9090", cfg.Observability.MetricsAddr)

	algs, err := cfg.Algorithms(slog.Default())
	require.NoError(t, err)
	require.Len(t, algs, 2)
	assert.Equal(t, "MergeSort", algs[0].Name())
	assert.Equal(t, "TimSort", algs[1].Name())
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	algs, err := cfg.Algorithms(nil)
	require.NoError(t, err)
	assert.Len(t, algs, len(sort.Names))
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidConfig))

	_, err = Load(writeConfig(t, "benchmark: [unclosed"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero trials", func(c *Config) { c.Benchmark.Trials = 0 }},
		{"unknown algorithm", func(c *Config) { c.Benchmark.Algorithms = []string{"BogoSort"} }},
		{"duplicate algorithm", func(c *Config) { c.Benchmark.Algorithms = []string{"QuickSort", "quicksort"} }},
		{"unknown mode", func(c *Config) { c.Benchmark.Mode = "distributed" }},
		{"empty sample name", func(c *Config) { c.Benchmark.SampleName = "" }},
		{"negative timeout", func(c *Config) { c.Benchmark.Timeout = -time.Second }},
		{"no data", func(c *Config) { c.Data.Size = 0 }},
		{"empty sweep", func(c *Config) { c.Sweep.End = 10 }},
		{"sweep factor", func(c *Config) { c.Sweep.Factor = 1 }},
		{"log level", func(c *Config) { c.Observability.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	cfg := Default()
	cfg.Benchmark.Trials = 0
	cfg.Benchmark.Mode = ""
	err := cfg.Validate()
	require.Error(t, err)

	var joined interface{ Unwrap() []error }
	require.True(t, errors.As(err, &joined))
	assert.Len(t, joined.Unwrap(), 2)
}

func TestSizeOptionalWithInput(t *testing.T) {
	cfg := Default()
	cfg.Data.Size = 0
	cfg.Data.Input = "forest.txt"
	assert.NoError(t, cfg.Validate())
}

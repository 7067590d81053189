package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exascience/sortbench/config"
	"github.com/exascience/sortbench/record"
	"github.com/exascience/sortbench/sort"
)

func init() {
	color.NoColor = true
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forest.txt")
	out, err := execute(t, "generate", path, "--size", "250", "--seed", "9")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 250 records to "+path)

	data, err := record.LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, data, 250)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "forest.txt")
	require.NoError(t, record.SaveFile(input, record.NewRandomGenerator(2).Generate(400)))

	output := filepath.Join(dir, "out")
	out, err := execute(t, "run",
		"--input", input,
		"--output", output,
		"--sample", "forest",
		"--trials", "2",
		"--mode", config.ModeSequential,
		"--algorithms", "MergeSort,TimSort")
	require.NoError(t, err)
	assert.Contains(t, out, "Best algorithm: ")
	assert.Contains(t, out, "MergeSort Progress: [==========] 100% - done")
	assert.Contains(t, out, "Performance report saved to ")

	entries, err := os.ReadDir(output)
	require.NoError(t, err)
	var sorted, reports int
	for _, e := range entries {
		switch {
		case strings.HasPrefix(e.Name(), "forest_report_"):
			reports++
		case strings.Contains(e.Name(), "_sorted_"):
			sorted++
		}
	}
	assert.Equal(t, 2, sorted)
	assert.Equal(t, 1, reports)
}

func TestRunWithoutSaving(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out")
	_, err := execute(t, "run", "--size", "100", "--trials", "1", "--no-save", "--output", output)
	require.NoError(t, err)

	entries, err := os.ReadDir(output)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "sample_report_"))
}

func TestSweep(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out")
	out, err := execute(t, "sweep", "--start", "10", "--end", "100", "--trials", "1", "--output", output)
	require.NoError(t, err)
	assert.Contains(t, out, "10 records: ")
	assert.Contains(t, out, "100 records: ")
	assert.Contains(t, out, "Scalability report saved to ")
}

func TestInvalidFlags(t *testing.T) {
	_, err := execute(t, "run", "--mode", "distributed")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = execute(t, "sweep", "--factor", "1")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = execute(t, "generate")
	assert.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "sortbench.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
benchmark:
  trials: 1
  algorithms: [HeapSort]
data:
  size: 50
output:
  dir: `+filepath.Join(dir, "out")+`
  save_sorted: false
`), 0o644))

	out, err := execute(t, "run", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Best algorithm: HeapSort")
}

func TestCompare(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.txt")
	second := filepath.Join(dir, "second.txt")
	require.NoError(t, record.SaveFile(first, record.NewRandomGenerator(1).Generate(300)))
	require.NoError(t, record.SaveFile(second, record.NewRandomGenerator(2).Generate(600)))

	output := filepath.Join(dir, "out")
	out, err := execute(t, "compare", first, second, "--algorithm", "heapsort", "--output", output)
	require.NoError(t, err)
	assert.Contains(t, out, "Algorithm: HeapSort")
	assert.Contains(t, out, "Records: 600")
	assert.Contains(t, out, "Comparison difference: ")
	assert.Contains(t, out, "Detailed report saved to ")

	entries, err := os.ReadDir(output)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "HeapSort_report_"))

	_, err = execute(t, "compare", first, second, "--algorithm", "BogoSort")
	assert.ErrorIs(t, err, sort.ErrUnknownAlgorithm)
}

func TestRunRejectsDuplicateAlgorithms(t *testing.T) {
	_, err := execute(t, "run", "--size", "10", "--algorithms", "QuickSort,quicksort")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

package persist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exascience/sortbench/bench"
	"github.com/exascience/sortbench/cancel"
	"github.com/exascience/sortbench/record"
)

func fixedDir(t *testing.T) *Dir {
	t.Helper()
	d := NewDir(filepath.Join(t.TempDir(), "out"))
	d.Now = func() time.Time { return time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC) }
	return d
}

func TestSave(t *testing.T) {
	d := fixedDir(t)
	data := record.Dataset{{Key: 17, Status: record.Deforested}, {Key: 31, Status: record.Preserved}}

	path, err := d.Save("forest", "MergeSort", data)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(d.Path, "forest_MergeSort_sorted_20240309_140507.txt"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "17:3\n31:1\n", string(content))

	loaded, err := record.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, loaded)
}

func TestSaveReport(t *testing.T) {
	d := fixedDir(t)
	path, err := d.SaveReport("forest_report", strings.NewReader("Performance Report\n"))
	require.NoError(t, err)
	assert.Equal(t, "forest_report_20240309_140507.txt", filepath.Base(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Performance Report\n", string(content))
}

func TestSaveFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	d := NewDir(filepath.Join(blocker, "out"))
	_, err := d.Save("s", "HeapSort", nil)
	assert.Error(t, err)
	_, err = d.SaveReport("r", strings.NewReader(""))
	assert.Error(t, err)
}

func TestSessionPersistence(t *testing.T) {
	d := fixedDir(t)
	m := bench.NewManager(record.NewRandomGenerator(11).Generate(300), cancel.NewToken(),
		bench.WithTrials(2),
		bench.WithSampleName("session"),
		bench.WithSink(d))
	state, err := m.RunParallel()
	require.NoError(t, err)
	assert.Equal(t, bench.Completed, state)

	for name, path := range m.SavedPaths() {
		assert.Equal(t, "session_"+name+"_sorted_20240309_140507.txt", filepath.Base(path))
	}
	path, err := m.SavePerformanceReport(d)
	require.NoError(t, err)
	assert.Equal(t, "session_report_20240309_140507.txt", filepath.Base(path))

	entries, err := os.ReadDir(d.Path)
	require.NoError(t, err)
	assert.Len(t, entries, len(m.Algorithms())+1)
}

package progress_test

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/exascience/sortbench/parallel"
	"github.com/exascience/sortbench/progress"
)

func init() {
	color.NoColor = true
}

func TestUpdateWritesOnChange(t *testing.T) {
	var buf bytes.Buffer
	r := progress.New(&buf)
	r.Reset("QuickSort")

	r.Update("QuickSort", 0, 10)
	assert.Empty(t, buf.String(), "0% after reset must not be written")

	r.Update("QuickSort", 1, 10)
	r.Update("QuickSort", 1, 10)
	assert.Equal(t, "\rQuickSort Progress: [=         ]  10%", buf.String())

	buf.Reset()
	r.Update("QuickSort", 10, 10)
	assert.Equal(t, "\rQuickSort Progress: [==========] 100% - done\n", buf.String())

	pct, ok := r.Percent("QuickSort")
	assert.True(t, ok)
	assert.Equal(t, 100, pct)
}

func TestResetClearsStaleEntries(t *testing.T) {
	var buf bytes.Buffer
	r := progress.New(&buf)
	r.Reset("HeapSort")
	r.Update("HeapSort", 10, 10)

	r.Reset("QuickSort")
	_, ok := r.Percent("HeapSort")
	assert.False(t, ok)

	buf.Reset()
	r.Update("HeapSort", 10, 10)
	assert.Contains(t, buf.String(), "100%", "a new session must report again")
}

func TestConcurrentLinesDoNotInterleave(t *testing.T) {
	var buf bytes.Buffer
	r := progress.New(&buf)
	names := []string{"A", "B", "C", "D"}
	r.Reset(names...)

	parallel.Range(0, len(names), len(names), func(low, high int) {
		for k := low; k < high; k++ {
			for i := 1; i <= 10; i++ {
				r.Update(names[k], i, 10)
			}
		}
	})

	line := regexp.MustCompile(`^[A-D] Progress: \[=* *\] +\d+%( - done\n)?$`)
	lines := strings.Split(buf.String(), "\r")
	for _, l := range lines[1:] {
		assert.Regexp(t, line, l)
	}
	assert.Equal(t, 4*10, len(lines)-1)
}

func TestNilReporter(t *testing.T) {
	var r *progress.Reporter
	r.Reset("x")
	r.Update("x", 1, 2)
	r.Finish()
	_, ok := r.Percent("x")
	assert.False(t, ok)
}

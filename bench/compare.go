package bench

import (
	"bytes"
	"fmt"
	"io"

	"github.com/exascience/sortbench/cancel"
	"github.com/exascience/sortbench/instrument"
	"github.com/exascience/sortbench/record"
	"github.com/exascience/sortbench/sort"
	"github.com/exascience/sortbench/speculative"
)

// A Run is a single timed sort of one dataset.
type Run struct {
	Algorithm   string
	Records     int
	Ms          float64
	Comparisons int64
	Swaps       int64

	// Sorted is the sorted copy of the dataset.
	Sorted record.Dataset
}

// Measure sorts a copy of data once with alg. It reports false when c
// was done before the sort finished; data itself is never modified.
func Measure(alg sort.Algorithm, data record.Dataset, c cancel.Canceler) (*Run, bool) {
	if c == nil {
		c = cancel.Never
	}
	if c.Done() {
		return nil, false
	}
	sorted := data.Clone()
	var stats instrument.Statistics
	ms := instrument.MeasureMs(func() { alg.Sort(sorted, c, &stats) })
	if c.Done() {
		return nil, false
	}
	return &Run{
		Algorithm:   alg.Name(),
		Records:     len(data),
		Ms:          ms,
		Comparisons: stats.Comparisons(),
		Swaps:       stats.Swaps(),
		Sorted:      sorted,
	}, true
}

// WriteTo renders the detailed report of the run.
func (r *Run) WriteTo(w io.Writer) (int64, error) {
	var b bytes.Buffer
	r.render(&b)
	return b.WriteTo(w)
}

func (r *Run) render(b *bytes.Buffer) {
	fmt.Fprintf(b, "Algorithm: %s\n", r.Algorithm)
	fmt.Fprintf(b, "Records: %d\n", r.Records)
	fmt.Fprintf(b, "Execution time: %.2f ms\n", r.Ms)
	fmt.Fprintf(b, "Comparisons: %d\n", r.Comparisons)
	fmt.Fprintf(b, "Swaps: %d\n", r.Swaps)
}

// A Comparison holds one algorithm run over two datasets and the
// absolute differences between the runs.
type Comparison struct {
	First, Second *Run

	TimeDiffMs     float64
	ComparisonDiff int64
	SwapDiff       int64

	// Sorted reports whether both outputs are ordered by key.
	Sorted bool
}

/*
Compare sorts a copy of first and then a copy of second with alg, and
reports the absolute differences in time, comparisons and swaps.

Compare returns Interrupted and a nil Comparison when c is done before
both sorts finished, and Completed otherwise.
*/
func Compare(alg sort.Algorithm, first, second record.Dataset, c cancel.Canceler) (*Comparison, State) {
	r1, ok := Measure(alg, first, c)
	if !ok {
		return nil, Interrupted
	}
	r2, ok := Measure(alg, second, c)
	if !ok {
		return nil, Interrupted
	}
	return &Comparison{
		First:          r1,
		Second:         r2,
		TimeDiffMs:     abs(r1.Ms - r2.Ms),
		ComparisonDiff: abs(r1.Comparisons - r2.Comparisons),
		SwapDiff:       abs(r1.Swaps - r2.Swaps),
		Sorted: speculative.And(
			func() bool { return sort.IsSorted(r1.Sorted) },
			func() bool { return sort.IsSorted(r2.Sorted) },
		),
	}, Completed
}

func abs[T int64 | float64](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

// WriteTo renders the comparison as text.
func (c *Comparison) WriteTo(w io.Writer) (int64, error) {
	var b bytes.Buffer
	fmt.Fprintln(&b, "===== Comparison Results =====")
	fmt.Fprintln(&b, "\nFirst dataset:")
	c.First.render(&b)
	fmt.Fprintln(&b, "\nSecond dataset:")
	c.Second.render(&b)
	fmt.Fprintln(&b, "\nDifference between the datasets:")
	fmt.Fprintf(&b, "Execution time difference: %.2f ms\n", c.TimeDiffMs)
	fmt.Fprintf(&b, "Comparison difference: %d\n", c.ComparisonDiff)
	fmt.Fprintf(&b, "Swap difference: %d\n", c.SwapDiff)
	if !c.Sorted {
		fmt.Fprintln(&b, "\nWarning: an output is not ordered by key.")
	}
	return b.WriteTo(w)
}

package sort

import (
	"github.com/exascience/sortbench/cancel"
	"github.com/exascience/sortbench/instrument"
	"github.com/exascience/sortbench/record"
)

// RunSize is the length of the runs TimSort insertion-sorts before
// merging.
const RunSize = 32

/*
TimSort splits the dataset into fixed runs of RunSize records,
insertion-sorts each run, and then merges adjacent runs bottom-up with
a doubling width until one run spans the dataset. It does not detect
natural runs.

TimSort is stable.
*/
type TimSort struct {
	opts options
}

// NewTimSort returns a TimSort.
func NewTimSort(opts ...Option) *TimSort {
	return &TimSort{buildOptions(opts)}
}

func (*TimSort) Name() string { return "TimSort" }
func (*TimSort) Stable() bool { return true }

// Sort implements Algorithm. Cancellation is checked before every run
// and before every merge.
func (s *TimSort) Sort(data record.Dataset, c cancel.Canceler, stats *instrument.Statistics) {
	n := len(data)
	if n < 2 {
		return
	}
	c = orNever(c)
	t := newTracer(s.opts, s.Name(), stats)
	for lo := 0; lo < n; lo += RunSize {
		if c.Done() {
			return
		}
		t.insertionSort(data, lo, min(lo+RunSize, n))
	}
	if n <= RunSize {
		return
	}
	aux := make(record.Dataset, n)
	for width := RunSize; width < n; width *= 2 {
		for lo := 0; lo < n-width; lo += 2 * width {
			if c.Done() {
				return
			}
			mid, hi := lo+width, min(lo+2*width, n)
			t.step("merge", "lo", lo, "mid", mid, "hi", hi)
			copy(aux[lo:hi], data[lo:hi])
			t.merge(aux, data, lo, mid, hi)
		}
	}
}

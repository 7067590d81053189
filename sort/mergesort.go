package sort

import (
	"github.com/exascience/sortbench/cancel"
	"github.com/exascience/sortbench/instrument"
	"github.com/exascience/sortbench/record"
)

/*
MergeSort is a top-down merge sort over a pair of buffers that swap
roles at every level, so no buffer is allocated after the first.

When the last record of the left half does not sort after the first
record of the right half, the halves are already in order and the
merge is replaced by a plain copy.

MergeSort is stable. Its recursion depth is bounded by the logarithm
of the dataset size.
*/
type MergeSort struct {
	opts options
}

// NewMergeSort returns a MergeSort.
func NewMergeSort(opts ...Option) *MergeSort {
	return &MergeSort{buildOptions(opts)}
}

func (*MergeSort) Name() string { return "MergeSort" }
func (*MergeSort) Stable() bool { return true }

// Sort implements Algorithm. Cancellation is checked at the start of
// every recursive call and before every merge.
func (m *MergeSort) Sort(data record.Dataset, c cancel.Canceler, stats *instrument.Statistics) {
	if len(data) < 2 {
		return
	}
	t := newTracer(m.opts, m.Name(), stats)
	aux := data.Clone()
	m.sort(t, orNever(c), aux, data, 0, len(data))
}

// sort leaves dst[lo:hi] sorted. On entry src[lo:hi] and dst[lo:hi]
// hold the same records; both still hold a permutation of them when
// the call returns, cancelled or not.
func (m *MergeSort) sort(t *tracer, c cancel.Canceler, src, dst record.Dataset, lo, hi int) {
	if c.Done() {
		return
	}
	if hi-lo <= InsertionThreshold {
		t.insertionSort(dst, lo, hi)
		return
	}
	mid := lo + (hi-lo)/2
	m.sort(t, c, dst, src, lo, mid)
	m.sort(t, c, dst, src, mid, hi)
	if c.Done() {
		return
	}
	if !t.less(src[mid], src[mid-1]) {
		copy(dst[lo:hi], src[lo:hi])
		return
	}
	t.step("merge", "lo", lo, "mid", mid, "hi", hi)
	t.merge(src, dst, lo, mid, hi)
}

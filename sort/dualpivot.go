package sort

import (
	"github.com/exascience/sortbench/cancel"
	"github.com/exascience/sortbench/instrument"
	"github.com/exascience/sortbench/record"
)

/*
DualPivotQuickSort partitions each range into three zones around two
pivots taken from the ends of the range: keys below the first pivot,
keys between the pivots, and keys above the second pivot. It recurses
into all three zones.

Like IntroSort, it carries a depth budget of 2*floor(log2 n) and
heap-sorts ranges that exhaust it.

DualPivotQuickSort is not stable.
*/
type DualPivotQuickSort struct {
	opts options
}

// NewDualPivotQuickSort returns a DualPivotQuickSort.
func NewDualPivotQuickSort(opts ...Option) *DualPivotQuickSort {
	return &DualPivotQuickSort{buildOptions(opts)}
}

func (*DualPivotQuickSort) Name() string { return "DualPivotQuickSort" }
func (*DualPivotQuickSort) Stable() bool { return false }

// Sort implements Algorithm. Cancellation is checked before every
// partition.
func (s *DualPivotQuickSort) Sort(data record.Dataset, c cancel.Canceler, stats *instrument.Statistics) {
	if len(data) < 2 {
		return
	}
	t := newTracer(s.opts, s.Name(), stats)
	s.sort(t, orNever(c), data, 0, len(data)-1, 2*floorLog2(len(data)))
}

func (s *DualPivotQuickSort) sort(t *tracer, c cancel.Canceler, data record.Dataset, lo, hi, depth int) {
	if hi <= lo || c.Done() {
		return
	}
	if hi-lo+1 <= InsertionThreshold {
		t.insertionSort(data, lo, hi+1)
		return
	}
	if depth == 0 {
		t.step("heap fallback", "lo", lo, "hi", hi)
		t.heapSort(c, data, lo, hi+1)
		return
	}
	lt, gt := t.dualPartition(data, lo, hi)
	s.sort(t, c, data, lo, lt-1, depth-1)
	s.sort(t, c, data, lt+1, gt-1, depth-1)
	s.sort(t, c, data, gt+1, hi, depth-1)
}

// dualPartition partitions data[lo..hi] and returns the final
// positions of the two pivots.
func (t *tracer) dualPartition(data record.Dataset, lo, hi int) (lt, gt int) {
	if t.less(data[hi], data[lo]) {
		t.swap(data, lo, hi)
	}
	p, q := data[lo], data[hi]
	t.step("partition", "lo", lo, "hi", hi, "pivot1", p.Key, "pivot2", q.Key)

	lt, gt = lo+1, hi-1
	for i := lo + 1; i <= gt; i++ {
		if t.less(data[i], p) {
			t.swap(data, i, lt)
			lt++
		} else if t.less(q, data[i]) {
			for i < gt && t.less(q, data[gt]) {
				gt--
			}
			t.swap(data, i, gt)
			gt--
			if t.less(data[i], p) {
				t.swap(data, i, lt)
				lt++
			}
		}
	}
	lt--
	gt++
	t.swap(data, lo, lt)
	t.swap(data, hi, gt)
	return lt, gt
}

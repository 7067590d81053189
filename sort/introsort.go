package sort

import (
	"github.com/exascience/sortbench/cancel"
	"github.com/exascience/sortbench/instrument"
	"github.com/exascience/sortbench/record"
)

/*
IntroSort is a quicksort with Lomuto partitioning around the last
record of a range. It starts with a depth budget of 2*floor(log2 n);
a range that exhausts the budget is heap-sorted instead, which bounds
the worst case to O(n log n).

IntroSort is not stable.
*/
type IntroSort struct {
	opts options
}

// NewIntroSort returns an IntroSort.
func NewIntroSort(opts ...Option) *IntroSort {
	return &IntroSort{buildOptions(opts)}
}

func (*IntroSort) Name() string { return "IntroSort" }
func (*IntroSort) Stable() bool { return false }

// Sort implements Algorithm. Cancellation is checked before every
// partition.
func (s *IntroSort) Sort(data record.Dataset, c cancel.Canceler, stats *instrument.Statistics) {
	if len(data) < 2 {
		return
	}
	t := newTracer(s.opts, s.Name(), stats)
	s.sort(t, orNever(c), data, 0, len(data)-1, 2*floorLog2(len(data)))
}

// sort handles data[lo..hi], hi inclusive. It recurses into the
// smaller side and loops on the larger one.
func (s *IntroSort) sort(t *tracer, c cancel.Canceler, data record.Dataset, lo, hi, depth int) {
	for hi-lo+1 > InsertionThreshold {
		if c.Done() {
			return
		}
		if depth == 0 {
			t.step("heap fallback", "lo", lo, "hi", hi)
			t.heapSort(c, data, lo, hi+1)
			return
		}
		depth--
		p := t.lomutoPartition(data, lo, hi)
		if p-lo < hi-p {
			s.sort(t, c, data, lo, p-1, depth)
			lo = p + 1
		} else {
			s.sort(t, c, data, p+1, hi, depth)
			hi = p - 1
		}
	}
	if hi > lo && !c.Done() {
		t.insertionSort(data, lo, hi+1)
	}
}

// lomutoPartition partitions data[lo..hi] around data[hi] and returns
// the final pivot index.
func (t *tracer) lomutoPartition(data record.Dataset, lo, hi int) int {
	pivot := data[hi]
	t.step("partition", "lo", lo, "hi", hi, "pivot", pivot.Key)
	i := lo
	for j := lo; j < hi; j++ {
		if t.less(data[j], pivot) {
			t.swap(data, i, j)
			i++
		}
	}
	t.swap(data, i, hi)
	return i
}

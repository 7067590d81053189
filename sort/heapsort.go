package sort

import (
	"github.com/exascience/sortbench/cancel"
	"github.com/exascience/sortbench/instrument"
	"github.com/exascience/sortbench/record"
)

// HeapSort builds a binary max-heap by sifting down from the middle,
// then repeatedly moves the maximum behind the heap. It is not stable.
type HeapSort struct {
	opts options
}

// NewHeapSort returns a HeapSort.
func NewHeapSort(opts ...Option) *HeapSort {
	return &HeapSort{buildOptions(opts)}
}

func (*HeapSort) Name() string { return "HeapSort" }
func (*HeapSort) Stable() bool { return false }

// Sort implements Algorithm. Cancellation is checked before every sift.
func (h *HeapSort) Sort(data record.Dataset, c cancel.Canceler, stats *instrument.Statistics) {
	if len(data) < 2 {
		return
	}
	t := newTracer(h.opts, h.Name(), stats)
	t.heapSort(orNever(c), data, 0, len(data))
}

// heapSort sorts data[lo:hi].
func (t *tracer) heapSort(c cancel.Canceler, data record.Dataset, lo, hi int) {
	n := hi - lo
	for root := n/2 - 1; root >= 0; root-- {
		if c.Done() {
			return
		}
		t.siftDown(data, lo, root, n)
	}
	for end := n - 1; end > 0; end-- {
		if c.Done() {
			return
		}
		t.swap(data, lo, lo+end)
		t.siftDown(data, lo, 0, end)
	}
}

// siftDown restores the heap property below root in the heap of n
// records starting at data[lo]. Both children are compared whenever
// they exist.
func (t *tracer) siftDown(data record.Dataset, lo, root, n int) {
	for {
		largest := root
		left, right := 2*root+1, 2*root+2
		if left < n && t.less(data[lo+largest], data[lo+left]) {
			largest = left
		}
		if right < n && t.less(data[lo+largest], data[lo+right]) {
			largest = right
		}
		if largest == root {
			return
		}
		t.swap(data, lo+root, lo+largest)
		root = largest
	}
}

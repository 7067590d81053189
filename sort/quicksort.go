package sort

import (
	"github.com/exascience/sortbench/cancel"
	"github.com/exascience/sortbench/instrument"
	"github.com/exascience/sortbench/record"
)

/*
QuickSort is an iterative quicksort. The pivot is the median of the
first, middle and last record of a range, and partitioning is done
Hoare-style around that median. Pending ranges live on an explicit
stack; the larger side is pushed first so that the smaller side is
processed next, which keeps the stack logarithmic.

QuickSort is not stable.
*/
type QuickSort struct {
	opts options
}

// NewQuickSort returns a QuickSort.
func NewQuickSort(opts ...Option) *QuickSort {
	return &QuickSort{buildOptions(opts)}
}

func (*QuickSort) Name() string { return "QuickSort" }
func (*QuickSort) Stable() bool { return false }

type span struct{ lo, hi int }

// Sort implements Algorithm. Cancellation is checked before every
// range is taken from the stack.
func (q *QuickSort) Sort(data record.Dataset, c cancel.Canceler, stats *instrument.Statistics) {
	if len(data) < 2 {
		return
	}
	c = orNever(c)
	t := newTracer(q.opts, q.Name(), stats)
	stack := []span{{0, len(data) - 1}}
	for len(stack) > 0 {
		if c.Done() {
			return
		}
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if s.hi-s.lo+1 <= InsertionThreshold {
			t.insertionSort(data, s.lo, s.hi+1)
			continue
		}
		p := t.medianPartition(data, s.lo, s.hi)
		left, right := span{s.lo, p - 1}, span{p + 1, s.hi}
		if left.hi-left.lo > right.hi-right.lo {
			stack = append(stack, left, right)
		} else {
			stack = append(stack, right, left)
		}
	}
}

// medianOfThree orders data[lo], data[mid] and data[hi] with at most
// three swaps and returns mid.
func (t *tracer) medianOfThree(data record.Dataset, lo, hi int) int {
	mid := lo + (hi-lo)/2
	if t.less(data[mid], data[lo]) {
		t.swap(data, lo, mid)
	}
	if t.less(data[hi], data[lo]) {
		t.swap(data, lo, hi)
	}
	if t.less(data[hi], data[mid]) {
		t.swap(data, mid, hi)
	}
	return mid
}

// medianPartition partitions data[lo..hi], hi inclusive, around the
// median of three and returns the final pivot index. The range must
// hold more than three records.
func (t *tracer) medianPartition(data record.Dataset, lo, hi int) int {
	mid := t.medianOfThree(data, lo, hi)
	t.swap(data, mid, hi-1)
	pivot := data[hi-1]
	t.step("partition", "lo", lo, "hi", hi, "pivot", pivot.Key)

	// data[lo] <= pivot and data[hi-1] == pivot bound both scans.
	i, j := lo, hi-1
	for {
		for i++; t.less(data[i], pivot); i++ {
		}
		for j--; t.less(pivot, data[j]); j-- {
		}
		if i >= j {
			break
		}
		t.swap(data, i, j)
	}
	t.swap(data, i, hi-1)
	return i
}

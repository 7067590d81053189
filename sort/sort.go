/*
Package sort provides the instrumented sorting algorithms compared by
the benchmark.

Every algorithm sorts a record.Dataset in place by key, counts each key
comparison and each element swap or move in an instrument.Statistics,
and polls a cancel.Canceler at its checkpoints. A cancelled sort
returns early and leaves the dataset a permutation of its input.

Ranges of at most InsertionThreshold records are finished by insertion
sort in all hybrid algorithms, so that counts stay comparable across
algorithms at small sizes.
*/
package sort

import (
	"errors"
	"fmt"
	"log/slog"
	"math/bits"
	"strings"
	"sync/atomic"

	"github.com/exascience/sortbench/cancel"
	"github.com/exascience/sortbench/instrument"
	"github.com/exascience/sortbench/record"
	"github.com/exascience/sortbench/speculative"
)

// InsertionThreshold is the largest range length that hybrid
// algorithms hand over to insertion sort.
const InsertionThreshold = 32

/*
Algorithm is the capability every benchmarked sorting strategy
implements.

Sort permutes data so that keys are non-decreasing, unless c reports
cancellation at one of the algorithm's checkpoints. stats receives one
increment per comparison and one per swap or element move.
*/
type Algorithm interface {
	Name() string

	// Stable reports whether records with equal keys keep their
	// relative order.
	Stable() bool

	Sort(data record.Dataset, c cancel.Canceler, stats *instrument.Statistics)
}

// An Option configures an algorithm.
type Option func(*options)

type options struct {
	log *slog.Logger
}

// WithStepLog makes the algorithm log its individual steps to l at
// debug level: partitions, merges, heap fallbacks, comparisons and
// swaps. This is slow and meant for small datasets.
func WithStepLog(l *slog.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ErrUnknownAlgorithm is returned by ByName for names that match no
// algorithm.
var ErrUnknownAlgorithm = errors.New("unknown sort algorithm")

// Names lists the algorithm names in declared order.
var Names = []string{
	"QuickSort",
	"MergeSort",
	"HeapSort",
	"IntroSort",
	"TimSort",
	"DualPivotQuickSort",
}

// All returns one instance of every algorithm, in declared order.
func All(opts ...Option) []Algorithm {
	return []Algorithm{
		NewQuickSort(opts...),
		NewMergeSort(opts...),
		NewHeapSort(opts...),
		NewIntroSort(opts...),
		NewTimSort(opts...),
		NewDualPivotQuickSort(opts...),
	}
}

// ByName returns the algorithm with the given name. Matching ignores
// case.
func ByName(name string, opts ...Option) (Algorithm, error) {
	for _, a := range All(opts...) {
		if strings.EqualFold(a.Name(), name) {
			return a, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// tracer counts and optionally logs the steps of one sort call.
type tracer struct {
	stats *instrument.Statistics
	log   *slog.Logger
}

func newTracer(o options, name string, stats *instrument.Statistics) *tracer {
	if stats == nil {
		stats = new(instrument.Statistics)
	}
	t := &tracer{stats: stats}
	if o.log != nil {
		t.log = o.log.With("algorithm", name)
	}
	return t
}

func (t *tracer) step(msg string, args ...any) {
	if t.log != nil {
		t.log.Debug(msg, args...)
	}
}

// less compares the keys of a and b.
func (t *tracer) less(a, b record.Record) bool {
	t.stats.AddComparison()
	if t.log != nil {
		t.log.Debug("compare", "a", a.Key, "b", b.Key)
	}
	return a.Key < b.Key
}

func (t *tracer) swap(data record.Dataset, i, j int) {
	t.stats.AddSwap()
	if t.log != nil {
		t.log.Debug("swap", "i", i, "j", j)
	}
	data[i], data[j] = data[j], data[i]
}

// move stores r at data[i], counting it as a swap.
func (t *tracer) move(data record.Dataset, i int, r record.Record) {
	t.stats.AddSwap()
	data[i] = r
}

// insertionSort sorts data[lo:hi]. Every comparison is counted,
// including the one that stops the inner scan, and every shift counts
// as a swap.
func (t *tracer) insertionSort(data record.Dataset, lo, hi int) {
	for i := lo + 1; i < hi; i++ {
		x := data[i]
		j := i - 1
		for j >= lo && t.less(x, data[j]) {
			t.move(data, j+1, data[j])
			j--
		}
		data[j+1] = x
	}
}

// merge merges the sorted ranges src[lo:mid] and src[mid:hi] into
// dst[lo:hi], taking from the left range on equal keys.
func (t *tracer) merge(src, dst record.Dataset, lo, mid, hi int) {
	i, j := lo, mid
	for k := lo; k < hi; k++ {
		switch {
		case i >= mid:
			t.move(dst, k, src[j])
			j++
		case j >= hi:
			t.move(dst, k, src[i])
			i++
		case t.less(src[j], src[i]):
			t.move(dst, k, src[j])
			j++
		default:
			t.move(dst, k, src[i])
			i++
		}
	}
}

func floorLog2(n int) int {
	return bits.Len(uint(n)) - 1
}

func orNever(c cancel.Canceler) cancel.Canceler {
	if c == nil {
		return cancel.Never
	}
	return c
}

const sortedGrainSize = 0x500

/*
IsSorted determines in parallel whether data is sorted by key. It
attempts to terminate early when the return value is false.
*/
func IsSorted(data record.Dataset) bool {
	size := len(data)
	if size < sortedGrainSize {
		for i := 1; i < size; i++ {
			if data[i].Key < data[i-1].Key {
				return false
			}
		}
		return true
	}
	var done atomic.Bool
	defer done.Store(true)
	return speculative.RangeAnd(1, size, 0, func(low, high int) bool {
		for i := low; i < high; i++ {
			if ((i % 1024) == 0) && done.Load() {
				return false
			}
			if data[i].Key < data[i-1].Key {
				return false
			}
		}
		return true
	})
}

// Package sequential provides sequential counterparts of the functions
// in the parallel package.
//
// The benchmark manager runs sessions through Do when parallel mode is
// not requested, so both modes share the same trial code. The record
// generator batches through Range when GOMAXPROCS is 1.
package sequential

import (
	"fmt"

	"github.com/exascience/sortbench"
	"github.com/exascience/sortbench/internal"
)

// Do receives zero or more thunks and executes them sequentially,
// returning the left-most error value that is different from nil.
// Every thunk runs, even after an earlier one failed.
func Do(thunks ...sortbench.ErrThunk) (err error) {
	for _, thunk := range thunks {
		nerr := thunk()
		if err == nil {
			err = nerr
		}
	}
	return
}

// Range receives a range, a batch count n, and a range function f,
// divides the range into batches, and invokes the range function for
// each of these batches sequentially, covering the half-open interval
// from low to high, including low but excluding high.
//
// The batches are identical to the ones parallel.Range would use for
// the same arguments.
//
// Range panics if high < low, or if n < 0.
func Range(low, high, n int, f sortbench.RangeFunc) {
	var recur func(int, int, int)
	recur = func(low, high, n int) {
		switch {
		case n == 1:
			f(low, high)
		case n > 1:
			batchSize := ((high - low - 1) / n) + 1
			half := n / 2
			mid := low + batchSize*half
			if mid >= high {
				f(low, high)
				return
			}
			recur(low, mid, half)
			recur(mid, high, n-half)
		default:
			panic(fmt.Sprintf("invalid number of batches: %v", n))
		}
	}
	recur(low, high, internal.ComputeNofBatches(low, high, n))
}

/*
Package speculative provides parallel predicates that terminate early
when the final result is known.

And and RangeAnd return false as soon as any predicate invoked in
parallel returns false, without waiting for the remaining predicates.

None of the functions stop the execution of predicates that may still
be running in parallel in case of early termination. Predicates that
run for a long time should poll some other form of communication, for
example a cancel.Canceler, to stop gracefully.
*/
package speculative

import (
	"fmt"
	"sync"

	"github.com/exascience/sortbench"
	"github.com/exascience/sortbench/internal"
)

/*
And receives zero or more Predicate functions and executes them in
parallel.

Each predicate is invoked in its own goroutine, and And returns true
if all of them return true; or And returns false when at least one of
them returns false, without waiting for the other predicates to
terminate.

If one or more predicates panic, the corresponding goroutines recover
the panics, and And may eventually panic with the left-most recovered
panic value.
*/
func And(predicates ...sortbench.Predicate) bool {
	switch len(predicates) {
	case 0:
		return true
	case 1:
		return predicates[0]()
	}
	var b0, b1 bool
	var p interface{}
	var wg sync.WaitGroup
	wg.Add(1)
	switch len(predicates) {
	case 2:
		go func() {
			defer func() {
				p = internal.WrapPanic(recover())
				wg.Done()
			}()
			b1 = predicates[1]()
		}()
		b0 = predicates[0]()
	default:
		half := len(predicates) / 2
		go func() {
			defer func() {
				p = internal.WrapPanic(recover())
				wg.Done()
			}()
			b1 = And(predicates[half:]...)
		}()
		b0 = And(predicates[:half]...)
	}
	if !b0 {
		return false
	}
	wg.Wait()
	if p != nil {
		panic(p)
	}
	return b1
}

/*
RangeAnd receives a range, a batch count, and a RangePredicate
function, divides the range into batches, and invokes the range
predicate for each of these batches in parallel.

The range is specified by a low and high integer, with low <=
high. The batches are determined by dividing up the size of the range
(high - low) by n. If n is 0, a reasonable default is used that takes
runtime.GOMAXPROCS(0) into account.

RangeAnd returns true if all range predicates return true; or false
when at least one of them returns false, without waiting for the other
range predicates to terminate.

RangeAnd panics if high < low, or if n < 0.
*/
func RangeAnd(low, high, n int, f sortbench.RangePredicate) bool {
	var recur func(int, int, int) bool
	recur = func(low, high, n int) bool {
		switch {
		case n == 1:
			return f(low, high)
		case n > 1:
			batchSize := ((high - low - 1) / n) + 1
			half := n / 2
			mid := low + batchSize*half
			if mid >= high {
				return f(low, high)
			}
			var b1 bool
			var p interface{}
			var wg sync.WaitGroup
			wg.Add(1)
			go func() {
				defer func() {
					p = internal.WrapPanic(recover())
					wg.Done()
				}()
				b1 = recur(mid, high, n-half)
			}()
			if !recur(low, mid, half) {
				return false
			}
			wg.Wait()
			if p != nil {
				panic(p)
			}
			return b1
		default:
			panic(fmt.Sprintf("invalid number of batches: %v", n))
		}
	}
	return recur(low, high, internal.ComputeNofBatches(low, high, n))
}

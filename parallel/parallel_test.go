package parallel_test

import (
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/exascience/sortbench/parallel"
)

func ExampleDo() {
	var a, b int
	err := parallel.Do(
		func() error { a = 20; return nil },
		func() error { b = 22; return nil },
	)
	fmt.Println(a+b, err)

	// Output:
	// 42 <nil>
}

func TestDoReturnsLeftMostError(t *testing.T) {
	first := errors.New("first")
	second := errors.New("second")
	err := parallel.Do(
		func() error { return nil },
		func() error { return first },
		func() error { return second },
	)
	if err != first {
		t.Errorf("expected left-most error, got %v", err)
	}
}

func TestDoRunsEveryThunk(t *testing.T) {
	var count atomic.Int32
	thunk := func() error {
		count.Add(1)
		return nil
	}
	if err := parallel.Do(thunk, thunk, thunk, thunk, thunk, thunk); err != nil {
		t.Fatal(err)
	}
	if got := count.Load(); got != 6 {
		t.Errorf("expected 6 thunks to run, got %d", got)
	}
}

func TestDoPropagatesPanic(t *testing.T) {
	defer func() {
		if p := recover(); p == nil {
			t.Error("expected panic to propagate")
		}
	}()
	_ = parallel.Do(
		func() error { return nil },
		func() error { panic("boom") },
	)
}

func TestRangeCoversInterval(t *testing.T) {
	const n = 10007
	seen := make([]int32, n)
	parallel.Range(0, n, runtime.GOMAXPROCS(0), func(low, high int) {
		for i := low; i < high; i++ {
			atomic.AddInt32(&seen[i], 1)
		}
	})
	for i, s := range seen {
		if s != 1 {
			t.Fatalf("index %d visited %d times", i, s)
		}
	}
}

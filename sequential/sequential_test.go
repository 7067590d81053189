package sequential_test

import (
	"errors"
	"testing"

	"github.com/exascience/sortbench/sequential"
)

func TestDoRunsInOrder(t *testing.T) {
	var order []int
	boom := errors.New("boom")
	err := sequential.Do(
		func() error { order = append(order, 1); return nil },
		func() error { order = append(order, 2); return boom },
		func() error { order = append(order, 3); return errors.New("later") },
	)
	if err != boom {
		t.Errorf("expected first error, got %v", err)
	}
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("unexpected order %v", order)
	}
}

func TestRangeBatches(t *testing.T) {
	var batches [][2]int
	sequential.Range(0, 10, 3, func(low, high int) {
		batches = append(batches, [2]int{low, high})
	})
	next := 0
	for _, b := range batches {
		if b[0] != next {
			t.Fatalf("gap before batch %v", b)
		}
		next = b[1]
	}
	if next != 10 {
		t.Errorf("range ended at %d", next)
	}
	if len(batches) != 3 {
		t.Errorf("expected 3 batches, got %d", len(batches))
	}
}

package sync_test

import (
	"fmt"
	"testing"

	"github.com/exascience/sortbench/parallel"
	"github.com/exascience/sortbench/sync"
)

func TestMapStoreLoad(t *testing.T) {
	m := sync.NewMap[sync.StringKey, int](4)
	m.Store("QuickSort", 1)
	if v, ok := m.Load("QuickSort"); !ok || v != 1 {
		t.Errorf("Load = %v, %v", v, ok)
	}
	if _, ok := m.Load("HeapSort"); ok {
		t.Error("unexpected value for missing key")
	}
	m.Store("QuickSort", 2)
	if m.Len() != 1 {
		t.Errorf("expected one entry, got %d", m.Len())
	}
}

func TestMapConcurrentModify(t *testing.T) {
	m := sync.NewMap[sync.StringKey, int](0)
	parallel.Range(0, 1000, 0, func(low, high int) {
		for i := low; i < high; i++ {
			key := sync.StringKey(fmt.Sprintf("k%d", i%10))
			m.Modify(key, func(v int, _ bool) (int, bool) { return v + 1, true })
		}
	})
	total := 0
	m.Range(func(_ sync.StringKey, v int) bool {
		total += v
		return true
	})
	if total != 1000 {
		t.Errorf("expected 1000 increments, got %d", total)
	}
}

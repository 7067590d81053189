package speculative_test

import (
	"testing"

	"github.com/exascience/sortbench"
	"github.com/exascience/sortbench/speculative"
)

func TestAnd(t *testing.T) {
	yes := func() bool { return true }
	no := func() bool { return false }

	testCases := []struct {
		name       string
		predicates []sortbench.Predicate
		want       bool
	}{
		{"empty", nil, true},
		{"single true", []sortbench.Predicate{yes}, true},
		{"pair", []sortbench.Predicate{yes, no}, false},
		{"all true", []sortbench.Predicate{yes, yes, yes, yes}, true},
		{"one false", []sortbench.Predicate{yes, yes, no, yes, yes}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := speculative.And(tc.predicates...); got != tc.want {
				t.Errorf("And() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRangeAnd(t *testing.T) {
	data := make([]int, 5000)
	for i := range data {
		data[i] = i
	}
	ascending := func(low, high int) bool {
		for i := low; i < high; i++ {
			if i > 0 && data[i] < data[i-1] {
				return false
			}
		}
		return true
	}
	if !speculative.RangeAnd(0, len(data), 0, ascending) {
		t.Error("expected ascending data to pass")
	}
	data[4000] = -1
	if speculative.RangeAnd(0, len(data), 0, ascending) {
		t.Error("expected descent at index 4000 to fail")
	}
}

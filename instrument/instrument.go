// Package instrument holds the per-trial counters and the wall-clock
// timer used by the benchmark.
package instrument

import "time"

// Statistics counts the key comparisons and element swaps performed by
// one sort call.
//
// Statistics is not safe for concurrent use; every concurrently running
// trial uses its own instance.
type Statistics struct {
	comparisons int64
	swaps       int64
}

// AddComparison records one key comparison.
func (s *Statistics) AddComparison() { s.comparisons++ }

// AddSwap records one element swap or move.
func (s *Statistics) AddSwap() { s.swaps++ }

// Comparisons returns the number of comparisons since the last Reset.
func (s *Statistics) Comparisons() int64 { return s.comparisons }

// Swaps returns the number of swaps since the last Reset.
func (s *Statistics) Swaps() int64 { return s.swaps }

// Reset zeroes both counters.
func (s *Statistics) Reset() {
	s.comparisons = 0
	s.swaps = 0
}

// A Timer measures elapsed wall-clock time from Start.
type Timer struct {
	start time.Time
}

// Start returns a running Timer.
func Start() Timer {
	return Timer{start: time.Now()}
}

// Elapsed returns the time since the timer was started.
func (t Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Milliseconds returns the elapsed time in fractional milliseconds.
func (t Timer) Milliseconds() float64 {
	return float64(t.Elapsed().Nanoseconds()) / 1e6
}

// MeasureMs runs f and returns how long it took in milliseconds.
func MeasureMs(f func()) float64 {
	t := Start()
	f()
	return t.Milliseconds()
}

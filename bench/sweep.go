package bench

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/exascience/sortbench/cancel"
	"github.com/exascience/sortbench/record"
)

// GeometricSizes returns start, start*factor, start*factor^2, ... up to
// and including end.
func GeometricSizes(start, end, factor int) []int {
	if start <= 0 || factor <= 1 {
		return nil
	}
	var sizes []int
	for size := start; size <= end; size *= factor {
		sizes = append(sizes, size)
		if size > end/factor {
			break
		}
	}
	return sizes
}

/*
Sweep runs a sequential benchmark session for each dataset size and
collects how the algorithms compare as the size grows.

Every size gets a freshly generated dataset and a fresh Token. When
Cancel is done, the running session is interrupted and no further
sizes are started.
*/
type Sweep struct {
	Sizes     []int
	Generator record.Generator

	// Options are applied to the Manager of every size. A sample name
	// of "scalability_<size>" is set before them.
	Options []Option

	// Store, when set, receives the performance report of every size.
	Store ReportStore

	Cancel cancel.Canceler
	Logger *slog.Logger
}

// SizeResult is the outcome of the session for one size.
type SizeResult struct {
	Size  int
	State State
	Best  string

	// Completed lists the algorithms that completed, in declared order.
	Completed   []string
	Performance map[string]float64
	Comparisons map[string]int64
	Swaps       map[string]int64
	ReportPath  string
}

// Run executes the sweep. The returned error joins the persistence
// errors of all sizes; the report is valid regardless.
func (s *Sweep) Run() (*SweepReport, error) {
	log := s.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	report := &SweepReport{Started: time.Now()}
	var errs []error
	for _, size := range s.Sizes {
		if s.Cancel != nil && s.Cancel.Done() {
			report.Interrupted = true
			break
		}
		log.Info("sweep step", "size", size)
		data := s.Generator.Generate(size)
		token := cancel.Join(s.Cancel, cancel.NewToken())
		opts := append([]Option{WithSampleName("scalability_" + strconv.Itoa(size))}, s.Options...)
		m := NewManager(data, token, opts...)

		state, err := m.RunSequential()
		if errors.Is(err, ErrDuplicateAlgorithm) {
			return report, err
		}
		if err != nil {
			errs = append(errs, err)
		}
		sr := SizeResult{
			Size:        size,
			State:       state,
			Performance: m.PerformanceData(),
			Comparisons: make(map[string]int64),
			Swaps:       make(map[string]int64),
		}
		sr.Best, _ = m.BestAlgorithm()
		for _, r := range m.Results() {
			sr.Completed = append(sr.Completed, r.Algorithm)
			sr.Comparisons[r.Algorithm] = r.AvgComparisons
			sr.Swaps[r.Algorithm] = r.AvgSwaps
		}
		if s.Store != nil && len(sr.Performance) > 0 {
			path, err := m.SavePerformanceReport(s.Store)
			if err != nil {
				errs = append(errs, err)
			}
			sr.ReportPath = path
		}
		report.Sizes = append(report.Sizes, sr)
		if state == Interrupted {
			report.Interrupted = true
			break
		}
	}
	report.totals()
	return report, errors.Join(errs...)
}

// SweepReport summarizes a scalability sweep.
type SweepReport struct {
	Started     time.Time
	Interrupted bool
	Sizes       []SizeResult

	// Totals sums, per algorithm, the mean times and the average
	// counters over the sizes whose session completed, scored against
	// each other. Sizes where some algorithm did not complete are left
	// out, so that every total covers the same sizes.
	Totals []Scores

	// Scored lists the sizes included in Totals.
	Scored []int
}

func (r *SweepReport) totals() {
	index := make(map[string]int)
	var totals []Metrics
	r.Scored = nil
	for _, sr := range r.Sizes {
		if sr.State != Completed {
			continue
		}
		r.Scored = append(r.Scored, sr.Size)
		for _, name := range sr.Completed {
			i, ok := index[name]
			if !ok {
				i = len(totals)
				index[name] = i
				totals = append(totals, Metrics{Algorithm: name})
			}
			totals[i].TimeMs += sr.Performance[name]
			totals[i].Comparisons += sr.Comparisons[name]
			totals[i].Swaps += sr.Swaps[name]
		}
	}
	r.Totals = ScoreAll(totals)
}

// BestBySize maps every completed size to its fastest algorithm.
func (r *SweepReport) BestBySize() map[int]string {
	best := make(map[int]string, len(r.Sizes))
	for _, sr := range r.Sizes {
		if sr.Best != "" {
			best[sr.Size] = sr.Best
		}
	}
	return best
}

// PerformanceBySize maps every size to its performance map.
func (r *SweepReport) PerformanceBySize() map[int]map[string]float64 {
	perf := make(map[int]map[string]float64, len(r.Sizes))
	for _, sr := range r.Sizes {
		perf[sr.Size] = sr.Performance
	}
	return perf
}

func (r *SweepReport) ranked(key func(Scores) float64) []Scores {
	ranked := slices.Clone(r.Totals)
	slices.SortStableFunc(ranked, func(a, b Scores) int {
		return cmp.Compare(key(a), key(b))
	})
	return ranked
}

// WriteTo renders the sweep report as text.
func (r *SweepReport) WriteTo(w io.Writer) (int64, error) {
	var b bytes.Buffer
	line := strings.Repeat("-", 52)

	fmt.Fprintln(&b, "===== Scalability Report =====")
	fmt.Fprintf(&b, "Started: %s\n", r.Started.Format("2006/01/02 15:04:05"))
	if r.Interrupted {
		fmt.Fprintln(&b, "Sweep was interrupted; later sizes were not run.")
	}
	fmt.Fprintln(&b, line)

	if len(r.Scored) < len(r.Sizes) {
		fmt.Fprintf(&b, "Totals cover %d of %d sizes; sizes where some algorithm did not complete are excluded.\n",
			len(r.Scored), len(r.Sizes))
	}

	fmt.Fprintln(&b, "\n--- Overall Ranking ---")
	fmt.Fprintln(&b, "By total time:")
	for _, s := range r.ranked(func(s Scores) float64 { return s.TimeMs }) {
		fmt.Fprintf(&b, "%s: total time = %.2f ms\n", s.Algorithm, s.TimeMs)
	}
	fmt.Fprintln(&b, "By comparisons:")
	for _, s := range r.ranked(func(s Scores) float64 { return float64(s.Comparisons) }) {
		fmt.Fprintf(&b, "%s: comparisons = %d\n", s.Algorithm, s.Comparisons)
	}
	fmt.Fprintln(&b, "By swaps:")
	for _, s := range r.ranked(func(s Scores) float64 { return float64(s.Swaps) }) {
		fmt.Fprintf(&b, "%s: swaps = %d\n", s.Algorithm, s.Swaps)
	}

	fmt.Fprintln(&b, "\n--- Scalability ---")
	for _, sr := range r.Sizes {
		if sr.Best == "" {
			fmt.Fprintf(&b, "For %d records, no algorithm completed\n", sr.Size)
			continue
		}
		fmt.Fprintf(&b, "For %d records, the fastest algorithm was: %s\n", sr.Size, sr.Best)
	}

	fmt.Fprintln(&b, "\n--- Cost of Comparisons and Swaps ---")
	for _, s := range r.Totals {
		fmt.Fprintf(&b, "%s: time = %.2f ms, comparisons = %d, swaps = %d\n",
			s.Algorithm, s.TimeMs, s.Comparisons, s.Swaps)
		fmt.Fprintf(&b, "comparisons/ms: %.2f, swaps/ms: %.2f\n",
			ratio(float64(s.Comparisons), s.TimeMs), ratio(float64(s.Swaps), s.TimeMs))
	}

	fmt.Fprintln(&b, "\n--- Usage Advice ---")
	fmt.Fprintln(&b, "1. QuickSort is efficient for nearly ordered data and smaller datasets.")
	fmt.Fprintln(&b, "2. MergeSort and TimSort keep stable performance on large datasets and preserve the order of equal keys.")
	fmt.Fprintln(&b, "3. HeapSort and IntroSort bound the worst case when stability is not required.")

	fmt.Fprintln(&b, "\n--- Cost-Benefit Summary ---")
	fmt.Fprintf(&b, "%-20s %-15s %-15s %-15s %-15s\n", "Algorithm", "Time (ms)", "Comparisons", "Swaps", "Score")
	for _, s := range r.Totals {
		fmt.Fprintf(&b, "%-20s %-15.2f %-15d %-15d %-15.2f\n", s.Algorithm, s.TimeMs, s.Comparisons, s.Swaps, s.Final)
	}
	fmt.Fprintln(&b, line)

	return b.WriteTo(w)
}

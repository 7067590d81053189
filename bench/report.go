package bench

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// barScale is the bar length, in characters, of the fastest algorithm
// in the relative speed chart.
const barScale = 20

var recommendations = map[string]string{
	"QuickSort":          "QuickSort suits small or partially ordered datasets, where it tends to be fastest.",
	"MergeSort":          "MergeSort is recommended for large datasets because of its consistency and stability.",
	"HeapSort":           "HeapSort suits random data when stability is not required and memory must stay constant.",
	"IntroSort":          "IntroSort keeps quicksort speed while guaranteeing O(n log n) on adversarial inputs.",
	"TimSort":            "TimSort is a good default when records with equal keys must keep their order.",
	"DualPivotQuickSort": "DualPivotQuickSort performs well on large random datasets with many distinct keys.",
}

// Report is the performance report of one benchmark session.
type Report struct {
	Sample  string
	Records int
	State   State

	// Results are the completed algorithms in declared order.
	Results []*Result

	Best      *Result
	Steadiest *Result
	Scores    []Scores
}

func newReport(sample string, records int, state State, results []*Result) *Report {
	r := &Report{
		Sample:  sample,
		Records: records,
		State:   state,
		Results: results,
	}
	metrics := make([]Metrics, len(results))
	for i, res := range results {
		if r.Best == nil || res.Mean < r.Best.Mean {
			r.Best = res
		}
		if r.Steadiest == nil || res.StdDev < r.Steadiest.StdDev {
			r.Steadiest = res
		}
		metrics[i] = Metrics{
			Algorithm:   res.Algorithm,
			TimeMs:      res.Mean,
			Comparisons: res.AvgComparisons,
			Swaps:       res.AvgSwaps,
		}
	}
	r.Scores = ScoreAll(metrics)
	return r
}

// Recommendation returns the usage advice for the best algorithm.
func (r *Report) Recommendation() string {
	if text, ok := recommendations[r.Best.Algorithm]; ok {
		return text
	}
	return fmt.Sprintf("%s was the fastest algorithm for this dataset.", r.Best.Algorithm)
}

// WriteTo renders the report as text.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	var b bytes.Buffer
	line := strings.Repeat("-", 60)

	fmt.Fprintln(&b, "Performance Report")
	fmt.Fprintf(&b, "Sample: %s\n", r.Sample)
	fmt.Fprintf(&b, "Records: %d\n", r.Records)
	if r.State == Interrupted {
		fmt.Fprintln(&b, "Session was interrupted; only completed algorithms are listed.")
	}

	fmt.Fprintln(&b, "\nSummary (mean time, comparisons and swaps):")
	fmt.Fprintln(&b, line)
	fmt.Fprintf(&b, "%-20s %-16s %-15s %-15s\n", "Algorithm", "Mean (ms)", "Comparisons", "Swaps")
	for _, res := range r.Results {
		fmt.Fprintf(&b, "%-20s %-16.2f %-15d %-15d\n", res.Algorithm, res.Mean, res.AvgComparisons, res.AvgSwaps)
	}

	for _, res := range r.Results {
		fmt.Fprintf(&b, "\n%s - mean: %.2f ms, median: %.2f ms, stddev: %.2f ms\n",
			res.Algorithm, res.Mean, res.Median, res.StdDev)
		fmt.Fprintf(&b, "%s - average comparisons: %d, average swaps: %d\n",
			res.Algorithm, res.AvgComparisons, res.AvgSwaps)
		fmt.Fprintln(&b, "\nTime per trial:")
		for i, t := range res.Times {
			fmt.Fprintf(&b, "Trial %d: %.2f ms\n", i+1, t)
		}
		fmt.Fprintln(&b, "\nOutliers:")
		if len(res.Outliers) == 0 {
			fmt.Fprintln(&b, "none")
		}
		for _, o := range res.Outliers {
			if o.High {
				fmt.Fprintf(&b, "Trial %d high: %.2f ms (above %.2f ms)\n", o.Trial, o.Ms, res.HighBound)
			} else {
				fmt.Fprintf(&b, "Trial %d low: %.2f ms (below %.2f ms)\n", o.Trial, o.Ms, res.LowBound)
			}
		}
	}

	best := r.Best
	fmt.Fprintf(&b, "\nFastest algorithm: %s\n", best.Algorithm)
	for _, res := range r.Results {
		if res == best {
			continue
		}
		fmt.Fprintf(&b, "%s was %.2f times slower than %s, a difference of %.2f ms\n",
			res.Algorithm, ratio(res.Mean, best.Mean), best.Algorithm, res.Mean-best.Mean)
	}
	fmt.Fprintf(&b, "\nLowest standard deviation: %s (%.2f ms)\n", r.Steadiest.Algorithm, r.Steadiest.StdDev)

	fmt.Fprintln(&b, "\nRelative speed:")
	for _, res := range r.Results {
		bar := int(ratio(res.Mean, best.Mean) * barScale)
		fmt.Fprintf(&b, "%-20s | %s (%.2f ms)\n", res.Algorithm, strings.Repeat("=", bar), res.Mean)
	}

	fmt.Fprintln(&b, "\n"+line)
	fmt.Fprintln(&b, "Scores (0-100)")
	fmt.Fprintln(&b, line)
	fmt.Fprintf(&b, "%-20s %-12s %-12s %-12s %-12s\n", "Algorithm", "Time", "Comparisons", "Swaps", "Final")
	for _, s := range r.Scores {
		fmt.Fprintf(&b, "%-20s %-12.2f %-12.2f %-12.2f %-12.2f\n",
			s.Algorithm, s.TimeScore, s.ComparisonScore, s.SwapScore, s.Final)
	}

	fmt.Fprintln(&b, "\n"+line)
	fmt.Fprintln(&b, "Summary")
	fmt.Fprintln(&b, line)
	fmt.Fprintf(&b, "Fastest algorithm: %s (mean %.2f ms)\n", best.Algorithm, best.Mean)
	fmt.Fprintf(&b, "Lowest standard deviation: %s (%.2f ms)\n", r.Steadiest.Algorithm, r.Steadiest.StdDev)
	fmt.Fprintln(&b, "\nRecommendations:")
	fmt.Fprintln(&b, r.Recommendation())
	fmt.Fprintf(&b, "For data with high variance, prefer algorithms with a low standard deviation (e.g. %s).\n",
		r.Steadiest.Algorithm)

	return b.WriteTo(w)
}

// ratio returns a/b, or 1 when b is zero.
func ratio(a, b float64) float64 {
	if b == 0 {
		return 1
	}
	return a / b
}

package bench

import (
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// OutlierSigmas is the distance from the mean, in standard deviations,
// beyond which a trial time counts as an outlier.
const OutlierSigmas = 2

// An Outlier is a trial whose time lies outside the outlier bounds.
type Outlier struct {
	Trial int // 1-based
	Ms    float64
	High  bool
}

// Result aggregates the trials of one algorithm.
type Result struct {
	Algorithm string

	// Times holds the trial times in milliseconds, in trial order.
	Times []float64

	// AvgComparisons and AvgSwaps are the accumulated counts divided by
	// the number of trials, truncated to an integer.
	AvgComparisons int64
	AvgSwaps       int64

	Mean   float64
	Median float64

	// StdDev is the sample standard deviation of Times, or 0 for a
	// single trial.
	StdDev float64

	Min, Max float64

	// LowBound and HighBound are Mean -/+ OutlierSigmas*StdDev.
	LowBound, HighBound float64
	Outliers            []Outlier
}

// NewResult computes the statistics of the given trial times and
// accumulated counters. times must not be empty.
func NewResult(algorithm string, times []float64, totalComparisons, totalSwaps int64) *Result {
	n := int64(len(times))
	r := &Result{
		Algorithm:      algorithm,
		Times:          slices.Clone(times),
		AvgComparisons: totalComparisons / n,
		AvgSwaps:       totalSwaps / n,
		Mean:           stat.Mean(times, nil),
		Median:         median(times),
		Min:            floats.Min(times),
		Max:            floats.Max(times),
	}
	if n > 1 {
		r.StdDev = stat.StdDev(times, nil)
	}
	r.LowBound = r.Mean - OutlierSigmas*r.StdDev
	r.HighBound = r.Mean + OutlierSigmas*r.StdDev
	for i, t := range times {
		switch {
		case t > r.HighBound:
			r.Outliers = append(r.Outliers, Outlier{Trial: i + 1, Ms: t, High: true})
		case t < r.LowBound:
			r.Outliers = append(r.Outliers, Outlier{Trial: i + 1, Ms: t})
		}
	}
	return r
}

// median averages the two middle values for an even count.
func median(times []float64) float64 {
	sorted := slices.Clone(times)
	slices.Sort(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

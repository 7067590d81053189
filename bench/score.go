package bench

import (
	"gonum.org/v1/gonum/floats"
)

// ScoreFloor is the lowest score a metric can receive.
const ScoreFloor = 30.0

// Weights of the composite cost-benefit score.
const (
	TimeWeight       = 0.9
	ComparisonWeight = 0.05
	SwapWeight       = 0.05
)

// Score min-max normalizes v into [ScoreFloor, 100], where the lowest
// value scores 100. When all values are equal every one scores 100.
func Score(v, lo, hi float64) float64 {
	if hi > lo {
		return max(100*(1-(v-lo)/(hi-lo)), ScoreFloor)
	}
	return 100
}

// CostBenefit combines the three metric scores.
func CostBenefit(timeScore, comparisonScore, swapScore float64) float64 {
	return TimeWeight*timeScore + ComparisonWeight*comparisonScore + SwapWeight*swapScore
}

// Metrics are the raw values scored for one algorithm.
type Metrics struct {
	Algorithm   string
	TimeMs      float64
	Comparisons int64
	Swaps       int64
}

// Scores are the normalized scores of one algorithm relative to the
// others it was compared with.
type Scores struct {
	Metrics
	TimeScore       float64
	ComparisonScore float64
	SwapScore       float64
	Final           float64
}

// ScoreAll scores every entry of ms against the minimum and maximum of
// each metric across ms. The result has the order of ms.
func ScoreAll(ms []Metrics) []Scores {
	if len(ms) == 0 {
		return nil
	}
	times := make([]float64, len(ms))
	comps := make([]float64, len(ms))
	swaps := make([]float64, len(ms))
	for i, m := range ms {
		times[i] = m.TimeMs
		comps[i] = float64(m.Comparisons)
		swaps[i] = float64(m.Swaps)
	}
	scores := make([]Scores, len(ms))
	for i, m := range ms {
		s := Scores{
			Metrics:         m,
			TimeScore:       Score(times[i], floats.Min(times), floats.Max(times)),
			ComparisonScore: Score(comps[i], floats.Min(comps), floats.Max(comps)),
			SwapScore:       Score(swaps[i], floats.Min(swaps), floats.Max(swaps)),
		}
		s.Final = CostBenefit(s.TimeScore, s.ComparisonScore, s.SwapScore)
		scores[i] = s
	}
	return scores
}

// Package metrics exports benchmark trials and sessions as Prometheus
// metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/exascience/sortbench/bench"
)

const namespace = "sortbench"

// DurationBuckets are the histogram buckets of the trial duration, in
// milliseconds.
var DurationBuckets = prometheus.ExponentialBuckets(0.05, 4, 10)

// A Collector implements bench.Observer by updating Prometheus
// metrics. All methods are safe for concurrent use.
type Collector struct {
	trialDuration *prometheus.HistogramVec
	comparisons   *prometheus.CounterVec
	swaps         *prometheus.CounterVec
	sessions      *prometheus.CounterVec
}

var _ bench.Observer = (*Collector)(nil)

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		trialDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "trial_duration_ms",
				Help:      "Duration of a single sort trial in milliseconds.",
				Buckets:   DurationBuckets,
			},
			[]string{"algorithm"},
		),
		comparisons: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "comparisons_total",
				Help:      "Key comparisons performed by completed trials.",
			},
			[]string{"algorithm"},
		),
		swaps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "swaps_total",
				Help:      "Swaps and moves performed by completed trials.",
			},
			[]string{"algorithm"},
		),
		sessions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sessions_total",
				Help:      "Finished benchmark sessions by mode and final state.",
			},
			[]string{"mode", "state"},
		),
	}
	for _, col := range []prometheus.Collector{c.trialDuration, c.comparisons, c.swaps, c.sessions} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// NewRegistry returns a fresh registry with a registered Collector.
func NewRegistry() (*prometheus.Registry, *Collector, error) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	if err != nil {
		return nil, nil, err
	}
	return reg, c, nil
}

// ObserveTrial records one completed trial.
func (c *Collector) ObserveTrial(algorithm string, ms float64, comparisons, swaps int64) {
	c.trialDuration.WithLabelValues(algorithm).Observe(ms)
	c.comparisons.WithLabelValues(algorithm).Add(float64(comparisons))
	c.swaps.WithLabelValues(algorithm).Add(float64(swaps))
}

// ObserveSession records one finished session.
func (c *Collector) ObserveSession(mode string, state bench.State) {
	c.sessions.WithLabelValues(mode, state.String()).Inc()
}

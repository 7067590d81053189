package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exascience/sortbench/bench"
	"github.com/exascience/sortbench/cancel"
	"github.com/exascience/sortbench/record"
)

func TestCollector(t *testing.T) {
	_, c, err := NewRegistry()
	require.NoError(t, err)

	c.ObserveTrial("QuickSort", 1.5, 100, 40)
	c.ObserveTrial("QuickSort", 2.5, 120, 30)
	c.ObserveTrial("HeapSort", 3, 200, 90)
	c.ObserveSession("parallel", bench.Completed)
	c.ObserveSession("parallel", bench.Completed)
	c.ObserveSession("sequential", bench.Interrupted)

	assert.Equal(t, 220.0, testutil.ToFloat64(c.comparisons.WithLabelValues("QuickSort")))
	assert.Equal(t, 70.0, testutil.ToFloat64(c.swaps.WithLabelValues("QuickSort")))
	assert.Equal(t, 90.0, testutil.ToFloat64(c.swaps.WithLabelValues("HeapSort")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.sessions.WithLabelValues("parallel", "completed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.sessions.WithLabelValues("sequential", "interrupted")))
	assert.Equal(t, 2, testutil.CollectAndCount(c.trialDuration))
}

func TestDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewCollector(reg)
	require.NoError(t, err)
	_, err = NewCollector(reg)
	assert.Error(t, err)
}

func TestCollectorObservesSession(t *testing.T) {
	reg, c, err := NewRegistry()
	require.NoError(t, err)

	m := bench.NewManager(record.NewRandomGenerator(3).Generate(200), cancel.NewToken(),
		bench.WithTrials(2), bench.WithObserver(c))
	state, err := m.RunParallel()
	require.NoError(t, err)
	require.Equal(t, bench.Completed, state)

	expected := `
# HELP sortbench_sessions_total Finished benchmark sessions by mode and final state.
# TYPE sortbench_sessions_total counter
sortbench_sessions_total{mode="parallel",state="completed"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "sortbench_sessions_total"))
	assert.Equal(t, len(m.Algorithms()), testutil.CollectAndCount(c.comparisons))
}

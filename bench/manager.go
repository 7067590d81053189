/*
Package bench runs sort algorithms through repeated timed trials,
aggregates their statistics, ranks them, and renders performance and
scalability reports.

A Manager drives one benchmark session over one dataset, either
sequentially in declared algorithm order, or with one worker per
algorithm. Every trial sorts a fresh copy of the dataset, so no two
trials ever share mutable data. Cancellation is cooperative: the
shared Canceler is observed at trial boundaries and at the checkpoints
of the sort algorithms, and an algorithm that observes it contributes
no result.
*/
package bench

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/exascience/sortbench"
	"github.com/exascience/sortbench/cancel"
	"github.com/exascience/sortbench/instrument"
	"github.com/exascience/sortbench/internal"
	"github.com/exascience/sortbench/parallel"
	"github.com/exascience/sortbench/progress"
	"github.com/exascience/sortbench/record"
	"github.com/exascience/sortbench/sequential"
	"github.com/exascience/sortbench/sort"
	psync "github.com/exascience/sortbench/sync"
)

// DefaultTrials is the number of trials per algorithm.
const DefaultTrials = 10

var (
	// ErrSessionUsed is returned when a Manager is run a second time.
	ErrSessionUsed = errors.New("benchmark session already run")

	// ErrWorkerFailed reports an algorithm that panicked during a session.
	ErrWorkerFailed = errors.New("benchmark worker failed")

	// ErrPersist wraps failures to save sorted output or reports. The
	// in-memory results stay valid.
	ErrPersist = errors.New("persisting benchmark output")

	// ErrNoResults is returned when a report is requested but no
	// algorithm completed.
	ErrNoResults = errors.New("no completed benchmark results")

	// ErrDuplicateAlgorithm is returned when two algorithms of a session
	// share a name.
	ErrDuplicateAlgorithm = errors.New("duplicate algorithm name")
)

// State is the lifecycle state of a benchmark session.
type State int32

const (
	Idle State = iota
	Running
	Completed
	Interrupted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Interrupted:
		return "interrupted"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// A Sink persists the sorted output of an algorithm and returns where
// it was stored.
type Sink interface {
	Save(sample, algorithm string, data record.Dataset) (string, error)
}

// A ReportStore persists a rendered report under a base name and
// returns where it was stored.
type ReportStore interface {
	SaveReport(name string, report io.WriterTo) (string, error)
}

// An Observer is notified of every completed trial and of the end of
// every session. Implementations must be safe for concurrent use.
type Observer interface {
	ObserveTrial(algorithm string, ms float64, comparisons, swaps int64)
	ObserveSession(mode string, state State)
}

type nopObserver struct{}

func (nopObserver) ObserveTrial(string, float64, int64, int64) {}
func (nopObserver) ObserveSession(string, State)               {}

// An Option configures a Manager.
type Option func(*Manager)

// WithAlgorithms sets the algorithms to benchmark, in declared order.
// The default is sort.All().
func WithAlgorithms(algs ...sort.Algorithm) Option {
	return func(m *Manager) { m.algorithms = algs }
}

// WithTrials sets the number of trials per algorithm.
func WithTrials(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.trials = n
		}
	}
}

// WithSampleName names the dataset in persisted output and reports.
func WithSampleName(name string) Option {
	return func(m *Manager) { m.sample = name }
}

// WithProgress reports trial progress to r.
func WithProgress(r *progress.Reporter) Option {
	return func(m *Manager) { m.progress = r }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// WithSink persists the last sorted copy of every completed algorithm.
func WithSink(s Sink) Option {
	return func(m *Manager) { m.sink = s }
}

// WithObserver reports trials and sessions to o.
func WithObserver(o Observer) Option {
	return func(m *Manager) { m.observer = o }
}

/*
A Manager runs one benchmark session over a dataset.

The manager reads the dataset but never modifies it. The session
state moves from Idle to Running to either Completed or Interrupted,
and a Manager cannot be run again afterwards.
*/
type Manager struct {
	id         uuid.UUID
	data       record.Dataset
	token      cancel.Canceler
	algorithms []sort.Algorithm
	trials     int
	sample     string
	progress   *progress.Reporter
	log        *slog.Logger
	sink       Sink
	observer   Observer

	state       atomic.Int32
	interrupted atomic.Bool

	results  *psync.Map[psync.StringKey, *Result]
	paths    *psync.Map[psync.StringKey, string]
	failures *psync.Map[psync.StringKey, error]
}

// NewManager returns a Manager for data that observes token.
func NewManager(data record.Dataset, token cancel.Canceler, opts ...Option) *Manager {
	if token == nil {
		token = cancel.Never
	}
	m := &Manager{
		id:       uuid.New(),
		data:     data,
		token:    token,
		trials:   DefaultTrials,
		sample:   "sample",
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.algorithms == nil {
		m.algorithms = sort.All()
	}
	if m.log == nil {
		m.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m.log = m.log.With("session", m.id.String())
	m.results = psync.NewMap[psync.StringKey, *Result](len(m.algorithms))
	m.paths = psync.NewMap[psync.StringKey, string](len(m.algorithms))
	m.failures = psync.NewMap[psync.StringKey, error](len(m.algorithms))
	return m
}

// ID returns the session identifier used in log records.
func (m *Manager) ID() uuid.UUID { return m.id }

// State returns the current session state.
func (m *Manager) State() State { return State(m.state.Load()) }

// Size returns the number of records in the benchmarked dataset.
func (m *Manager) Size() int { return len(m.data) }

// SampleName returns the dataset name used in output.
func (m *Manager) SampleName() string { return m.sample }

// Algorithms returns the algorithm names in declared order.
func (m *Manager) Algorithms() []string {
	names := make([]string, len(m.algorithms))
	for i, alg := range m.algorithms {
		names[i] = alg.Name()
	}
	return names
}

func (m *Manager) start(mode string) error {
	seen := make(map[string]bool, len(m.algorithms))
	for _, name := range m.Algorithms() {
		if seen[name] {
			return fmt.Errorf("%w: %s", ErrDuplicateAlgorithm, name)
		}
		seen[name] = true
	}
	if !m.state.CompareAndSwap(int32(Idle), int32(Running)) {
		return fmt.Errorf("%w: state is %v", ErrSessionUsed, m.State())
	}
	m.progress.Reset(m.Algorithms()...)
	m.log.Info("benchmark started",
		"mode", mode,
		"sample", m.sample,
		"records", len(m.data),
		"algorithms", len(m.algorithms),
		"trials", m.trials)
	return nil
}

func (m *Manager) thunks() []sortbench.ErrThunk {
	thunks := make([]sortbench.ErrThunk, len(m.algorithms))
	for i, alg := range m.algorithms {
		alg := alg
		thunks[i] = func() (err error) {
			defer func() {
				if p := recover(); p != nil {
					err = fmt.Errorf("%w: %s: %w", ErrWorkerFailed, alg.Name(), internal.PanicError(internal.WrapPanic(p)))
				}
			}()
			return m.runAlgorithm(alg)
		}
	}
	return thunks
}

/*
RunSequential runs the algorithms one after another in declared
order. Once the Canceler is done, the current algorithm stops after
its current trial and all later algorithms are skipped.

The returned error is non-nil for a reused Manager, for algorithms
that share a name (wrapping ErrDuplicateAlgorithm), for an algorithm
that panicked (wrapping ErrWorkerFailed), and for persistence failures
(wrapping ErrPersist). Persistence failures leave the state Completed.
*/
func (m *Manager) RunSequential() (State, error) {
	if err := m.start("sequential"); err != nil {
		return m.State(), err
	}
	err := sequential.Do(m.thunks()...)
	return m.finish("sequential", err)
}

/*
RunParallel runs every algorithm in its own worker. Each worker runs
all trials of its algorithm in order on its own copies of the dataset.
Workers observe the shared Canceler independently.

A worker that panics does not stop the other workers, but ends the
session as Interrupted with an error wrapping ErrWorkerFailed.
*/
func (m *Manager) RunParallel() (State, error) {
	if err := m.start("parallel"); err != nil {
		return m.State(), err
	}
	err := parallel.Do(m.thunks()...)
	return m.finish("parallel", err)
}

func (m *Manager) finish(mode string, runErr error) (State, error) {
	state := Completed
	if m.interrupted.Load() || runErr != nil {
		state = Interrupted
	}
	m.state.Store(int32(state))
	m.progress.Finish()
	m.observer.ObserveSession(mode, state)

	completed := m.results.Len()
	if runErr != nil {
		m.log.Error("benchmark failed", "mode", mode, "error", runErr)
	} else {
		m.log.Info("benchmark finished", "mode", mode, "state", state, "completed", completed)
	}

	errs := []error{runErr}
	for _, alg := range m.algorithms {
		if err, ok := m.failures.Load(psync.StringKey(alg.Name())); ok {
			errs = append(errs, err)
		}
	}
	return state, errors.Join(errs...)
}

// fail records a persistence failure of the named algorithm.
func (m *Manager) fail(name string, err error) {
	err = fmt.Errorf("%w: %s: %w", ErrPersist, name, err)
	m.failures.Modify(psync.StringKey(name), func(prev error, ok bool) (error, bool) {
		if ok {
			return errors.Join(prev, err), true
		}
		return err, true
	})
}

func (m *Manager) stop(name string, trial int) error {
	m.interrupted.Store(true)
	m.log.Warn("algorithm interrupted", "algorithm", name, "trial", trial)
	return nil
}

func (m *Manager) runAlgorithm(alg sort.Algorithm) error {
	name := alg.Name()
	if m.token.Done() {
		return m.stop(name, 0)
	}
	m.log.Debug("algorithm started", "algorithm", name)

	var (
		stats       instrument.Statistics
		times       = make([]float64, 0, m.trials)
		comparisons int64
		swaps       int64
		last        record.Dataset
	)
	for i := 1; i <= m.trials; i++ {
		if m.token.Done() {
			return m.stop(name, i)
		}
		data := m.data.Clone()
		stats.Reset()
		ms := instrument.MeasureMs(func() { alg.Sort(data, m.token, &stats) })
		if m.token.Done() {
			return m.stop(name, i)
		}
		times = append(times, ms)
		comparisons += stats.Comparisons()
		swaps += stats.Swaps()
		last = data
		m.observer.ObserveTrial(name, ms, stats.Comparisons(), stats.Swaps())
		m.progress.Update(name, i, m.trials)
	}

	result := NewResult(name, times, comparisons, swaps)
	m.results.Store(psync.StringKey(name), result)
	m.log.Info("algorithm completed",
		"algorithm", name,
		"mean_ms", result.Mean,
		"stddev_ms", result.StdDev,
		"comparisons", result.AvgComparisons,
		"swaps", result.AvgSwaps)

	if m.sink != nil {
		path, err := m.sink.Save(m.sample, name, last)
		if err != nil {
			m.log.Error("saving sorted output failed", "algorithm", name, "error", err)
			m.fail(name, err)
			return nil
		}
		m.paths.Store(psync.StringKey(name), path)
	}
	return nil
}

// Results returns the results of the completed algorithms in declared
// order.
func (m *Manager) Results() []*Result {
	var results []*Result
	for _, alg := range m.algorithms {
		if r, ok := m.results.Load(psync.StringKey(alg.Name())); ok {
			results = append(results, r)
		}
	}
	return results
}

// Result returns the result of the named algorithm, if it completed.
func (m *Manager) Result(name string) (*Result, bool) {
	return m.results.Load(psync.StringKey(name))
}

// SavedPaths maps algorithm names to the location of their persisted
// sorted output.
func (m *Manager) SavedPaths() map[string]string {
	paths := make(map[string]string, m.paths.Len())
	m.paths.Range(func(k psync.StringKey, v string) bool {
		paths[string(k)] = v
		return true
	})
	return paths
}

// BestAlgorithm returns the completed algorithm with the lowest mean
// time. Ties go to the algorithm declared first.
func (m *Manager) BestAlgorithm() (string, bool) {
	var best *Result
	for _, r := range m.Results() {
		if best == nil || r.Mean < best.Mean {
			best = r
		}
	}
	if best == nil {
		return "", false
	}
	return best.Algorithm, true
}

// PerformanceData maps every completed algorithm to its mean time in
// milliseconds.
func (m *Manager) PerformanceData() map[string]float64 {
	perf := make(map[string]float64)
	for _, r := range m.Results() {
		perf[r.Algorithm] = r.Mean
	}
	return perf
}

// PerformanceReport builds the report of the completed algorithms. It
// returns nil when no algorithm completed.
func (m *Manager) PerformanceReport() *Report {
	results := m.Results()
	if len(results) == 0 {
		return nil
	}
	return newReport(m.sample, len(m.data), m.State(), results)
}

// SavePerformanceReport renders the performance report into store and
// returns where it was saved.
func (m *Manager) SavePerformanceReport(store ReportStore) (string, error) {
	report := m.PerformanceReport()
	if report == nil {
		return "", ErrNoResults
	}
	path, err := store.SaveReport(m.sample+"_report", report)
	if err != nil {
		return "", fmt.Errorf("%w: report: %w", ErrPersist, err)
	}
	m.log.Info("performance report saved", "path", path)
	return path, nil
}

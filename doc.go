// Package sortbench benchmarks and compares in-memory sorting algorithms
// over synthetic keyed records, and produces statistical performance
// reports.
//
// Sortbench provides the following subpackages:
//
// sortbench/record provides the record and dataset model, the line-oriented
// record encoding, and a random dataset generator.
//
// sortbench/sort provides six instrumented sorting algorithms that share one
// contract: every comparison and swap is counted, and a shared cancellation
// token is polled at well-defined checkpoints.
//
// sortbench/bench provides the benchmark manager that runs each algorithm
// through repeated timed trials, sequentially or in parallel, aggregates and
// ranks the results, drives scalability sweeps and compares one algorithm
// across two datasets.
//
// sortbench/cancel, sortbench/instrument and sortbench/progress provide the
// instrumentation primitives used by the algorithms and the manager.
//
// sortbench/parallel, sortbench/sequential and sortbench/speculative provide
// the fork/join helpers used to run workers, and sortbench/sync provides a
// split-locked map for results that are written concurrently.
//
// sortbench/metrics, sortbench/persist and sortbench/config connect the core
// to Prometheus, the file system and YAML configuration files.
package sortbench

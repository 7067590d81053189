package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/exascience/sortbench/bench"
	"github.com/exascience/sortbench/cancel"
	"github.com/exascience/sortbench/config"
	"github.com/exascience/sortbench/metrics"
	"github.com/exascience/sortbench/record"
)

// app carries the state shared by all subcommands.
type app struct {
	cfgPath string
	cfg     config.Config
	log     *slog.Logger
	out     io.Writer
	errOut  io.Writer
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "sortbench",
		Short:         "Benchmark sort algorithms on forest status records",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgPath, "config", "c", "", "YAML configuration file")
	pf.Int("trials", 0, "trials per algorithm")
	pf.StringSlice("algorithms", nil, "algorithms to run, in order (default all)")
	pf.String("mode", "", "session mode: sequential or parallel")
	pf.String("sample", "", "sample name used in output file names")
	pf.Duration("timeout", 0, "interrupt the benchmark after this duration")
	pf.Int("size", 0, "number of generated records")
	pf.Uint64("seed", 0, "generator seed")
	pf.StringP("input", "i", "", "dataset file, one key:status record per line")
	pf.StringP("output", "o", "", "output directory")
	pf.Bool("no-save", false, "do not persist sorted datasets")
	pf.String("log-level", "", "log level: debug, info, warn or error")
	pf.BoolP("verbose", "v", false, "log every compare, swap and partition step")
	pf.String("metrics-addr", "", "serve Prometheus metrics on this address")

	root.AddCommand(newRunCmd(a), newSweepCmd(a), newGenerateCmd(a), newCompareCmd(a))
	return root
}

// setup loads the configuration, applies flag overrides and builds the
// logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	override := func(name string, apply func()) {
		if flags.Changed(name) {
			apply()
		}
	}
	override("trials", func() { cfg.Benchmark.Trials, _ = flags.GetInt("trials") })
	override("algorithms", func() { cfg.Benchmark.Algorithms, _ = flags.GetStringSlice("algorithms") })
	override("mode", func() { cfg.Benchmark.Mode, _ = flags.GetString("mode") })
	override("sample", func() { cfg.Benchmark.SampleName, _ = flags.GetString("sample") })
	override("timeout", func() { cfg.Benchmark.Timeout, _ = flags.GetDuration("timeout") })
	override("size", func() { cfg.Data.Size, _ = flags.GetInt("size") })
	override("seed", func() { cfg.Data.Seed, _ = flags.GetUint64("seed") })
	override("input", func() { cfg.Data.Input, _ = flags.GetString("input") })
	override("output", func() { cfg.Output.Dir, _ = flags.GetString("output") })
	override("no-save", func() {
		noSave, _ := flags.GetBool("no-save")
		cfg.Output.SaveSorted = !noSave
	})
	override("log-level", func() { cfg.Observability.LogLevel, _ = flags.GetString("log-level") })
	override("verbose", func() { cfg.Observability.Verbose, _ = flags.GetBool("verbose") })
	override("metrics-addr", func() { cfg.Observability.MetricsAddr, _ = flags.GetString("metrics-addr") })
	if err := cfg.Validate(); err != nil {
		return err
	}
	level, _ := cfg.Level()

	a.cfg = cfg
	a.out = cmd.OutOrStdout()
	a.errOut = cmd.ErrOrStderr()
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}

// token returns a Token that is cancelled on SIGINT, SIGTERM or when
// the configured timeout elapses. The returned function releases it.
func (a *app) token(ctx context.Context) (*cancel.Token, func()) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stopSignals := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	token, release := cancel.WithContext(ctx)
	stopTimer := func() bool { return false }
	if timeout := a.cfg.Benchmark.Timeout; timeout > 0 {
		stopTimer = token.CancelAfter(timeout)
	}
	return token, func() {
		stopTimer()
		release()
		stopSignals()
	}
}

// dataset loads the configured input file, or generates one.
func (a *app) dataset() (record.Dataset, error) {
	if a.cfg.Data.Input != "" {
		data, err := record.LoadFile(a.cfg.Data.Input)
		if err != nil {
			return nil, err
		}
		a.log.Info("dataset loaded", "path", a.cfg.Data.Input, "records", len(data))
		return data, nil
	}
	data := record.NewRandomGenerator(a.cfg.Data.Seed).Generate(a.cfg.Data.Size)
	a.log.Info("dataset generated", "seed", a.cfg.Data.Seed, "records", len(data))
	return data, nil
}

// observer serves Prometheus metrics when an address is configured. The
// returned function shuts the server down.
func (a *app) observer() (bench.Observer, func(), error) {
	addr := a.cfg.Observability.MetricsAddr
	if addr == "" {
		return nil, func() {}, nil
	}
	reg, collector, err := metrics.NewRegistry()
	if err != nil {
		return nil, nil, fmt.Errorf("registering metrics: %w", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("metrics server failed", "addr", addr, "error", err)
		}
	}()
	a.log.Info("serving metrics", "addr", addr)
	return collector, func() { _ = srv.Shutdown(context.Background()) }, nil
}

// options returns the Manager options shared by run and sweep.
func (a *app) options() ([]bench.Option, error) {
	// Steps are logged at debug level whatever the configured level.
	steps := slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: slog.LevelDebug}))
	algs, err := a.cfg.Algorithms(steps)
	if err != nil {
		return nil, err
	}
	return []bench.Option{
		bench.WithAlgorithms(algs...),
		bench.WithTrials(a.cfg.Benchmark.Trials),
		bench.WithLogger(a.log),
	}, nil
}

package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/exascience/sortbench/bench"
	"github.com/exascience/sortbench/config"
	"github.com/exascience/sortbench/persist"
	"github.com/exascience/sortbench/progress"
)

var (
	winner  = color.New(color.FgGreen, color.Bold)
	warning = color.New(color.FgYellow)
)

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run one benchmark session and save its performance report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd)
		},
	}
}

func (a *app) run(cmd *cobra.Command) error {
	token, release := a.token(cmd.Context())
	defer release()

	data, err := a.dataset()
	if err != nil {
		return err
	}
	opts, err := a.options()
	if err != nil {
		return err
	}
	observer, shutdown, err := a.observer()
	if err != nil {
		return err
	}
	defer shutdown()

	dir := persist.NewDir(a.cfg.Output.Dir)
	opts = append(opts,
		bench.WithSampleName(a.cfg.Benchmark.SampleName),
		bench.WithProgress(progress.New(a.out)))
	if observer != nil {
		opts = append(opts, bench.WithObserver(observer))
	}
	if a.cfg.Output.SaveSorted {
		opts = append(opts, bench.WithSink(dir))
	}
	m := bench.NewManager(data, token, opts...)

	var state bench.State
	var runErr error
	if a.cfg.Benchmark.Mode == config.ModeSequential {
		state, runErr = m.RunSequential()
	} else {
		state, runErr = m.RunParallel()
	}

	if state == bench.Interrupted {
		warning.Fprintf(a.out, "Benchmark interrupted: %d of %d algorithms completed\n",
			len(m.Results()), len(m.Algorithms()))
	}
	best, ok := m.BestAlgorithm()
	if !ok {
		return errors.Join(runErr, bench.ErrNoResults)
	}
	result, _ := m.Result(best)
	winner.Fprintf(a.out, "Best algorithm: %s (%.2f ms)\n", best, result.Mean)

	path, err := m.SavePerformanceReport(dir)
	if err != nil {
		return errors.Join(runErr, err)
	}
	fmt.Fprintf(a.out, "Performance report saved to %s\n", path)
	return runErr
}

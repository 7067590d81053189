package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/exascience/sortbench/bench"
	"github.com/exascience/sortbench/persist"
	"github.com/exascience/sortbench/progress"
	"github.com/exascience/sortbench/record"
)

func newSweepCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Benchmark geometrically growing datasets and save a scalability report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("start") {
				a.cfg.Sweep.Start, _ = flags.GetInt("start")
			}
			if flags.Changed("end") {
				a.cfg.Sweep.End, _ = flags.GetInt("end")
			}
			if flags.Changed("factor") {
				a.cfg.Sweep.Factor, _ = flags.GetInt("factor")
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			return a.sweep(cmd)
		},
	}
	cmd.Flags().Int("start", 0, "smallest dataset size")
	cmd.Flags().Int("end", 0, "largest dataset size")
	cmd.Flags().Int("factor", 0, "growth factor between sizes")
	return cmd
}

func (a *app) sweep(cmd *cobra.Command) error {
	token, release := a.token(cmd.Context())
	defer release()

	opts, err := a.options()
	if err != nil {
		return err
	}
	observer, shutdown, err := a.observer()
	if err != nil {
		return err
	}
	defer shutdown()
	opts = append(opts, bench.WithProgress(progress.New(a.out)))
	if observer != nil {
		opts = append(opts, bench.WithObserver(observer))
	}

	dir := persist.NewDir(a.cfg.Output.Dir)
	s := &bench.Sweep{
		Sizes:     bench.GeometricSizes(a.cfg.Sweep.Start, a.cfg.Sweep.End, a.cfg.Sweep.Factor),
		Generator: record.NewRandomGenerator(a.cfg.Data.Seed),
		Options:   opts,
		Store:     dir,
		Cancel:    token,
		Logger:    a.log,
	}
	report, runErr := s.Run()

	if report.Interrupted {
		warning.Fprintf(a.out, "Sweep interrupted after %d sizes\n", len(report.Sizes))
	}
	for _, sr := range report.Sizes {
		if sr.Best != "" {
			winner.Fprintf(a.out, "%d records: %s (%.2f ms)\n", sr.Size, sr.Best, sr.Performance[sr.Best])
		}
	}
	if len(report.Totals) == 0 {
		return errors.Join(runErr, bench.ErrNoResults)
	}
	path, err := dir.SaveReport("scalability_report", report)
	if err != nil {
		return errors.Join(runErr, fmt.Errorf("%w: %w", bench.ErrPersist, err))
	}
	fmt.Fprintf(a.out, "Scalability report saved to %s\n", path)
	return runErr
}

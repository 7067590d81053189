package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/exascience/sortbench/bench"
	"github.com/exascience/sortbench/persist"
	"github.com/exascience/sortbench/record"
	"github.com/exascience/sortbench/sort"
)

func newCompareCmd(a *app) *cobra.Command {
	var algorithm string
	cmd := &cobra.Command{
		Use:   "compare FIRST SECOND",
		Short: "Sort two dataset files with one algorithm and report the differences",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.compare(cmd, algorithm, args[0], args[1])
		},
	}
	cmd.Flags().StringVar(&algorithm, "algorithm", "QuickSort", "algorithm used for both datasets")
	return cmd
}

func (a *app) compare(cmd *cobra.Command, name, firstPath, secondPath string) error {
	alg, err := sort.ByName(name)
	if err != nil {
		return err
	}
	first, err := record.LoadFile(firstPath)
	if err != nil {
		return err
	}
	second, err := record.LoadFile(secondPath)
	if err != nil {
		return err
	}

	token, release := a.token(cmd.Context())
	defer release()

	a.log.Info("comparing datasets", "algorithm", alg.Name(), "first", len(first), "second", len(second))
	result, state := bench.Compare(alg, first, second, token)
	if state == bench.Interrupted {
		warning.Fprintln(a.out, "Comparison interrupted")
		return bench.ErrNoResults
	}
	if _, err := result.WriteTo(a.out); err != nil {
		return err
	}

	path, err := persist.NewDir(a.cfg.Output.Dir).SaveReport(alg.Name()+"_report", result)
	if err != nil {
		return fmt.Errorf("%w: %w", bench.ErrPersist, err)
	}
	fmt.Fprintf(a.out, "Detailed report saved to %s\n", path)
	return nil
}

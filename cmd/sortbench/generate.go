package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/exascience/sortbench/record"
)

func newGenerateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "generate FILE",
		Short: "Generate a random dataset file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data := record.NewRandomGenerator(a.cfg.Data.Seed).Generate(a.cfg.Data.Size)
			if err := record.SaveFile(args[0], data); err != nil {
				return err
			}
			counts := data.StatusCounts()
			a.log.Info("dataset written", "path", args[0], "records", len(data))
			fmt.Fprintf(a.out, "Wrote %d records to %s (%d %v, %d %v, %d %v)\n", len(data), args[0],
				counts[record.Preserved], record.Preserved,
				counts[record.Burned], record.Burned,
				counts[record.Deforested], record.Deforested)
			return nil
		},
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"shotline/internal/pipeline"
	"shotline/internal/report"
	"shotline/internal/store"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var (
		shotFilter string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List past pipeline runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			history, err := store.Open(cfg)
			if err != nil {
				return err
			}
			defer history.Close()

			runs, err := history.ListRuns(cmd.Context(), shotFilter, limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), report.RunsTable(runs))
			return nil
		},
	}

	cmd.Flags().StringVar(&shotFilter, "shot", "", "Only list runs for this shot")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")

	cmd.AddCommand(newRunsShowCommand(ctx))
	return cmd
}

func newRunsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the stage outcomes of one run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			history, err := store.Open(cfg)
			if err != nil {
				return err
			}
			defer history.Close()

			stageRows, err := history.RunStages(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(stageRows) == 0 {
				return fmt.Errorf("no run found with id %s", args[0])
			}

			outcomes := make([]pipeline.StageOutcome, 0, len(stageRows))
			for _, row := range stageRows {
				outcome := pipeline.StageOutcome{
					Stage:      row.Stage,
					Skipped:    row.Skipped,
					SkipReason: row.SkipReason,
				}
				if !row.Skipped {
					outcome.Result = &pipeline.Result{
						Stage:    row.Stage,
						Success:  row.Success,
						Kind:     pipeline.ErrorKind(row.Kind),
						Message:  row.Message,
						Errors:   row.Errors,
						Warnings: row.Warnings,
						Duration: row.Duration,
					}
				}
				outcomes = append(outcomes, outcome)
			}
			fmt.Fprintln(cmd.OutOrStdout(), report.StageTable(outcomes))
			return nil
		},
	}
}

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ZanzyTHEbar/file4you/f4y/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show recorded organize runs, or the moves of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				return fmt.Errorf("history ledger is disabled in the configuration")
			}

			provider, err := history.NewProvider(cfg.History.Path)
			if err != nil {
				return fmt.Errorf("open history ledger: %w", err)
			}
			defer provider.Close()

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				moves, err := provider.MovesForRun(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if len(moves) == 0 {
					fmt.Fprintln(out, "No moves recorded for this run")
					return nil
				}
				for _, op := range moves {
					fmt.Fprintf(out, "%s  %s -> %s\n",
						op.Timestamp.Format(time.RFC3339), op.Item.Path, op.TargetPath)
				}
				return nil
			}

			runs, err := provider.ListRuns(cmd.Context(), limitFlag)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet")
				return nil
			}
			for _, run := range runs {
				fmt.Fprintf(out, "%s  %s  %s  %d moved, %d skipped, %d failed, %d learned\n",
					run.ID, run.StartedAt.Format(time.RFC3339), run.SourceDir,
					run.Moved, run.Skipped, run.Failed, run.Learned)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limitFlag, "limit", 20, "Maximum number of runs to list")

	return cmd
}

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ZanzyTHEbar/file4you/f4y/organizer/options"
	"github.com/ZanzyTHEbar/file4you/f4y/organizer/types"
	"github.com/ZanzyTHEbar/file4you/f4y/schema"
)

func newOrganizeCommand(ctx *commandContext) *cobra.Command {
	var (
		sourceFlag   string
		schemaFlag   string
		dryRunFlag   bool
		hiddenFlag   bool
		conflictFlag string
	)

	cmd := &cobra.Command{
		Use:   "organize",
		Short: "Sort files into category folders by extension",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			applyFlagOverrides(cfg, schema.VariantNested, schemaFlag, hiddenFlag)

			org, cleanup, err := ctx.buildOrganizer(schema.VariantNested, false)
			if err != nil {
				return err
			}
			defer cleanup()

			opts := options.DefaultOrganizeOptions()
			opts.SourceDir = sourceFlag
			opts.DryRun = dryRunFlag
			if conflictFlag != "" {
				opts.Conflict = options.ConflictStrategy(conflictFlag)
			}
			opts.Timeout = time.Duration(cfg.OrganizeTimeoutMinutes) * time.Minute

			result, err := org.Organize(cmd.Context(), opts)
			if err != nil {
				return err
			}
			printRunResult(cmd, result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&sourceFlag, "source", "s", "", "Directory to organize (defaults to the configured watch dir)")
	cmd.Flags().StringVar(&schemaFlag, "schema", "", "Category schema file path")
	cmd.Flags().BoolVarP(&dryRunFlag, "dry-run", "n", false, "Report planned moves without touching the filesystem")
	cmd.Flags().BoolVar(&hiddenFlag, "hidden", false, "Include hidden files")
	cmd.Flags().StringVar(&conflictFlag, "conflict", "", "Conflict policy: overwrite, skip or rename")

	return cmd
}

func printRunResult(cmd *cobra.Command, result *types.RunResult) {
	out := cmd.OutOrStdout()
	for _, op := range result.Operations {
		switch op.Outcome {
		case types.OutcomeMoved:
			verb := "Moved"
			if op.DryRun {
				verb = "Would move"
			}
			fmt.Fprintf(out, "%s %s -> %s\n", verb, op.Item.Name, op.TargetPath)
		case types.OutcomeSkipped:
			fmt.Fprintf(out, "Skipped %s (%s)\n", op.Item.Name, op.Reason)
		case types.OutcomeFailed:
			fmt.Fprintf(out, "Failed %s: %s\n", op.Item.Name, op.Error)
		}
	}
	fmt.Fprintf(out, "%d moved, %d skipped, %d failed, %d learned in %s\n",
		result.Moved, result.Skipped, result.Failed, result.Learned,
		result.Duration.Round(time.Millisecond))
}

package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/ZanzyTHEbar/file4you/f4y/organizer/options"
	"github.com/ZanzyTHEbar/file4you/f4y/schema"
)

func newDocumentsCommand(ctx *commandContext) *cobra.Command {
	var (
		sourceFlag   string
		schemaFlag   string
		dryRunFlag   bool
		autoFlag     bool
		hiddenFlag   bool
		conflictFlag string
	)

	cmd := &cobra.Command{
		Use:   "documents",
		Short: "Sort files and folders into keyword buckets, prompting for unknowns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			applyFlagOverrides(cfg, schema.VariantFlat, schemaFlag, hiddenFlag)

			org, cleanup, err := ctx.buildOrganizer(schema.VariantFlat, !autoFlag)
			if err != nil {
				return err
			}
			defer cleanup()

			opts := options.DefaultOrganizeOptions()
			opts.SourceDir = sourceFlag
			opts.DryRun = dryRunFlag
			opts.AutoClassify = autoFlag
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
	cmd.Flags().StringVar(&schemaFlag, "schema", "", "Keyword mapping file path")
	cmd.Flags().BoolVarP(&dryRunFlag, "dry-run", "n", false, "Report planned moves without touching the filesystem")
	cmd.Flags().BoolVar(&autoFlag, "auto", false, "File unknown items under the default bucket instead of prompting")
	cmd.Flags().BoolVar(&hiddenFlag, "hidden", false, "Include hidden files")
	cmd.Flags().StringVar(&conflictFlag, "conflict", "", "Conflict policy: overwrite, skip or rename")

	return cmd
}

package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/ZanzyTHEbar/file4you/f4y/organizer/options"
	"github.com/ZanzyTHEbar/file4you/f4y/schema"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var (
		workersFlag int
		hiddenFlag  bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <path>",
		Short: "Scan a directory tree and report size and type statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			org, cleanup, err := ctx.buildOrganizer(schema.VariantNested, false)
			if err != nil {
				return err
			}
			defer cleanup()

			opts := options.DefaultAnalysisOptions()
			if workersFlag > 0 {
				opts.WorkerCount = workersFlag
			}
			opts.IncludeHidden = hiddenFlag

			analysis, err := org.Analyze(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Files:       %d\n", analysis.TotalFiles)
			fmt.Fprintf(out, "Directories: %d\n", analysis.TotalDirectories)
			fmt.Fprintf(out, "Total size:  %d bytes\n", analysis.TotalSize)
			fmt.Fprintf(out, "Scan time:   %s\n", analysis.Duration.Round(time.Millisecond))

			exts := make([]string, 0, len(analysis.FileTypes))
			for ext := range analysis.FileTypes {
				exts = append(exts, ext)
			}
			sort.Strings(exts)
			for _, ext := range exts {
				label := ext
				if label == "" {
					label = "(none)"
				}
				fmt.Fprintf(out, "  %-12s %d\n", label, analysis.FileTypes[ext])
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&workersFlag, "workers", 0, "Concurrent stat workers (defaults to the CPU count)")
	cmd.Flags().BoolVar(&hiddenFlag, "hidden", false, "Include hidden files")

	return cmd
}

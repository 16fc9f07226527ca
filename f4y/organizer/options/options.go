package options

import (
	"runtime"
	"time"
)

// ConflictStrategy defines how to handle a destination that already exists.
type ConflictStrategy string

const (
	ConflictOverwrite ConflictStrategy = "overwrite"
	ConflictSkip      ConflictStrategy = "skip"
	ConflictRename    ConflictStrategy = "rename"
)

// OrganizeOptions configures a single organize pass over the watched
// directory.
type OrganizeOptions struct {
	SourceDir    string           // Directory whose entries get categorized
	DryRun       bool             // Resolve and report without moving or persisting
	Conflict     ConflictStrategy // How to handle existing destinations
	AutoClassify bool             // Answer the default bucket instead of prompting
	Timeout      time.Duration    // Overall pass timeout (0 = none)
}

// AnalysisOptions configures the concurrent pre-scan of a directory.
type AnalysisOptions struct {
	WorkerCount   int  // Concurrent stat workers
	IncludeHidden bool // Include dotfiles
}

// DefaultOrganizeOptions returns sensible defaults for an organize pass.
func DefaultOrganizeOptions() OrganizeOptions {
	return OrganizeOptions{
		DryRun:       false,
		Conflict:     ConflictRename,
		AutoClassify: false,
		Timeout:      10 * time.Minute,
	}
}

// DefaultAnalysisOptions returns sensible defaults for directory analysis.
func DefaultAnalysisOptions() AnalysisOptions {
	return AnalysisOptions{
		WorkerCount:   runtime.NumCPU(),
		IncludeHidden: false,
	}
}

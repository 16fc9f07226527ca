package types

import (
	"time"
)

// Item is a single filesystem entry from the watched directory listing.
type Item struct {
	Path      string `json:"path"`
	Name      string `json:"name"`
	IsDir     bool   `json:"is_dir"`
	Extension string `json:"extension"` // lower-cased, may be empty
}

// Destination is a resolved target for an item. Subcategory is empty for
// flat (keyword) schemas.
type Destination struct {
	Category    string `json:"category"`
	Subcategory string `json:"subcategory,omitempty"`
}

// Outcome classifies what happened to a single item during a run.
type Outcome string

const (
	OutcomeMoved   Outcome = "moved"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// ItemOperation records the handling of one item during an organize pass.
type ItemOperation struct {
	Item       Item        `json:"item"`
	Target     Destination `json:"target"`
	TargetPath string      `json:"target_path,omitempty"`
	Outcome    Outcome     `json:"outcome"`
	Reason     string      `json:"reason,omitempty"`
	Error      string      `json:"error,omitempty"`
	Learned    bool        `json:"learned"` // item introduced a new schema entry
	Timestamp  time.Time   `json:"timestamp"`
	DryRun     bool        `json:"dry_run"`
}

// RunResult summarizes a complete organize pass for programmatic callers.
// Per-item errors are recorded here and logged; they never abort the run.
type RunResult struct {
	RunID      string          `json:"run_id"`
	SourceDir  string          `json:"source_dir"`
	StartTime  time.Time       `json:"start_time"`
	EndTime    time.Time       `json:"end_time"`
	Duration   time.Duration   `json:"duration"`
	DryRun     bool            `json:"dry_run"`
	Operations []ItemOperation `json:"operations"`
	Moved      int             `json:"moved"`
	Skipped    int             `json:"skipped"`
	Failed     int             `json:"failed"`
	Learned    int             `json:"learned"`
}

// Record appends an operation and updates the counters.
func (r *RunResult) Record(op ItemOperation) {
	r.Operations = append(r.Operations, op)
	switch op.Outcome {
	case OutcomeMoved:
		r.Moved++
	case OutcomeSkipped:
		r.Skipped++
	case OutcomeFailed:
		r.Failed++
	}
	if op.Learned {
		r.Learned++
	}
}

// DirectoryAnalysis contains pre-scan statistics for a directory.
type DirectoryAnalysis struct {
	TotalFiles       int            `json:"total_files"`
	TotalDirectories int            `json:"total_directories"`
	TotalSize        int64          `json:"total_size"`
	FileTypes        map[string]int `json:"file_types"` // extension -> count
	Duration         time.Duration  `json:"duration"`
}

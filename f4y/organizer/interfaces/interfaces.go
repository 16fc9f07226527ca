package interfaces

import (
	"context"

	"github.com/ZanzyTHEbar/file4you/f4y/organizer/types"
	"github.com/ZanzyTHEbar/file4you/f4y/schema"
)

// FilesystemGateway is the thin boundary over directory listing, existence
// checks, directory creation and moves. It carries no categorization logic.
type FilesystemGateway interface {
	// List returns a snapshot of the directory's entries. Failure to list
	// the source directory is a fatal startup condition for a run.
	List(ctx context.Context, dir string) ([]types.Item, error)
	Exists(path string) bool
	IsDir(path string) bool
	// MakeDirs is idempotent and creates intermediate directories.
	MakeDirs(path string) error
	// Move relocates a single entry; failures wrap common.ErrMove.
	Move(ctx context.Context, src, dst string) error
}

// Resolver decides the destination category for an item against a schema.
// The second return is false when nothing matched.
type Resolver interface {
	Resolve(item types.Item, sch *schema.Schema) (types.Destination, bool)
}

// Classifier is the blocking capability used for unmatched items in keyword
// schemas. An empty answer means the default bucket.
type Classifier interface {
	PromptCategory(ctx context.Context, itemName string) (string, error)
}

// HistoryRecorder persists an audit trail of performed moves. Recording is
// best-effort: implementations log failures, callers never abort on them.
type HistoryRecorder interface {
	RecordMove(ctx context.Context, runID string, op types.ItemOperation) error
	RecordRun(ctx context.Context, result *types.RunResult) error
	Close() error
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	internal "github.com/ZanzyTHEbar/file4you/f4y"
	"github.com/ZanzyTHEbar/file4you/f4y/organizer/common"
	"github.com/ZanzyTHEbar/file4you/f4y/organizer/interfaces"
	"github.com/ZanzyTHEbar/file4you/f4y/organizer/options"
	"github.com/ZanzyTHEbar/file4you/f4y/organizer/types"
	"github.com/ZanzyTHEbar/file4you/f4y/schema"

	"github.com/google/uuid"
)

// OrganizerEngine drives a single batch pass over the watched directory:
// ensure category folders, resolve each listed item, relocate matches with
// the safe-move guards, learn schema entries for unmatched items, persist at
// the defined checkpoints. One mutator goroutine, items strictly in listing
// order, no retries. A per-item failure is logged and counted; only an
// unlistable source aborts the run.
type OrganizerEngine struct {
	gateway     interfaces.FilesystemGateway
	resolver    interfaces.Resolver
	classifier  interfaces.Classifier
	store       *schema.Store
	history     interfaces.HistoryRecorder // nil disables the ledger
	conflicts   *ConflictResolverService
	folderIndex *CategoryFolderIndex
	safety      *common.SafetyUtils
}

// NewOrganizerEngine creates an engine over the given collaborators. history
// may be nil when the move ledger is disabled.
func NewOrganizerEngine(
	gateway interfaces.FilesystemGateway,
	resolver interfaces.Resolver,
	classifier interfaces.Classifier,
	store *schema.Store,
	history interfaces.HistoryRecorder,
) *OrganizerEngine {
	return &OrganizerEngine{
		gateway:     gateway,
		resolver:    resolver,
		classifier:  classifier,
		store:       store,
		history:     history,
		conflicts:   NewConflictResolverService(gateway),
		folderIndex: NewCategoryFolderIndex(),
		safety:      common.NewSafetyUtils(),
	}
}

// Run executes one organize pass. The schema is mutated in place as
// unmatched items introduce new entries and is flushed after each learned
// entry; the caller owns neither persistence nor the listing snapshot.
func (e *OrganizerEngine) Run(ctx context.Context, sch *schema.Schema, opts options.OrganizeOptions) (*types.RunResult, error) {
	start := time.Now()
	result := &types.RunResult{
		RunID:      uuid.NewString(),
		SourceDir:  opts.SourceDir,
		StartTime:  start,
		DryRun:     opts.DryRun,
		Operations: make([]types.ItemOperation, 0),
	}

	slog.Info("Starting organize pass",
		"run_id", result.RunID,
		"source", opts.SourceDir,
		"variant", sch.Variant,
		"dryRun", opts.DryRun)

	// Snapshot first: items moved during the pass are never revisited.
	items, err := e.gateway.List(ctx, opts.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list source directory %s: %w", opts.SourceDir, err)
	}

	if err := e.ensureCategoryFolders(sch, opts); err != nil {
		return nil, err
	}

	for _, item := range items {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		e.processItem(ctx, item, sch, opts, result)
	}

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)

	if e.history != nil && !opts.DryRun {
		if err := e.history.RecordRun(ctx, result); err != nil {
			slog.Warn("Failed to record run in history ledger", "error", err)
		}
	}

	slog.Info("Organize pass completed",
		"run_id", result.RunID,
		"duration", result.Duration,
		"moved", result.Moved,
		"skipped", result.Skipped,
		"failed", result.Failed,
		"learned", result.Learned)

	return result, nil
}

// ensureCategoryFolders creates a folder per top-level category and registers
// it in the path index. Idempotent, safe to repeat across runs.
func (e *OrganizerEngine) ensureCategoryFolders(sch *schema.Schema, opts options.OrganizeOptions) error {
	for _, name := range sch.CategoryNames() {
		path := filepath.Join(opts.SourceDir, name)
		if !opts.DryRun {
			if err := e.gateway.MakeDirs(path); err != nil {
				return fmt.Errorf("failed to ensure category folder %s: %w", path, err)
			}
		}
		e.folderIndex.Register(name, path)
	}
	return nil
}

func (e *OrganizerEngine) processItem(ctx context.Context, item types.Item, sch *schema.Schema, opts options.OrganizeOptions, result *types.RunResult) {
	// Category folders are destinations, never items to resolve.
	if item.IsDir && e.folderIndex.IsCategoryFolder(item.Path) {
		result.Record(types.ItemOperation{
			Item:      item,
			Outcome:   types.OutcomeSkipped,
			Reason:    "category folder",
			Timestamp: time.Now(),
			DryRun:    opts.DryRun,
		})
		return
	}

	// Extension schemas classify files only.
	if item.IsDir && sch.Variant == schema.VariantNested {
		result.Record(types.ItemOperation{
			Item:      item,
			Outcome:   types.OutcomeSkipped,
			Reason:    "directory",
			Timestamp: time.Now(),
			DryRun:    opts.DryRun,
		})
		return
	}

	if dest, ok := e.resolver.Resolve(item, sch); ok {
		e.moveItem(ctx, item, dest, false, opts, result)
		return
	}

	switch sch.Variant {
	case schema.VariantNested:
		e.handleUnmatchedExtension(ctx, item, sch, opts, result)
	case schema.VariantFlat:
		e.handleUnmatchedKeyword(ctx, item, sch, opts, result)
	}
}

// handleUnmatchedExtension learns the unknown extension under the catch-all
// bucket, persists immediately, then moves the item into the bucket's top
// level.
func (e *OrganizerEngine) handleUnmatchedExtension(ctx context.Context, item types.Item, sch *schema.Schema, opts options.OrganizeOptions, result *types.RunResult) {
	slog.Info("New file type detected", "extension", item.Extension, "item", item.Name)

	learned := sch.AddExtensionKey(internal.DefaultOtherCategory, item.Extension)
	if learned {
		e.persistLearned(ctx, sch, opts)
	}

	e.ensureLearnedCategoryFolder(internal.DefaultOtherCategory, opts)
	e.moveItem(ctx, item, types.Destination{Category: internal.DefaultOtherCategory}, learned, opts, result)
}

// handleUnmatchedKeyword blocks on the classifier for a category, learns the
// item name as a keyword under it, persists, then moves. An empty answer
// means the default bucket.
func (e *OrganizerEngine) handleUnmatchedKeyword(ctx context.Context, item types.Item, sch *schema.Schema, opts options.OrganizeOptions, result *types.RunResult) {
	slog.Info("Uncategorized item found", "item", item.Name)

	category, err := e.classifier.PromptCategory(ctx, item.Name)
	if err != nil {
		slog.Error("Failed to classify item", "item", item.Name, "error", err)
		result.Record(types.ItemOperation{
			Item:      item,
			Outcome:   types.OutcomeFailed,
			Error:     err.Error(),
			Timestamp: time.Now(),
			DryRun:    opts.DryRun,
		})
		return
	}
	if category == "" {
		category = internal.DefaultMiscCategory
	}

	learned := sch.AddKeyword(category, item.Name)
	if learned {
		e.persistLearned(ctx, sch, opts)
	}

	e.ensureLearnedCategoryFolder(category, opts)
	e.moveItem(ctx, item, types.Destination{Category: category}, learned, opts, result)
}

// moveItem performs the guarded relocation of one item and records the
// outcome. Move failures are logged and counted, never propagated.
func (e *OrganizerEngine) moveItem(ctx context.Context, item types.Item, dest types.Destination, learned bool, opts options.OrganizeOptions, result *types.RunResult) {
	destDir := filepath.Join(opts.SourceDir, dest.Category)
	if dest.Subcategory != "" {
		destDir = filepath.Join(destDir, dest.Subcategory)
	}
	dstPath := filepath.Join(destDir, item.Name)

	op := types.ItemOperation{
		Item:      item,
		Target:    dest,
		Learned:   learned,
		Timestamp: time.Now(),
		DryRun:    opts.DryRun,
	}

	if err := e.safety.CheckMove(item.Path, dstPath, item.IsDir); err != nil {
		if common.IsMoveGuard(err) {
			slog.Info("Skipping unsafe move", "item", item.Name, "reason", err)
			op.Outcome = types.OutcomeSkipped
			op.Reason = err.Error()
			result.Record(op)
			return
		}
		op.Outcome = types.OutcomeFailed
		op.Error = err.Error()
		result.Record(op)
		return
	}

	if !opts.DryRun {
		if err := e.gateway.MakeDirs(destDir); err != nil {
			slog.Error("Failed to create destination folder", "dir", destDir, "error", err)
			op.Outcome = types.OutcomeFailed
			op.Error = err.Error()
			result.Record(op)
			return
		}
	}

	resolved, err := e.conflicts.ResolveConflict(dstPath, opts.Conflict)
	if err != nil {
		op.Outcome = types.OutcomeFailed
		op.Error = err.Error()
		result.Record(op)
		return
	}
	if resolved == "" {
		slog.Info("Destination exists, skipping item", "item", item.Name, "target", dstPath)
		op.Outcome = types.OutcomeSkipped
		op.Reason = "destination exists"
		result.Record(op)
		return
	}
	op.TargetPath = resolved

	if opts.DryRun {
		slog.Info("Dry run: would move item", "src", item.Path, "dst", resolved)
		op.Outcome = types.OutcomeMoved
		result.Record(op)
		return
	}

	if err := e.gateway.Move(ctx, item.Path, resolved); err != nil {
		slog.Error("Failed to move item", "src", item.Path, "dst", resolved, "error", err)
		op.Outcome = types.OutcomeFailed
		op.Error = err.Error()
		result.Record(op)
		return
	}

	slog.Info("Moved item", "src", item.Path, "dst", resolved, "category", dest.Category)
	op.Outcome = types.OutcomeMoved
	result.Record(op)

	if e.history != nil {
		if err := e.history.RecordMove(ctx, result.RunID, op); err != nil {
			slog.Warn("Failed to record move in history ledger", "error", err)
		}
	}
}

// persistLearned flushes a newly learned schema entry. Save failures are
// surfaced in the log but never invalidate the in-memory schema.
func (e *OrganizerEngine) persistLearned(ctx context.Context, sch *schema.Schema, opts options.OrganizeOptions) {
	if opts.DryRun {
		return
	}
	if err := e.store.Save(ctx, sch); err != nil {
		slog.Warn("Failed to persist learned schema entry", "error", err)
	}
}

// ensureLearnedCategoryFolder creates and indexes the folder for a category
// introduced mid-run.
func (e *OrganizerEngine) ensureLearnedCategoryFolder(category string, opts options.OrganizeOptions) {
	path := filepath.Join(opts.SourceDir, category)
	if !opts.DryRun {
		if err := e.gateway.MakeDirs(path); err != nil {
			slog.Error("Failed to create category folder", "dir", path, "error", err)
			return
		}
	}
	e.folderIndex.Register(category, path)
}

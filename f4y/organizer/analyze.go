package organizer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ZanzyTHEbar/file4you/f4y/organizer/options"
	"github.com/ZanzyTHEbar/file4you/f4y/organizer/types"

	"github.com/sourcegraph/conc/pool"
)

// Analyze performs a concurrent read-only pre-scan of a directory tree and
// reports aggregate statistics. The organize pass itself never uses this
// concurrency; analysis only reads.
func (o *Organizer) Analyze(ctx context.Context, rootPath string, opts options.AnalysisOptions) (*types.DirectoryAnalysis, error) {
	if rootPath == "" {
		rootPath = o.config.WatchDir
	}
	if err := o.pathUtils.ValidatePath(rootPath); err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	if opts.WorkerCount <= 0 {
		opts.WorkerCount = options.DefaultAnalysisOptions().WorkerCount
	}

	start := time.Now()
	slog.Info("Starting directory analysis", "path", rootPath, "workers", opts.WorkerCount)

	analysis := &types.DirectoryAnalysis{FileTypes: make(map[string]int)}
	var mu sync.Mutex

	p := pool.New().WithMaxGoroutines(opts.WorkerCount).WithContext(ctx)

	err := filepath.WalkDir(rootPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			slog.Warn("Skipping unreadable entry during analysis", "path", path, "error", err)
			return nil
		}

		name := d.Name()
		if !opts.IncludeHidden && path != rootPath && strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != rootPath {
				mu.Lock()
				analysis.TotalDirectories++
				mu.Unlock()
			}
			return nil
		}

		p.Go(func(ctx context.Context) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			info, err := d.Info()
			if err != nil {
				slog.Warn("Failed to stat file during analysis", "path", path, "error", err)
				return nil
			}

			ext := strings.ToLower(filepath.Ext(name))
			if ext == "" {
				ext = "(none)"
			}

			mu.Lock()
			analysis.TotalFiles++
			analysis.TotalSize += info.Size()
			analysis.FileTypes[ext]++
			mu.Unlock()
			return nil
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory tree: %w", err)
	}

	if err := p.Wait(); err != nil {
		return nil, fmt.Errorf("directory analysis cancelled: %w", err)
	}

	analysis.Duration = time.Since(start)
	slog.Info("Directory analysis completed",
		"path", rootPath,
		"files", analysis.TotalFiles,
		"dirs", analysis.TotalDirectories,
		"duration", analysis.Duration)

	return analysis, nil
}

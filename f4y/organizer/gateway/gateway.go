package gateway

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/file4you/f4y/organizer/common"
	"github.com/ZanzyTHEbar/file4you/f4y/organizer/interfaces"
	"github.com/ZanzyTHEbar/file4you/f4y/organizer/types"

	ignore "github.com/sabhiram/go-gitignore"
)

// IgnoreChecker matches paths against ignore patterns.
type IgnoreChecker interface {
	MatchesPath(path string) bool
}

// Config tunes the directory listing behaviour of the OS gateway.
type Config struct {
	IgnoreFile    string // gitignore-style file consulted inside the listed dir
	IncludeHidden bool   // include dotfiles in listings
}

// OSGateway implements the filesystem boundary on top of the OS. It holds no
// categorization logic; moves go through rename with a copy+delete fallback
// for cross-device destinations.
type OSGateway struct {
	cfg       Config
	pathUtils *common.PathUtils
}

// NewOSGateway creates a gateway over the local filesystem.
func NewOSGateway(cfg Config) *OSGateway {
	return &OSGateway{
		cfg:       cfg,
		pathUtils: common.NewPathUtils(),
	}
}

// List returns a snapshot of dir's entries as items, honoring the ignore
// file and the hidden-file setting. Entry order is whatever the OS listing
// returns; callers must not rely on it.
func (g *OSGateway) List(ctx context.Context, dir string) ([]types.Item, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := g.pathUtils.ValidatePath(dir); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrSourceUnavailable, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrSourceUnavailable, err)
	}

	checker, err := g.loadIgnoreChecker(dir)
	if err != nil {
		slog.Warn("Failed to load ignore file, listing everything", "dir", dir, "error", err)
	}

	items := make([]types.Item, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !g.cfg.IncludeHidden && strings.HasPrefix(name, ".") {
			continue
		}
		if g.cfg.IgnoreFile != "" && name == g.cfg.IgnoreFile {
			continue
		}
		if checker != nil && checker.MatchesPath(name) {
			slog.Debug("Skipping ignored entry", "name", name)
			continue
		}

		items = append(items, types.Item{
			Path:      filepath.Join(dir, name),
			Name:      name,
			IsDir:     entry.IsDir(),
			Extension: strings.ToLower(filepath.Ext(name)),
		})
	}

	return items, nil
}

// Exists reports whether a path exists.
func (g *OSGateway) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir reports whether a path exists and is a directory.
func (g *OSGateway) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// MakeDirs creates a directory and any missing parents. Safe to repeat.
func (g *OSGateway) MakeDirs(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}

// Move relocates a file or directory. Rename is tried first; cross-device
// failures fall back to copy+delete. All failures wrap common.ErrMove.
func (g *OSGateway) Move(ctx context.Context, src, dst string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := os.Rename(src, dst); err == nil {
		return nil
	} else if !isCrossDeviceError(err) {
		return fmt.Errorf("%w: %s -> %s: %v", common.ErrMove, src, dst, err)
	}

	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("%w: failed to stat source %s: %v", common.ErrMove, src, err)
	}

	if info.IsDir() {
		if err := g.copyDirectory(ctx, src, dst); err != nil {
			return fmt.Errorf("%w: %v", common.ErrMove, err)
		}
		if err := os.RemoveAll(src); err != nil {
			return fmt.Errorf("%w: failed to remove source directory after copy: %v", common.ErrMove, err)
		}
		return nil
	}

	if err := g.copyFile(ctx, src, dst, info); err != nil {
		return fmt.Errorf("%w: %v", common.ErrMove, err)
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("%w: failed to remove source file after copy: %v", common.ErrMove, err)
	}
	return nil
}

func (g *OSGateway) loadIgnoreChecker(dir string) (IgnoreChecker, error) {
	if g.cfg.IgnoreFile == "" {
		return nil, nil
	}

	ignorePath := filepath.Join(dir, g.cfg.IgnoreFile)
	if _, err := os.Stat(ignorePath); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error checking for %s: %w", ignorePath, err)
	}

	checker, err := ignore.CompileIgnoreFile(ignorePath)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", ignorePath, err)
	}
	return checker, nil
}

func (g *OSGateway) copyFile(ctx context.Context, src, dst string, info os.FileInfo) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer srcFile.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dstFile.Close()

	if err := copyWithCancel(ctx, dstFile, srcFile); err != nil {
		return fmt.Errorf("failed to copy file content: %w", err)
	}
	return nil
}

func (g *OSGateway) copyDirectory(ctx context.Context, src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to access source directory: %w", err)
	}
	if err := os.MkdirAll(dst, srcInfo.Mode()); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path: %w", err)
		}
		if relPath == "." {
			return nil
		}

		target := filepath.Join(dst, relPath)
		if d.IsDir() {
			info, err := d.Info()
			if err != nil {
				return fmt.Errorf("failed to get directory info: %w", err)
			}
			return os.MkdirAll(target, info.Mode())
		}

		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("failed to get file info: %w", err)
		}
		return g.copyFile(ctx, path, target, info)
	})
}

func copyWithCancel(ctx context.Context, dst io.Writer, src io.Reader) error {
	buffer := make([]byte, 32*1024)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, readErr := src.Read(buffer)
		if n > 0 {
			if _, writeErr := dst.Write(buffer[:n]); writeErr != nil {
				return writeErr
			}
		}
		if readErr != nil {
			if readErr == io.EOF {
				return nil
			}
			return readErr
		}
	}
}

func isCrossDeviceError(err error) bool {
	return strings.Contains(err.Error(), "cross-device link") ||
		strings.Contains(err.Error(), "invalid cross-device link")
}

// Ensure OSGateway implements the interface
var _ interfaces.FilesystemGateway = (*OSGateway)(nil)

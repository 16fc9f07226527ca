package common

import (
	"fmt"
	"path/filepath"
	"strings"
)

// PathUtils provides path manipulation utilities used across organizer packages
type PathUtils struct{}

// NewPathUtils creates a new PathUtils instance
func NewPathUtils() *PathUtils {
	return &PathUtils{}
}

// NormalizePath normalizes a file path for cross-platform compatibility
func (pu *PathUtils) NormalizePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return filepath.Clean(abs)
}

// IsSubpath checks if child is a subpath of parent
func (pu *PathUtils) IsSubpath(parent, child string) bool {
	parent = pu.NormalizePath(parent)
	child = pu.NormalizePath(child)

	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}

	return !strings.HasPrefix(rel, "..") && rel != "."
}

// ValidatePath validates that a path is safe and accessible
func (pu *PathUtils) ValidatePath(path string) error {
	if path == "" {
		return ErrPathEmpty
	}

	if strings.Contains(path, "\x00") {
		return ErrPathInvalid
	}

	if len(path) > 4096 {
		return ErrPathTooLong
	}

	return nil
}

// SafetyUtils provides the guards a relocation must pass before the gateway
// is asked to move anything.
type SafetyUtils struct {
	pathUtils *PathUtils
}

// NewSafetyUtils creates a new SafetyUtils instance
func NewSafetyUtils() *SafetyUtils {
	return &SafetyUtils{pathUtils: NewPathUtils()}
}

// CheckMove validates a relocation of src (a file or a directory) to dst.
// It returns ErrSelfMove when the resolved paths are identical and
// ErrNestedMove when a directory would land inside its own subtree. Both are
// deliberate no-ops for the caller, not failures.
func (su *SafetyUtils) CheckMove(src, dst string, srcIsDir bool) error {
	absSrc := su.pathUtils.NormalizePath(src)
	absDst := su.pathUtils.NormalizePath(dst)

	if absSrc == absDst {
		return fmt.Errorf("%w: %s", ErrSelfMove, absSrc)
	}

	if srcIsDir && su.pathUtils.IsSubpath(absSrc, absDst) {
		return fmt.Errorf("%w: %s -> %s", ErrNestedMove, absSrc, absDst)
	}

	return nil
}

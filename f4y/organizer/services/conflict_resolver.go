package services

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/file4you/f4y/organizer/interfaces"
	"github.com/ZanzyTHEbar/file4you/f4y/organizer/options"
)

// ConflictResolverService decides what to do when a move's destination
// already exists. The strategy is an explicit policy choice; nothing is ever
// silently overwritten unless the caller asked for it.
type ConflictResolverService struct {
	gateway interfaces.FilesystemGateway
}

// NewConflictResolverService creates a new conflict resolver service
func NewConflictResolverService(gateway interfaces.FilesystemGateway) *ConflictResolverService {
	return &ConflictResolverService{gateway: gateway}
}

// ResolveConflict returns the destination path to use for a move whose
// target already exists. An empty path means the item should be skipped.
func (cr *ConflictResolverService) ResolveConflict(dstPath string, strategy options.ConflictStrategy) (string, error) {
	if !cr.gateway.Exists(dstPath) {
		return dstPath, nil
	}

	switch strategy {
	case options.ConflictOverwrite:
		return dstPath, nil
	case options.ConflictSkip:
		return "", nil
	case options.ConflictRename:
		return cr.GenerateUniqueFilename(dstPath), nil
	default:
		return "", fmt.Errorf("unknown conflict strategy: %s", strategy)
	}
}

// GenerateUniqueFilename generates a unique filename by appending a suffix
func (cr *ConflictResolverService) GenerateUniqueFilename(path string) string {
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	ext := filepath.Ext(name)
	baseName := strings.TrimSuffix(name, ext)

	counter := 1
	for {
		var newName string
		if ext != "" {
			newName = fmt.Sprintf("%s_%d%s", baseName, counter, ext)
		} else {
			newName = fmt.Sprintf("%s_%d", baseName, counter)
		}

		newPath := filepath.Join(dir, newName)
		if !cr.gateway.Exists(newPath) {
			return newPath
		}
		counter++

		// Prevent infinite loops
		if counter > 9999 {
			return filepath.Join(dir, fmt.Sprintf("%s_%d_%d%s", baseName, counter, time.Now().Unix(), ext))
		}
	}
}

package services

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/armon/go-radix"
)

// CategoryFolderIndex tracks the absolute paths of ensured category folders
// in a patricia tree, giving O(k) skip checks during the organize pass and
// prefix lookups for paths already inside a category folder, where k is the
// path length rather than the number of folders.
type CategoryFolderIndex struct {
	tree *radix.Tree // folder path -> category name
	mu   sync.RWMutex
}

// NewCategoryFolderIndex creates an empty folder index.
func NewCategoryFolderIndex() *CategoryFolderIndex {
	return &CategoryFolderIndex{tree: radix.New()}
}

// Register records a category folder's path.
func (idx *CategoryFolderIndex) Register(category, path string) {
	normalized := idx.normalizePath(path)

	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.tree.Insert(normalized, category)
}

// Category returns the category owning the exact folder path.
func (idx *CategoryFolderIndex) Category(path string) (string, bool) {
	normalized := idx.normalizePath(path)

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	value, found := idx.tree.Get(normalized)
	if !found {
		return "", false
	}
	return value.(string), true
}

// IsCategoryFolder reports whether the path is a registered category folder.
func (idx *CategoryFolderIndex) IsCategoryFolder(path string) bool {
	_, found := idx.Category(path)
	return found
}

// ContainingCategory returns the category of the registered folder the path
// lives under, if any. Registered folders themselves do not count as being
// inside a category.
func (idx *CategoryFolderIndex) ContainingCategory(path string) (string, bool) {
	normalized := idx.normalizePath(path)

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	prefix, value, found := idx.tree.LongestPrefix(normalized)
	if !found || prefix == normalized {
		return "", false
	}
	// Guard partial-segment hits like /a/Docs matching /a/Documents
	if !strings.HasPrefix(normalized, prefix+"/") {
		return "", false
	}
	return value.(string), true
}

// Len returns the number of registered folders.
func (idx *CategoryFolderIndex) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.tree.Len()
}

func (idx *CategoryFolderIndex) normalizePath(path string) string {
	normalized := filepath.ToSlash(filepath.Clean(path))
	if len(normalized) > 1 {
		normalized = strings.TrimSuffix(normalized, "/")
	}
	return normalized
}

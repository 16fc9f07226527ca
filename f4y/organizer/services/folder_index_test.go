package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryFolderIndex(t *testing.T) {
	tests := []struct {
		name string
		test func(t *testing.T)
	}{
		{"RegisterAndLookup", testFolderIndexRegisterAndLookup},
		{"ContainingCategory", testFolderIndexContainingCategory},
		{"PartialSegmentGuard", testFolderIndexPartialSegmentGuard},
		{"TrailingSlash", testFolderIndexTrailingSlash},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.test)
	}
}

func testFolderIndexRegisterAndLookup(t *testing.T) {
	idx := NewCategoryFolderIndex()
	idx.Register("Documents & Data", "/downloads/Documents & Data")
	idx.Register("Other", "/downloads/Other")

	assert.Equal(t, 2, idx.Len())
	assert.True(t, idx.IsCategoryFolder("/downloads/Other"))
	assert.False(t, idx.IsCategoryFolder("/downloads/Random"))

	cat, found := idx.Category("/downloads/Documents & Data")
	require.True(t, found)
	assert.Equal(t, "Documents & Data", cat)
}

func testFolderIndexContainingCategory(t *testing.T) {
	idx := NewCategoryFolderIndex()
	idx.Register("Archives", "/downloads/Archives")

	cat, found := idx.ContainingCategory("/downloads/Archives/old/backup.zip")
	require.True(t, found)
	assert.Equal(t, "Archives", cat)

	// The registered folder itself is not inside a category
	_, found = idx.ContainingCategory("/downloads/Archives")
	assert.False(t, found)

	_, found = idx.ContainingCategory("/downloads/elsewhere/file.txt")
	assert.False(t, found)
}

func testFolderIndexPartialSegmentGuard(t *testing.T) {
	idx := NewCategoryFolderIndex()
	idx.Register("Docs", "/downloads/Docs")

	// /downloads/Documents shares the string prefix but not a path segment
	_, found := idx.ContainingCategory("/downloads/Documents/file.txt")
	assert.False(t, found)
}

func testFolderIndexTrailingSlash(t *testing.T) {
	idx := NewCategoryFolderIndex()
	idx.Register("Other", "/downloads/Other/")

	assert.True(t, idx.IsCategoryFolder("/downloads/Other"))
	assert.True(t, idx.IsCategoryFolder("/downloads/Other/"))
}

package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema(t *testing.T) {
	tests := []struct {
		name string
		test func(t *testing.T)
	}{
		{"EnsureCategory", testSchemaEnsureCategory},
		{"AddExtensionKey", testSchemaAddExtensionKey},
		{"AddKeyword", testSchemaAddKeyword},
		{"Clone", testSchemaClone},
		{"NormalizeExtension", testSchemaNormalizeExtension},
		{"Defaults", testSchemaDefaults},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.test)
	}
}

func testSchemaEnsureCategory(t *testing.T) {
	s := New(VariantNested)

	cat := s.EnsureCategory("Documents")
	require.NotNil(t, cat)
	assert.Equal(t, "Documents", cat.Name)
	assert.NotNil(t, cat.Subcategories, "nested categories should be created well-shaped")
	assert.Nil(t, cat.Keywords)

	// Ensuring again must not duplicate
	again := s.EnsureCategory("Documents")
	assert.Equal(t, cat, again)
	assert.Len(t, s.Categories, 1)

	flat := New(VariantFlat)
	fcat := flat.EnsureCategory("Gaming")
	assert.NotNil(t, fcat.Keywords, "flat categories should be created well-shaped")
	assert.Nil(t, fcat.Subcategories)
}

func testSchemaAddExtensionKey(t *testing.T) {
	s := New(VariantNested)

	added := s.AddExtensionKey("Other", ".XYZ")
	assert.True(t, added)

	cat := s.Category("Other")
	require.NotNil(t, cat)
	sub := cat.Subcategory(".xyz")
	require.NotNil(t, sub, "extension keys are stored lower-cased")
	assert.Empty(t, sub.Extensions)
	assert.NotNil(t, sub.Extensions, "learned keys carry an empty list, not nil")

	// Same key, any case, is a no-op
	assert.False(t, s.AddExtensionKey("Other", ".xyz"))
	assert.False(t, s.AddExtensionKey("Other", ".Xyz"))
	assert.Len(t, cat.Subcategories, 1)
}

func testSchemaAddKeyword(t *testing.T) {
	s := New(VariantFlat)

	assert.True(t, s.AddKeyword("University", "thesis"))
	assert.False(t, s.AddKeyword("University", "thesis"))
	assert.True(t, s.AddKeyword("University", "exam"))

	cat := s.Category("University")
	require.NotNil(t, cat)
	assert.Equal(t, []string{"thesis", "exam"}, cat.Keywords)
}

func testSchemaClone(t *testing.T) {
	s := DefaultNestedSchema()
	clone := s.Clone()

	require.Equal(t, s.CategoryNames(), clone.CategoryNames())

	// Mutating the clone must not touch the original
	clone.AddExtensionKey(clone.Categories[0].Name, ".zzz")
	clone.Categories[0].Subcategories[0].Extensions = append(
		clone.Categories[0].Subcategories[0].Extensions, ".mutant")

	orig := s.Categories[0]
	assert.Nil(t, orig.Subcategory(".zzz"))
	assert.NotContains(t, orig.Subcategories[0].Extensions, ".mutant")
}

func testSchemaNormalizeExtension(t *testing.T) {
	assert.Equal(t, ".pdf", NormalizeExtension(".PDF"))
	assert.Equal(t, ".tar.gz", NormalizeExtension(".TAR.GZ"))
	assert.Equal(t, "", NormalizeExtension(""))

	assert.Equal(t, []string{".a", ".b"}, normalizeExtensions([]string{".A", ".b", ".a"}))
}

func testSchemaDefaults(t *testing.T) {
	nested := DefaultNestedSchema()
	require.NotEmpty(t, nested.Categories)
	assert.Equal(t, VariantNested, nested.Variant)
	assert.True(t, nested.HasCategory("Documents & Data"))
	assert.True(t, nested.HasCategory("Executables"))
	assert.True(t, nested.HasCategory("Other"))

	docs := nested.Category("Documents & Data")
	require.NotNil(t, docs)
	sub := docs.Subcategory("Documents")
	require.NotNil(t, sub)
	assert.Contains(t, sub.Extensions, ".pdf")
	assert.Contains(t, sub.Extensions, ".txt")

	flat := DefaultFlatSchema()
	assert.Equal(t, VariantFlat, flat.Variant)
	assert.True(t, flat.HasCategory("University"))
	assert.True(t, flat.HasCategory("Miscellaneous"))

	// Each call builds a fresh table; callers may mutate freely
	a := DefaultNestedSchema()
	b := DefaultNestedSchema()
	a.Categories[0].Subcategories[0].Extensions[0] = ".changed"
	assert.NotEqual(t, ".changed", b.Categories[0].Subcategories[0].Extensions[0])
}

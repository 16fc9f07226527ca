package schema

import (
	"strings"
)

// Variant selects the shape of a category table.
type Variant string

const (
	// VariantNested maps category -> subcategory -> extension list.
	VariantNested Variant = "nested"
	// VariantFlat maps category -> keyword list.
	VariantFlat Variant = "flat"
)

// Subcategory holds an ordered extension list under a nested category.
type Subcategory struct {
	Name       string
	Extensions []string

	// malformed marks a subcategory whose value in the source document
	// did not decode as a sequence. Reconciliation repairs it.
	malformed bool
}

// Category is a single named entry of a schema. Nested categories carry
// subcategories, flat categories carry keywords; the unused side is nil.
type Category struct {
	Name          string
	Subcategories []Subcategory
	Keywords      []string

	// malformed marks a category whose value in the source document did
	// not decode with the shape the variant expects.
	malformed bool
}

// Schema is the full ordered category table used to classify items.
// Category order is the insertion order of the source document and drives
// first-match resolution.
type Schema struct {
	Variant    Variant
	Categories []Category
}

// New returns an empty schema of the given variant.
func New(variant Variant) *Schema {
	return &Schema{Variant: variant}
}

// Clone returns a deep copy of the schema.
func (s *Schema) Clone() *Schema {
	out := &Schema{Variant: s.Variant, Categories: make([]Category, len(s.Categories))}
	for i := range s.Categories {
		out.Categories[i] = s.Categories[i].clone()
	}
	return out
}

func (c Category) clone() Category {
	out := Category{Name: c.Name, malformed: c.malformed}
	if c.Subcategories != nil {
		out.Subcategories = make([]Subcategory, len(c.Subcategories))
		for i, sub := range c.Subcategories {
			out.Subcategories[i] = Subcategory{
				Name:       sub.Name,
				Extensions: append([]string(nil), sub.Extensions...),
				malformed:  sub.malformed,
			}
		}
	}
	if c.Keywords != nil {
		out.Keywords = append([]string(nil), c.Keywords...)
	}
	return out
}

// Category returns a pointer to the named category, or nil if absent.
func (s *Schema) Category(name string) *Category {
	for i := range s.Categories {
		if s.Categories[i].Name == name {
			return &s.Categories[i]
		}
	}
	return nil
}

// HasCategory reports whether the named category exists.
func (s *Schema) HasCategory(name string) bool {
	return s.Category(name) != nil
}

// CategoryNames returns the category names in stored order.
func (s *Schema) CategoryNames() []string {
	names := make([]string, len(s.Categories))
	for i := range s.Categories {
		names[i] = s.Categories[i].Name
	}
	return names
}

// EnsureCategory returns the named category, appending an empty well-shaped
// entry first if it does not exist yet.
func (s *Schema) EnsureCategory(name string) *Category {
	if cat := s.Category(name); cat != nil {
		return cat
	}
	cat := Category{Name: name}
	switch s.Variant {
	case VariantNested:
		cat.Subcategories = []Subcategory{}
	case VariantFlat:
		cat.Keywords = []string{}
	}
	s.Categories = append(s.Categories, cat)
	return &s.Categories[len(s.Categories)-1]
}

// AddExtensionKey records a newly learned extension under the named category
// as a subcategory with an empty extension list. Returns false if the key was
// already present.
func (s *Schema) AddExtensionKey(category, ext string) bool {
	ext = NormalizeExtension(ext)
	cat := s.EnsureCategory(category)
	if cat.Subcategory(ext) != nil {
		return false
	}
	cat.Subcategories = append(cat.Subcategories, Subcategory{Name: ext, Extensions: []string{}})
	return true
}

// AddKeyword appends a keyword to the named category, creating the category
// if needed. Returns false if the keyword was already present.
func (s *Schema) AddKeyword(category, keyword string) bool {
	cat := s.EnsureCategory(category)
	for _, kw := range cat.Keywords {
		if kw == keyword {
			return false
		}
	}
	cat.Keywords = append(cat.Keywords, keyword)
	return true
}

// Subcategory returns a pointer to the named subcategory, or nil if absent.
func (c *Category) Subcategory(name string) *Subcategory {
	for i := range c.Subcategories {
		if c.Subcategories[i].Name == name {
			return &c.Subcategories[i]
		}
	}
	return nil
}

// NormalizeExtension lower-cases an extension string for schema storage and
// lookups. Extensions are compared case-insensitively everywhere.
func NormalizeExtension(ext string) string {
	return strings.ToLower(ext)
}

// normalizeExtensions lower-cases and deduplicates a decoded extension list,
// preserving first-seen order.
func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	seen := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		ext = NormalizeExtension(ext)
		if _, ok := seen[ext]; ok {
			continue
		}
		seen[ext] = struct{}{}
		out = append(out, ext)
	}
	return out
}

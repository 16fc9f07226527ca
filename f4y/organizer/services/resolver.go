package services

import (
	"strings"

	"github.com/ZanzyTHEbar/file4you/f4y/organizer/interfaces"
	"github.com/ZanzyTHEbar/file4you/f4y/organizer/types"
	"github.com/ZanzyTHEbar/file4you/f4y/schema"
)

// ExtensionResolver matches an item's lower-cased extension against a nested
// schema. It is strictly first-match: categories and subcategories are tried
// in stored order and the first list containing the extension wins,
// regardless of any later, "better" match.
type ExtensionResolver struct{}

// NewExtensionResolver creates an extension-based resolver.
func NewExtensionResolver() *ExtensionResolver {
	return &ExtensionResolver{}
}

// Resolve returns the destination for the item, or false when no extension
// list contains it.
func (r *ExtensionResolver) Resolve(item types.Item, sch *schema.Schema) (types.Destination, bool) {
	ext := schema.NormalizeExtension(item.Extension)
	if ext == "" {
		return types.Destination{}, false
	}

	for i := range sch.Categories {
		cat := &sch.Categories[i]
		for j := range cat.Subcategories {
			sub := &cat.Subcategories[j]
			for _, candidate := range sub.Extensions {
				if candidate == ext {
					return types.Destination{Category: cat.Name, Subcategory: sub.Name}, true
				}
			}
		}
	}

	return types.Destination{}, false
}

// KeywordResolver matches an item's base name against a flat schema. The
// first category in stored order with any keyword appearing as a
// case-insensitive substring of the name wins.
type KeywordResolver struct{}

// NewKeywordResolver creates a keyword-based resolver.
func NewKeywordResolver() *KeywordResolver {
	return &KeywordResolver{}
}

// Resolve returns the destination for the item, or false when no keyword
// matches.
func (r *KeywordResolver) Resolve(item types.Item, sch *schema.Schema) (types.Destination, bool) {
	name := strings.ToLower(item.Name)

	for i := range sch.Categories {
		cat := &sch.Categories[i]
		for _, keyword := range cat.Keywords {
			if strings.Contains(name, strings.ToLower(keyword)) {
				return types.Destination{Category: cat.Name}, true
			}
		}
	}

	return types.Destination{}, false
}

// NewResolver returns the resolver matching a schema variant.
func NewResolver(variant schema.Variant) interfaces.Resolver {
	if variant == schema.VariantFlat {
		return NewKeywordResolver()
	}
	return NewExtensionResolver()
}

// Ensure both resolvers implement the interface
var (
	_ interfaces.Resolver = (*ExtensionResolver)(nil)
	_ interfaces.Resolver = (*KeywordResolver)(nil)
)

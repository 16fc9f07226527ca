package schema

import (
	"log/slog"
)

// ReconciliationResult is the merged schema plus whether the merge changed
// anything, which is what decides if a persistence write is needed.
type ReconciliationResult struct {
	Schema  *Schema
	Changed bool
}

// Reconcile merges a loaded schema with the built-in default so the result is
// a strict superset of both the default and every well-shaped loaded entry.
// The loaded schema is mutated in place.
//
// Policy, matching the persisted-table semantics exactly:
//   - default categories absent from loaded are inserted wholesale
//   - loaded entries whose source value had the wrong shape are replaced by
//     the default value when the default has one, or repaired to an empty
//     well-shaped entry when it does not (explicit data-loss policy)
//   - nothing present only in loaded is ever removed
//
// Reconciling an already reconciled schema reports Changed=false.
func Reconcile(loaded, def *Schema) ReconciliationResult {
	result := ReconciliationResult{Schema: loaded}

	for i := range def.Categories {
		defCat := &def.Categories[i]
		cat := loaded.Category(defCat.Name)
		if cat == nil {
			loaded.Categories = append(loaded.Categories, defCat.clone())
			result.Changed = true
			slog.Debug("Added missing category", "category", defCat.Name)
			continue
		}

		if cat.malformed {
			slog.Warn("Category has the wrong shape, resetting to default",
				"category", cat.Name)
			*cat = defCat.clone()
			result.Changed = true
			continue
		}

		if loaded.Variant == VariantNested {
			reconcileSubcategories(cat, defCat, &result)
		}
	}

	// Entries only the loaded schema knows about are kept, but malformed ones
	// still have to come out well-shaped.
	for i := range loaded.Categories {
		cat := &loaded.Categories[i]
		if cat.malformed {
			slog.Warn("Unrecognized category has the wrong shape, resetting to empty",
				"category", cat.Name)
			*cat = emptyCategory(cat.Name, loaded.Variant)
			result.Changed = true
			continue
		}
		if loaded.Variant != VariantNested {
			continue
		}
		for j := range cat.Subcategories {
			sub := &cat.Subcategories[j]
			if sub.malformed {
				slog.Warn("Unrecognized subcategory has the wrong shape, resetting to empty",
					"category", cat.Name, "subcategory", sub.Name)
				*sub = Subcategory{Name: sub.Name, Extensions: []string{}}
				result.Changed = true
			}
		}
	}

	return result
}

func reconcileSubcategories(cat, defCat *Category, result *ReconciliationResult) {
	for i := range defCat.Subcategories {
		defSub := &defCat.Subcategories[i]
		sub := cat.Subcategory(defSub.Name)
		if sub == nil {
			cat.Subcategories = append(cat.Subcategories, Subcategory{
				Name:       defSub.Name,
				Extensions: append([]string(nil), defSub.Extensions...),
			})
			result.Changed = true
			slog.Debug("Added missing subcategory",
				"category", cat.Name, "subcategory", defSub.Name)
			continue
		}

		if sub.malformed {
			slog.Warn("Subcategory has the wrong shape, resetting to default",
				"category", cat.Name, "subcategory", sub.Name)
			sub.Extensions = append([]string(nil), defSub.Extensions...)
			sub.malformed = false
			result.Changed = true
		}
	}
}

func emptyCategory(name string, variant Variant) Category {
	cat := Category{Name: name}
	switch variant {
	case VariantNested:
		cat.Subcategories = []Subcategory{}
	case VariantFlat:
		cat.Keywords = []string{}
	}
	return cat
}

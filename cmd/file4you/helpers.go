package main

import (
	"github.com/ZanzyTHEbar/file4you/f4y/config"
	"github.com/ZanzyTHEbar/file4you/f4y/schema"
)

// applyFlagOverrides folds command-line flags into the loaded configuration
// before the organizer is constructed. The schema override targets the file
// belonging to the variant the command runs under.
func applyFlagOverrides(cfg *config.File4YouConfig, variant schema.Variant, schemaFile string, includeHidden bool) {
	if schemaFile != "" {
		if variant == schema.VariantFlat {
			cfg.MappingFile = schemaFile
		} else {
			cfg.SchemaFile = schemaFile
		}
	}
	if includeHidden {
		cfg.IncludeHidden = true
	}
}

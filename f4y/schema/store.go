package schema

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// ErrPersistence wraps schema file read/write failures. Load recovers by
// falling back to the built-in default; a failed Save is surfaced to the
// caller but never invalidates the in-memory schema.
var ErrPersistence = errors.New("schema persistence failure")

// Store owns the persisted category table at a single path. It is the only
// component that reads or writes the schema file; everything else receives a
// *Schema reference.
type Store struct {
	path    string
	variant Variant
}

// NewStore creates a store for a schema document of the given variant.
func NewStore(path string, variant Variant) *Store {
	return &Store{path: path, variant: variant}
}

// Path returns the schema file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads and reconciles the persisted schema. A missing file yields a
// fresh copy of the default schema, written back immediately. A file that is
// not a JSON object at the top level is treated the same way. Individual
// entries with the wrong shape are reset by reconciliation rather than
// failing the load.
func (s *Store) Load(ctx context.Context) (*Schema, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Schema file unreadable, falling back to defaults",
				"path", s.path, "error", err)
		} else {
			slog.Info("No schema file found, using default categories", "path", s.path)
		}
		return s.resetToDefault(ctx)
	}

	loaded, err := Decode(bytes.NewReader(data), s.variant)
	if err != nil {
		slog.Warn("Schema file is not a valid category document, falling back to defaults",
			"path", s.path, "error", err)
		return s.resetToDefault(ctx)
	}

	// A document where every single category decoded malformed is almost
	// certainly the other variant's file, not a corrupted one of ours.
	// Reconciling it would flatten the entries and overwrite the file, so
	// leave it untouched and serve the defaults instead.
	if allMalformed(loaded) {
		slog.Warn("Schema file matches a different variant, leaving it untouched and using default categories",
			"path", s.path, "variant", s.variant)
		return DefaultSchema(s.variant), nil
	}

	slog.Debug("Categories loaded from schema file",
		"path", s.path, "categories", len(loaded.Categories))

	result := Reconcile(loaded, DefaultSchema(s.variant))
	if result.Changed {
		if err := s.Save(ctx, result.Schema); err != nil {
			slog.Warn("Failed to persist reconciled schema", "error", err)
		}
	}

	return result.Schema, nil
}

// Save atomically writes the schema document: the bytes land in a temp file
// in the same directory, then rename replaces the target so a crash can
// never leave a truncated document behind.
func (s *Store) Save(ctx context.Context, sch *Schema) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	data, err := Encode(sch)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: failed to create schema directory %s: %v", ErrPersistence, dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: failed to create temp file: %v", ErrPersistence, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: failed to write schema document: %v", ErrPersistence, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: failed to close temp file: %v", ErrPersistence, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: failed to replace schema file %s: %v", ErrPersistence, s.path, err)
	}

	slog.Debug("Categories saved to schema file", "path", s.path)
	return nil
}

func allMalformed(sch *Schema) bool {
	if len(sch.Categories) == 0 {
		return false
	}
	for _, cat := range sch.Categories {
		if !cat.malformed {
			return false
		}
	}
	return true
}

func (s *Store) resetToDefault(ctx context.Context) (*Schema, error) {
	def := DefaultSchema(s.variant)
	if err := s.Save(ctx, def); err != nil {
		slog.Warn("Failed to write default schema", "path", s.path, "error", err)
	}
	return def, nil
}

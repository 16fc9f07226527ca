package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
)

// The persisted schema is a plain JSON object, but resolution depends on the
// document's key order, which encoding/json's map decoding discards. Decode
// walks the token stream instead so category and subcategory order survive a
// load round-trip.
//
// Decoding is tolerant: a value with the wrong shape for the variant is kept
// as a malformed entry rather than failing the whole document, and
// reconciliation resets it afterwards.

// Decode parses a persisted schema document of the given variant.
func Decode(r io.Reader, variant Variant) (*Schema, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to read schema document: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("schema document is not a JSON object")
	}

	out := New(variant)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to read category name: %w", err)
		}
		name, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("category name is not a string: %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to read value for category %q: %w", name, err)
		}

		cat, err := decodeCategory(name, raw, variant)
		if err != nil {
			return nil, err
		}
		out.Categories = append(out.Categories, cat)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to read end of schema document: %w", err)
	}

	return out, nil
}

func decodeCategory(name string, raw json.RawMessage, variant Variant) (Category, error) {
	cat := Category{Name: name}

	switch variant {
	case VariantFlat:
		var keywords []string
		if err := json.Unmarshal(raw, &keywords); err != nil {
			slog.Warn("Category value is not a keyword list, keeping as malformed",
				"category", name)
			cat.malformed = true
			return cat, nil
		}
		if keywords == nil {
			keywords = []string{}
		}
		cat.Keywords = keywords

	case VariantNested:
		subs, ok, err := decodeSubcategories(raw)
		if err != nil {
			return cat, fmt.Errorf("failed to decode category %q: %w", name, err)
		}
		if !ok {
			slog.Warn("Category value is not a subcategory mapping, keeping as malformed",
				"category", name)
			cat.malformed = true
			return cat, nil
		}
		cat.Subcategories = subs

	default:
		return cat, fmt.Errorf("unknown schema variant: %q", variant)
	}

	return cat, nil
}

// decodeSubcategories walks a nested category value. ok is false when the
// value is not an object at all.
func decodeSubcategories(raw json.RawMessage) ([]Subcategory, bool, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, false, fmt.Errorf("failed to read subcategory mapping: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, false, nil
	}

	subs := []Subcategory{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, false, fmt.Errorf("failed to read subcategory name: %w", err)
		}
		name, ok := keyTok.(string)
		if !ok {
			return nil, false, fmt.Errorf("subcategory name is not a string: %v", keyTok)
		}

		var rawVal json.RawMessage
		if err := dec.Decode(&rawVal); err != nil {
			return nil, false, fmt.Errorf("failed to read value for subcategory %q: %w", name, err)
		}

		sub := Subcategory{Name: name}
		var exts []string
		if err := json.Unmarshal(rawVal, &exts); err != nil {
			slog.Warn("Subcategory value is not an extension list, keeping as malformed",
				"subcategory", name)
			sub.malformed = true
		} else {
			sub.Extensions = normalizeExtensions(exts)
		}
		subs = append(subs, sub)
	}

	if _, err := dec.Token(); err != nil {
		return nil, false, fmt.Errorf("failed to read end of subcategory mapping: %w", err)
	}

	return subs, true, nil
}

// marshalPlain marshals without HTML escaping so names like "Documents &
// Data" land in the file verbatim.
func marshalPlain(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Encode serializes the schema as an indented JSON object, preserving
// category and subcategory order.
func Encode(s *Schema) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i := range s.Categories {
		if i > 0 {
			buf.WriteByte(',')
		}
		cat := &s.Categories[i]

		key, err := marshalPlain(cat.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to encode category name %q: %w", cat.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := encodeCategoryValue(cat, s.Variant)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "    "); err != nil {
		return nil, fmt.Errorf("failed to indent schema document: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func encodeCategoryValue(cat *Category, variant Variant) ([]byte, error) {
	switch variant {
	case VariantFlat:
		keywords := cat.Keywords
		if keywords == nil {
			keywords = []string{}
		}
		return marshalPlain(keywords)

	case VariantNested:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i := range cat.Subcategories {
			if i > 0 {
				buf.WriteByte(',')
			}
			sub := &cat.Subcategories[i]

			key, err := marshalPlain(sub.Name)
			if err != nil {
				return nil, fmt.Errorf("failed to encode subcategory name %q: %w", sub.Name, err)
			}
			buf.Write(key)
			buf.WriteByte(':')

			exts := sub.Extensions
			if exts == nil {
				exts = []string{}
			}
			val, err := marshalPlain(exts)
			if err != nil {
				return nil, fmt.Errorf("failed to encode extensions for %q: %w", sub.Name, err)
			}
			buf.Write(val)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil

	default:
		return nil, fmt.Errorf("unknown schema variant: %q", variant)
	}
}

// Package sitepatch builds, applies and undoes structural edits to
// page-builder documents and classifies the difference between two
// snapshots so a preview can be updated incrementally.
//
// A Document is a JSON-like tree: objects are map[string]any, arrays are
// []any, scalars are string, float64, bool or nil. Pages live under
// "pages", each with an "id" and a "structure" array of blocks. A block is
// {id, type, props}; props may hold slot arrays of further blocks.
//
// Edits are expressed as patches (see package patch) produced by helpers
// such as UpdateBlockProp and AddBlock. A Session ties the pieces together:
//
//	s, err := sitepatch.NewSession(doc, config.Default())
//	p, err := sitepatch.UpdateBlockProp(s.Document(), "home", "h1", "text", "Hello")
//	report, err := s.Apply(p, "edit heading")
//	if report.FullRebuild() { ... }
package sitepatch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/brunoga/sitepatch/patch"
)

// Document is the root object of a page-builder site.
type Document = map[string]any

// Format selects the encoding used by Marshal.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DecodeDocument parses a document from JSON or YAML. YAML input is
// normalized through JSON so that numbers decode as float64 regardless of
// the source format.
func DecodeDocument(data []byte) (Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Document{}, nil
	}
	js, err := toJSON(data)
	if err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(js, &doc); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	if doc == nil {
		doc = Document{}
	}
	return doc, nil
}

// LoadDocument reads and decodes the document stored at path.
func LoadDocument(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeDocument(data)
}

// DecodePatch parses a patch from JSON or YAML.
func DecodePatch(data []byte) (patch.Patch, error) {
	js, err := toJSON(data)
	if err != nil {
		return nil, fmt.Errorf("decoding patch: %w", err)
	}
	return patch.Decode(js)
}

// LoadPatch reads and decodes the patch stored at path.
func LoadPatch(path string) (patch.Patch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodePatch(data)
}

// Marshal encodes v in the given format. JSON output is indented.
func Marshal(v any, f Format) ([]byte, error) {
	js, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	switch f {
	case FormatJSON, "":
		return append(js, '\n'), nil
	case FormatYAML:
		return yaml.JSONToYAML(js)
	default:
		return nil, fmt.Errorf("unknown format %q", f)
	}
}

func toJSON(data []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') && json.Valid(trimmed) {
		return trimmed, nil
	}
	return yaml.YAMLToJSON(data)
}

package glossary

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Format is a catalog file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFor picks the encoding from a file extension. Anything that is not
// .json is read as YAML.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

//go:embed iso13485.yaml
var defaultCatalog []byte

var parseDefault = sync.OnceValues(func() (*File, error) {
	return Parse(defaultCatalog, FormatYAML)
})

// Default returns the bundled ISO 13485 catalog.
func Default() *File {
	f, err := parseDefault()
	if err != nil {
		panic(fmt.Sprintf("bundled catalog is invalid: %v", err))
	}
	clone := *f
	clone.Entries = append([]Entry(nil), f.Entries...)
	return &clone
}

// Load reads and validates the catalog at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	f, err := Parse(data, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes data, checks it against the catalog schema and validates it.
func Parse(data []byte, format Format) (*File, error) {
	var raw any
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
	}

	doc, err := toJSONValue(raw)
	if err != nil {
		return nil, fmt.Errorf("normalize document: %w", err)
	}
	// Unknown keys would be dropped by the typed decode below, so the raw
	// document is checked before it.
	if err := validateDocument(doc); err != nil {
		return nil, &ValidationError{Problems: []string{err.Error()}}
	}

	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	if err := validateFile(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Marshal encodes f in the given format.
func Marshal(f *File, format Format) ([]byte, error) {
	if format == FormatJSON {
		return json.MarshalIndent(f, "", "  ")
	}
	return yaml.Marshal(f)
}

// Save validates f and writes it to path, choosing the format from the
// extension.
func Save(path string, f *File) error {
	if err := validateFile(f); err != nil {
		return err
	}
	data, err := Marshal(f, FormatFor(path))
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}

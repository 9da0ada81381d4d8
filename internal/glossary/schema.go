package glossary

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// fileSchema describes a catalog file document.
var fileSchema = map[string]any{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type":    "object",
	"properties": map[string]any{
		"block_id": map[string]any{
			"type":    "string",
			"pattern": "^[a-z0-9][a-z0-9-]*$",
		},
		"title":       map[string]any{"type": "string"},
		"description": map[string]any{"type": "string"},
		"entries": map[string]any{
			"type":     "array",
			"minItems": 2,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":            map[string]any{"type": "string", "minLength": 1},
					"term":          map[string]any{"type": "string", "minLength": 1},
					"definition":    map[string]any{"type": "string", "minLength": 1},
					"definition_id": map[string]any{"type": "string", "minLength": 1},
				},
				"required":             []any{"id", "term", "definition"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"block_id", "entries"},
	"additionalProperties": false,
}

var compiledFileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	const url = "schema://glossary-file.json"

	// The compiler wants a decoded JSON value, not Go literals.
	doc, err := toJSONValue(fileSchema)
	if err != nil {
		return nil, fmt.Errorf("encode catalog schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(url)
})

// validateDocument checks a decoded JSON document against the file schema.
func validateDocument(doc any) error {
	sch, err := compiledFileSchema()
	if err != nil {
		return fmt.Errorf("compile catalog schema: %w", err)
	}
	return sch.Validate(doc)
}

// validateFile runs the checks Parse applies to a decoded file: the schema
// first, then Validate.
func validateFile(f *File) error {
	doc, err := toJSONValue(f)
	if err != nil {
		return fmt.Errorf("normalize catalog: %w", err)
	}
	if err := validateDocument(doc); err != nil {
		return &ValidationError{Problems: []string{err.Error()}}
	}
	return Validate(f)
}

// toJSONValue round-trips v through encoding/json so that maps, slices and
// numbers have the shapes the schema validator expects.
func toJSONValue(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

package glossary

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	f := Default()
	assert.Equal(t, DefaultBlockID, f.BlockID)
	assert.Equal(t, "Quiz ISO 13485", f.Title)
	require.Len(t, f.Entries, 6)
	require.NoError(t, Validate(f))

	cat := f.Catalog()
	assert.Equal(t, 6, cat.Size())
	for i, d := range cat.Definitions {
		assert.Equal(t, cat.Terms[i].ID, d.CorrectTermID)
		assert.NotEqual(t, d.CorrectTermID, d.ID, "definition ids live in their own space")
	}

	// Callers get their own copy.
	f.Entries[0].Term = "changed"
	assert.NotEqual(t, "changed", Default().Entries[0].Term)
}

func TestDefinitionKey(t *testing.T) {
	assert.Equal(t, "def-3", Entry{ID: "3"}.DefinitionKey())
	assert.Equal(t, "custom", Entry{ID: "3", DefinitionID: "custom"}.DefinitionKey())
}

func TestParseYAMLAndJSON(t *testing.T) {
	yamlDoc := `
block_id: capitals
title: Capitals
entries:
  - id: fr
    term: France
    definition: Paris
  - id: it
    term: Italy
    definition: Rome
    definition_id: rome
`
	f, err := Parse([]byte(yamlDoc), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "capitals", f.BlockID)
	require.Len(t, f.Entries, 2)
	assert.Equal(t, "rome", f.Entries[1].DefinitionKey())

	jsonDoc := `{"block_id":"capitals","entries":[{"id":"fr","term":"France","definition":"Paris"},{"id":"it","term":"Italy","definition":"Rome"}]}`
	g, err := Parse([]byte(jsonDoc), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, f.Entries[0], g.Entries[0])
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed", "block_id: [unclosed"},
		{"missing entries", "block_id: x"},
		{"one entry", "block_id: x\nentries:\n  - {id: a, term: A, definition: a}"},
		{"bad block id", "block_id: Not Valid\nentries:\n  - {id: a, term: A, definition: a}\n  - {id: b, term: B, definition: b}"},
		{"unknown field", "block_id: x\ncolour: red\nentries:\n  - {id: a, term: A, definition: a}\n  - {id: b, term: B, definition: b}"},
		{"empty term", "block_id: x\nentries:\n  - {id: a, term: '', definition: a}\n  - {id: b, term: B, definition: b}"},
		{"duplicate id", "block_id: x\nentries:\n  - {id: a, term: A, definition: a}\n  - {id: a, term: B, definition: b}"},
		{"blank definition", "block_id: x\nentries:\n  - {id: a, term: A, definition: '  '}\n  - {id: b, term: B, definition: b}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), FormatYAML)
			assert.Error(t, err)
		})
	}
}

func TestValidateListsEveryProblem(t *testing.T) {
	f := &File{
		BlockID: "x",
		Entries: []Entry{
			{ID: "a", Term: "A", Definition: "one", DefinitionID: "d"},
			{ID: "a", Term: " ", Definition: "two", DefinitionID: "d"},
		},
	}
	err := Validate(f)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Problems, 3)
	assert.Contains(t, err.Error(), `duplicate id "a"`)
	assert.Contains(t, err.Error(), `duplicate definition id "d"`)
	assert.Contains(t, err.Error(), "term is blank")
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"catalog.yaml", "catalog.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, Save(path, Default()))

			loaded, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, Default(), loaded)
		})
	}

	data, err := os.ReadFile(filepath.Join(dir, "catalog.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"block_id": "iso-13485-matching-game"`)
}

func TestSaveRejectsInvalid(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "bad.yaml"), &File{BlockID: "x"})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestSaveRejectsWhatLoadWouldRefuse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiz.yaml")
	f := Default()
	f.BlockID = "My_Quiz"

	err := Save(path, f)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, err.Error(), "block_id")
	assert.NoFileExists(t, path)

	f.BlockID = Slug(f.BlockID)
	require.NoError(t, Save(path, f))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "my-quiz", loaded.BlockID)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFor("a/b.JSON"))
	assert.Equal(t, FormatYAML, FormatFor("a/b.yml"))
	assert.Equal(t, FormatYAML, FormatFor("noext"))
}

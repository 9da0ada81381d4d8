package glossary

import "github.com/abhisek/glossmatch/internal/matching"

// DefaultBlockID identifies the bundled ISO 13485 block to its host.
const DefaultBlockID = "iso-13485-matching-game"

// File is the on-disk form of a glossary catalog.
type File struct {
	BlockID     string  `yaml:"block_id" json:"block_id"`
	Title       string  `yaml:"title,omitempty" json:"title,omitempty"`
	Description string  `yaml:"description,omitempty" json:"description,omitempty"`
	Entries     []Entry `yaml:"entries" json:"entries"`
}

// Entry is one term together with the definition it should be matched to.
type Entry struct {
	ID           string `yaml:"id" json:"id"`
	Term         string `yaml:"term" json:"term"`
	Definition   string `yaml:"definition" json:"definition"`
	DefinitionID string `yaml:"definition_id,omitempty" json:"definition_id,omitempty"`
}

// DefinitionKey returns the id used for the entry's definition. Terms and
// definitions live in separate id spaces; correctness is carried by
// Definition.CorrectTermID, never by comparing ids.
func (e Entry) DefinitionKey() string {
	if e.DefinitionID != "" {
		return e.DefinitionID
	}
	return "def-" + e.ID
}

// Catalog converts the file into the catalog a game is built from.
func (f *File) Catalog() matching.Catalog {
	cat := matching.Catalog{
		BlockID:     f.BlockID,
		Title:       f.Title,
		Description: f.Description,
		Terms:       make([]matching.Term, 0, len(f.Entries)),
		Definitions: make([]matching.Definition, 0, len(f.Entries)),
	}
	for _, e := range f.Entries {
		cat.Terms = append(cat.Terms, matching.Term{ID: e.ID, Label: e.Term})
		cat.Definitions = append(cat.Definitions, matching.Definition{
			ID:            e.DefinitionKey(),
			Text:          e.Definition,
			CorrectTermID: e.ID,
		})
	}
	return cat
}

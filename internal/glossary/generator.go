package glossary

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/abhisek/glossmatch/internal/llm"
)

const (
	defaultGeneratedEntries = 6
	maxGeneratedEntries     = 12
	generatorMaxTokens      = 2048
)

// generatedCatalogSchema is the structured output requested from the model.
// Every property is required and additionalProperties is false so it is
// accepted by providers running in strict mode.
var generatedCatalogSchema = &llm.Schema{
	Name:        "glossary-catalog",
	Description: "A glossary of terms, each paired with exactly one definition, for a term/definition matching quiz.",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":       map[string]any{"type": "string", "description": "Short quiz title"},
			"description": map[string]any{"type": "string", "description": "One sentence describing the quiz"},
			"entries": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"term":       map[string]any{"type": "string", "description": "The term, a few words at most"},
						"definition": map[string]any{"type": "string", "description": "A definition that fits this term and no other in the list"},
					},
					"required":             []any{"term", "definition"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"title", "description", "entries"},
		"additionalProperties": false,
	},
}

const generatorSystemPrompt = `You write glossary quizzes. Each entry is a term and its definition.
Definitions must be unambiguous: every definition must fit exactly one term in the list.
Never repeat the term inside its own definition. Write in the language requested.`

// GenerateOptions describes the catalog to ask for.
type GenerateOptions struct {
	Topic    string
	Language string // defaults to English
	Entries  int    // defaults to 6, capped at 12
	BlockID  string // defaults to a slug of the topic
}

// Generator asks a language model for a new catalog.
type Generator struct {
	provider llm.Provider
}

// NewGenerator returns a Generator backed by p.
func NewGenerator(p llm.Provider) *Generator {
	return &Generator{provider: p}
}

type generatedCatalog struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Entries     []struct {
		Term       string `json:"term"`
		Definition string `json:"definition"`
	} `json:"entries"`
}

// Generate produces a catalog on opts.Topic. The result passes Validate.
func (g *Generator) Generate(ctx context.Context, opts GenerateOptions) (*File, error) {
	topic := strings.TrimSpace(opts.Topic)
	if topic == "" {
		return nil, fmt.Errorf("generate catalog: topic is required")
	}
	n := opts.Entries
	if n <= 0 {
		n = defaultGeneratedEntries
	}
	n = min(n, maxGeneratedEntries)
	lang := opts.Language
	if lang == "" {
		lang = "English"
	}

	prompt := fmt.Sprintf("Write a glossary quiz about %q with exactly %d entries, in %s.", topic, n, lang)
	resp, err := g.provider.Generate(llm.WithPurpose(ctx, "catalog"), llm.Request{
		System:      generatorSystemPrompt,
		Messages:    []llm.Message{llm.UserMessage(prompt)},
		Schema:      generatedCatalogSchema,
		MaxTokens:   generatorMaxTokens,
		Temperature: 0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("generate catalog: %w", err)
	}

	var out generatedCatalog
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("decode generated catalog: %w", err)
	}

	blockID := opts.BlockID
	if blockID == "" {
		blockID = Slug(topic)
	}
	f := &File{
		BlockID:     blockID,
		Title:       strings.TrimSpace(out.Title),
		Description: strings.TrimSpace(out.Description),
	}
	for i, e := range out.Entries {
		if i == n {
			break
		}
		f.Entries = append(f.Entries, Entry{
			ID:         strconv.Itoa(i + 1),
			Term:       strings.TrimSpace(e.Term),
			Definition: strings.TrimSpace(e.Definition),
		})
	}

	if err := validateFile(f); err != nil {
		return nil, fmt.Errorf("generated catalog: %w", err)
	}
	return f, nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slug turns s into a block id: lower case ASCII letters, digits and dashes.
func Slug(s string) string {
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
	if slug == "" {
		return "glossary"
	}
	return slug
}

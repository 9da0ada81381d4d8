package glossary

import (
	"fmt"
	"strings"
)

// ValidationError lists every problem found in a catalog.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid catalog: " + strings.Join(e.Problems, "; ")
}

// Validate checks the semantic rules a schema cannot express: ids must be
// unique and text must not be blank.
func Validate(f *File) error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(f.BlockID) == "" {
		add("block_id is required")
	}
	if len(f.Entries) < 2 {
		add("at least 2 entries are required, got %d", len(f.Entries))
	}

	termIDs := make(map[string]bool, len(f.Entries))
	defIDs := make(map[string]bool, len(f.Entries))
	for i, e := range f.Entries {
		switch {
		case strings.TrimSpace(e.ID) == "":
			add("entry %d: id is required", i+1)
		case termIDs[e.ID]:
			add("entry %d: duplicate id %q", i+1, e.ID)
		}
		termIDs[e.ID] = true

		if key := e.DefinitionKey(); defIDs[key] {
			add("entry %d: duplicate definition id %q", i+1, key)
		} else {
			defIDs[key] = true
		}

		if strings.TrimSpace(e.Term) == "" {
			add("entry %d: term is blank", i+1)
		}
		if strings.TrimSpace(e.Definition) == "" {
			add("entry %d: definition is blank", i+1)
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

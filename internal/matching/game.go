package matching

import (
	"math/rand/v2"
	"slices"
)

// Option configures a Game.
type Option func(*Game)

// WithNotifier sets the sink for completion events.
func WithNotifier(n Notifier) Option {
	return func(g *Game) {
		if n != nil {
			g.notifier = n
		}
	}
}

// WithRand sets the random source used for shuffling. Tests pass a seeded
// generator to get a reproducible display order.
func WithRand(r *rand.Rand) Option {
	return func(g *Game) {
		if r != nil {
			g.rng = r
		}
	}
}

// Game owns the quiz state for one catalog. It is mutated only through its
// methods and is meant to be driven from a single event loop.
type Game struct {
	catalog  Catalog
	notifier Notifier
	rng      *rand.Rand

	terms       []Term
	definitions []Definition
	defByID     map[string]Definition
	termByID    map[string]Term

	// matches keeps insertion order so the presentation layer can assign a
	// stable colour per pair.
	matches []Match

	attempts    int
	lastResult  *AttemptResult
	completed   bool
	showSuccess bool

	selectedTerm string
	draggedTerm  string
}

// New creates a game over cat with both columns shuffled.
func New(cat Catalog, opts ...Option) *Game {
	g := &Game{
		catalog:  cat,
		notifier: nopNotifier{},
		defByID:  make(map[string]Definition, len(cat.Definitions)),
		termByID: make(map[string]Term, len(cat.Terms)),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = newRand()
	}

	for _, d := range cat.Definitions {
		g.defByID[d.ID] = d
	}
	for _, t := range cat.Terms {
		g.termByID[t.ID] = t
	}

	g.shuffleTerms()
	g.shuffleDefinitions()
	return g
}

// ProposeMatch pairs termID with definitionID, first dropping any existing
// match that uses either id.
func (g *Game) ProposeMatch(termID, definitionID string) {
	g.matches = slices.DeleteFunc(g.matches, func(m Match) bool {
		return m.TermID == termID || m.DefinitionID == definitionID
	})
	g.matches = append(g.matches, Match{TermID: termID, DefinitionID: definitionID})
}

// RemoveMatch deletes the exact pair if present.
func (g *Game) RemoveMatch(termID, definitionID string) {
	g.matches = slices.DeleteFunc(g.matches, func(m Match) bool {
		return m.TermID == termID && m.DefinitionID == definitionID
	})
}

// Submit scores the current matches. It returns an *IncompleteError and
// leaves the state untouched unless every term is matched.
func (g *Game) Submit() (AttemptResult, error) {
	if len(g.matches) != len(g.terms) {
		return AttemptResult{}, &IncompleteError{Matched: len(g.matches), Required: len(g.terms)}
	}

	var res AttemptResult
	for _, m := range g.matches {
		if d, ok := g.defByID[m.DefinitionID]; ok && d.CorrectTermID == m.TermID {
			res.Correct++
		} else {
			res.Incorrect++
		}
	}

	g.attempts++
	g.lastResult = &res

	if res.Correct == len(g.terms) {
		g.completed = true
		g.showSuccess = true
		g.notifier.NotifyCompletion(CompletionEvent{
			Type:      CompletionEventType,
			BlockID:   g.catalog.BlockID,
			Completed: true,
			Score:     res.Correct,
			MaxScore:  len(g.terms),
			Attempts:  g.attempts,
		})
	}
	return res, nil
}

// DismissSuccess clears the transient success flag.
func (g *Game) DismissSuccess() {
	g.showSuccess = false
}

// Reset clears the board and reshuffles the definitions. Attempts and the
// completion flag carry over.
func (g *Game) Reset() {
	g.clearBoard()
	g.shuffleDefinitions()
}

// Restart starts over: attempts and completion are cleared and both
// columns are reshuffled.
func (g *Game) Restart() {
	g.clearBoard()
	g.attempts = 0
	g.completed = false
	g.showSuccess = false
	g.shuffleTerms()
	g.shuffleDefinitions()
}

func (g *Game) clearBoard() {
	g.matches = nil
	g.lastResult = nil
	g.selectedTerm = ""
	g.draggedTerm = ""
}

func (g *Game) shuffleTerms() {
	g.terms = slices.Clone(g.catalog.Terms)
	Shuffle(g.rng, g.terms)
}

func (g *Game) shuffleDefinitions() {
	g.definitions = slices.Clone(g.catalog.Definitions)
	Shuffle(g.rng, g.definitions)
}

// SelectTerm toggles the pending term selection.
func (g *Game) SelectTerm(termID string) {
	if g.selectedTerm == termID {
		g.selectedTerm = ""
		return
	}
	g.selectedTerm = termID
}

// SelectDefinition pairs the pending term with definitionID. It reports
// whether a match was made.
func (g *Game) SelectDefinition(definitionID string) bool {
	if g.selectedTerm == "" {
		return false
	}
	g.ProposeMatch(g.selectedTerm, definitionID)
	g.selectedTerm = ""
	return true
}

// BeginDrag records termID as the drag source.
func (g *Game) BeginDrag(termID string) {
	g.draggedTerm = termID
}

// Drop pairs the drag source with definitionID. It reports whether a drag
// was in progress.
func (g *Game) Drop(definitionID string) bool {
	if g.draggedTerm == "" {
		return false
	}
	g.ProposeMatch(g.draggedTerm, definitionID)
	g.draggedTerm = ""
	return true
}

// Catalog returns the catalog the game was built from.
func (g *Game) Catalog() Catalog { return g.catalog }

// Terms returns the terms in display order.
func (g *Game) Terms() []Term { return slices.Clone(g.terms) }

// Definitions returns the definitions in display order.
func (g *Game) Definitions() []Definition { return slices.Clone(g.definitions) }

// Matches returns the current matches in the order they were made.
func (g *Game) Matches() []Match { return slices.Clone(g.matches) }

// MatchedDefinition returns the definition paired with termID.
func (g *Game) MatchedDefinition(termID string) (string, bool) {
	for _, m := range g.matches {
		if m.TermID == termID {
			return m.DefinitionID, true
		}
	}
	return "", false
}

// MatchedTerm returns the term paired with definitionID.
func (g *Game) MatchedTerm(definitionID string) (string, bool) {
	for _, m := range g.matches {
		if m.DefinitionID == definitionID {
			return m.TermID, true
		}
	}
	return "", false
}

// MatchIndex returns the position of the match containing termID, or -1.
func (g *Game) MatchIndex(termID string) int {
	return slices.IndexFunc(g.matches, func(m Match) bool { return m.TermID == termID })
}

// TermLabel returns the label for termID, or "" if unknown.
func (g *Game) TermLabel(termID string) string {
	return g.termByID[termID].Label
}

// Attempts returns the number of scored submissions.
func (g *Game) Attempts() int { return g.attempts }

// LastResult returns the most recent score, if any.
func (g *Game) LastResult() (AttemptResult, bool) {
	if g.lastResult == nil {
		return AttemptResult{}, false
	}
	return *g.lastResult, true
}

// Completed reports whether a perfect score has been reached.
func (g *Game) Completed() bool { return g.completed }

// ShowingSuccess reports whether the success banner should be visible.
func (g *Game) ShowingSuccess() bool { return g.showSuccess }

// SelectedTerm returns the pending term selection, or "".
func (g *Game) SelectedTerm() string { return g.selectedTerm }

// DraggedTerm returns the drag source, or "".
func (g *Game) DraggedTerm() string { return g.draggedTerm }

// Progress returns the number of matched terms and the total.
func (g *Game) Progress() (matched, total int) {
	return len(g.matches), len(g.terms)
}

// CanSubmit reports whether Submit would score rather than fail.
func (g *Game) CanSubmit() bool {
	return len(g.matches) == len(g.terms)
}

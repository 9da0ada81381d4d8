package matching

import "time"

// SuccessBannerDuration is how long the presentation layer keeps the
// success banner up after a perfect submission.
const SuccessBannerDuration = 3 * time.Second

// Term is a glossary word the learner has to place.
type Term struct {
	ID    string
	Label string
}

// Definition is the explanatory text a term should be paired with.
type Definition struct {
	ID            string
	Text          string
	CorrectTermID string
}

// Match is a user-proposed pairing of a term and a definition.
type Match struct {
	TermID       string
	DefinitionID string
}

// AttemptResult is the score of one submission.
type AttemptResult struct {
	Correct   int
	Incorrect int
}

// Total returns the number of scored matches.
func (r AttemptResult) Total() int {
	return r.Correct + r.Incorrect
}

// Catalog is the fixed set of terms and definitions a game is built from.
type Catalog struct {
	BlockID     string
	Title       string
	Description string
	Terms       []Term
	Definitions []Definition
}

// Size returns the number of terms, which is also the perfect score.
func (c Catalog) Size() int {
	return len(c.Terms)
}

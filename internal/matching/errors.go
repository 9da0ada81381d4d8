package matching

import (
	"errors"
	"fmt"
)

// ErrIncomplete is returned by Submit when not every term has a match.
var ErrIncomplete = errors.New("all terms must be matched before checking")

// IncompleteError reports how far the learner got before submitting.
type IncompleteError struct {
	Matched  int
	Required int
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("%v (%d/%d matched)", ErrIncomplete, e.Matched, e.Required)
}

func (e *IncompleteError) Is(target error) bool {
	return target == ErrIncomplete
}

package matching

// dismissSuccessMsg hides the success banner. seq guards against a tick
// from an earlier completion closing a newer banner.
type dismissSuccessMsg struct {
	seq int
}

// attemptSavedMsg reports the outcome of persisting an attempt.
type attemptSavedMsg struct {
	Err error
}

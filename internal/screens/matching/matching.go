package matching

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	quiz "github.com/abhisek/glossmatch/internal/matching"
	"github.com/abhisek/glossmatch/internal/screen"
	"github.com/abhisek/glossmatch/internal/store"
	"github.com/abhisek/glossmatch/internal/ui/layout"
)

type column int

const (
	termsColumn column = iota
	definitionsColumn
)

// Options wires a quiz screen to the rest of the app. Everything except
// Catalog is optional.
type Options struct {
	Catalog  quiz.Catalog
	Repo     store.EventRepo
	Notifier quiz.Notifier
	Rand     *rand.Rand
	Log      *zap.Logger

	// OnSession is called with the new session id each time a game starts.
	OnSession func(id string)
}

// MatchingScreen runs one matching quiz.
type MatchingScreen struct {
	opts      Options
	log       *zap.Logger
	game      *quiz.Game
	sessionID string

	focus      column
	termCursor int
	defCursor  int

	// alert blocks input until dismissed by any key.
	alert     string
	bannerSeq int
	saveErr   string
}

var _ screen.Screen = (*MatchingScreen)(nil)
var _ screen.KeyHintProvider = (*MatchingScreen)(nil)
var _ screen.StatusProvider = (*MatchingScreen)(nil)
var _ screen.KeyCapturer = (*MatchingScreen)(nil)

// New creates a quiz screen over opts.Catalog.
func New(opts Options) *MatchingScreen {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	gameOpts := []quiz.Option{quiz.WithNotifier(opts.Notifier)}
	if opts.Rand != nil {
		gameOpts = append(gameOpts, quiz.WithRand(opts.Rand))
	}
	return &MatchingScreen{
		opts:      opts,
		log:       log.With(zap.String("block_id", opts.Catalog.BlockID)),
		game:      quiz.New(opts.Catalog, gameOpts...),
		sessionID: uuid.NewString(),
	}
}

func (s *MatchingScreen) Init() tea.Cmd {
	s.announceSession()
	return nil
}

func (s *MatchingScreen) Title() string {
	if s.opts.Catalog.Title != "" {
		return s.opts.Catalog.Title
	}
	return "Matching quiz"
}

func (s *MatchingScreen) Status() string {
	status := fmt.Sprintf("Attempts: %d", s.game.Attempts())
	if s.game.Completed() {
		status = "✓ " + status
	}
	return status
}

func (s *MatchingScreen) CapturesKeys() bool {
	return s.alert != ""
}

func (s *MatchingScreen) KeyHints() []layout.KeyHint {
	if s.alert != "" {
		return []layout.KeyHint{{Key: "any key", Description: "OK"}}
	}
	hints := []layout.KeyHint{
		hint(keys.Switch),
		hint(keys.Up),
		hint(keys.Select),
		hint(keys.Mark),
		hint(keys.Drop),
		hint(keys.Remove),
		hint(keys.Submit),
		hint(keys.Reset),
		hint(keys.Restart),
		{Key: "Esc", Description: "Back"},
	}
	return hints
}

func hint(b key.Binding) layout.KeyHint {
	h := b.Help()
	return layout.KeyHint{Key: h.Key, Description: h.Desc}
}

// SessionID returns the id of the game on screen.
func (s *MatchingScreen) SessionID() string { return s.sessionID }

func (s *MatchingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case dismissSuccessMsg:
		if msg.seq == s.bannerSeq {
			s.game.DismissSuccess()
		}
		return s, nil

	case attemptSavedMsg:
		if msg.Err != nil {
			s.log.Warn("persist attempt", zap.Error(msg.Err))
			s.saveErr = "History unavailable: attempt not saved"
		}
		return s, nil

	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *MatchingScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if s.alert != "" {
		s.alert = ""
		return nil
	}

	terms := s.game.Terms()
	defs := s.game.Definitions()

	switch {
	case key.Matches(msg, keys.Up):
		s.moveCursor(-1, len(terms), len(defs))
	case key.Matches(msg, keys.Down):
		s.moveCursor(1, len(terms), len(defs))
	case key.Matches(msg, keys.Switch):
		s.toggleFocus()

	case key.Matches(msg, keys.Select):
		if s.focus == termsColumn {
			if t, ok := at(terms, s.termCursor); ok {
				s.game.SelectTerm(t.ID)
				if s.game.SelectedTerm() != "" {
					s.focus = definitionsColumn
				}
			}
			return nil
		}
		if d, ok := at(defs, s.defCursor); ok && s.game.SelectDefinition(d.ID) {
			s.afterMatch(terms)
		}

	case key.Matches(msg, keys.Mark):
		if s.focus == termsColumn {
			if t, ok := at(terms, s.termCursor); ok {
				s.game.BeginDrag(t.ID)
				s.focus = definitionsColumn
			}
		}

	case key.Matches(msg, keys.Drop):
		if s.focus == definitionsColumn {
			if d, ok := at(defs, s.defCursor); ok && s.game.Drop(d.ID) {
				s.afterMatch(terms)
			}
		}

	case key.Matches(msg, keys.Remove):
		s.removeFocused(terms, defs)

	case key.Matches(msg, keys.Submit):
		return s.submit()

	case key.Matches(msg, keys.Reset):
		s.game.Reset()
		s.resetCursors()

	case key.Matches(msg, keys.Restart):
		s.restart()
	}
	return nil
}

func at[T any](items []T, i int) (T, bool) {
	if i < 0 || i >= len(items) {
		var zero T
		return zero, false
	}
	return items[i], true
}

func (s *MatchingScreen) moveCursor(step, nTerms, nDefs int) {
	if s.focus == termsColumn {
		s.termCursor = clamp(s.termCursor+step, nTerms)
		return
	}
	s.defCursor = clamp(s.defCursor+step, nDefs)
}

func clamp(i, n int) int {
	return min(max(i, 0), max(n-1, 0))
}

func (s *MatchingScreen) toggleFocus() {
	if s.focus == termsColumn {
		s.focus = definitionsColumn
	} else {
		s.focus = termsColumn
	}
}

// afterMatch sends focus back to the terms column, on the next term still
// waiting for a definition.
func (s *MatchingScreen) afterMatch(terms []quiz.Term) {
	s.focus = termsColumn
	for i := range terms {
		j := (s.termCursor + i) % len(terms)
		if _, matched := s.game.MatchedDefinition(terms[j].ID); !matched {
			s.termCursor = j
			return
		}
	}
}

func (s *MatchingScreen) removeFocused(terms []quiz.Term, defs []quiz.Definition) {
	if s.focus == termsColumn {
		if t, ok := at(terms, s.termCursor); ok {
			if defID, matched := s.game.MatchedDefinition(t.ID); matched {
				s.game.RemoveMatch(t.ID, defID)
			}
		}
		return
	}
	if d, ok := at(defs, s.defCursor); ok {
		if termID, matched := s.game.MatchedTerm(d.ID); matched {
			s.game.RemoveMatch(termID, d.ID)
		}
	}
}

func (s *MatchingScreen) submit() tea.Cmd {
	matches := s.game.Matches()
	res, err := s.game.Submit()
	if err != nil {
		var incomplete *quiz.IncompleteError
		if errors.As(err, &incomplete) {
			s.alert = fmt.Sprintf("Please match every term before checking! (%d/%d matched)",
				incomplete.Matched, incomplete.Required)
		} else {
			s.alert = err.Error()
		}
		return nil
	}

	s.log.Debug("attempt scored",
		zap.String("session_id", s.sessionID),
		zap.Int("attempt", s.game.Attempts()),
		zap.Int("correct", res.Correct),
		zap.Int("incorrect", res.Incorrect))

	cmds := []tea.Cmd{s.persistAttempt(res, matches)}
	if s.game.ShowingSuccess() {
		s.bannerSeq++
		seq := s.bannerSeq
		cmds = append(cmds, tea.Tick(quiz.SuccessBannerDuration, func(time.Time) tea.Msg {
			return dismissSuccessMsg{seq: seq}
		}))
	}
	return tea.Batch(cmds...)
}

// persistAttempt records a scored submission in the history store.
func (s *MatchingScreen) persistAttempt(res quiz.AttemptResult, matches []quiz.Match) tea.Cmd {
	if s.opts.Repo == nil {
		return nil
	}
	data := store.AttemptEventData{
		SessionID: s.sessionID,
		BlockID:   s.opts.Catalog.BlockID,
		Attempt:   s.game.Attempts(),
		Correct:   res.Correct,
		Incorrect: res.Incorrect,
		Completed: res.Correct == s.opts.Catalog.Size(),
		Matches:   make([]store.MatchPair, len(matches)),
	}
	for i, m := range matches {
		data.Matches[i] = store.MatchPair{TermID: m.TermID, DefinitionID: m.DefinitionID}
	}
	repo := s.opts.Repo
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return attemptSavedMsg{Err: repo.AppendAttemptEvent(ctx, data)}
	}
}

func (s *MatchingScreen) restart() {
	s.game.Restart()
	s.resetCursors()
	s.bannerSeq++
	s.saveErr = ""
	s.sessionID = uuid.NewString()
	s.announceSession()
}

func (s *MatchingScreen) resetCursors() {
	s.focus = termsColumn
	s.termCursor = 0
	s.defCursor = 0
	s.alert = ""
}

func (s *MatchingScreen) announceSession() {
	s.log.Info("quiz started", zap.String("session_id", s.sessionID))
	if s.opts.OnSession != nil {
		s.opts.OnSession(s.sessionID)
	}
}

package generate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/glossmatch/internal/glossary"
	"github.com/abhisek/glossmatch/internal/matching"
	"github.com/abhisek/glossmatch/internal/router"
	"github.com/abhisek/glossmatch/internal/screen"
	"github.com/abhisek/glossmatch/internal/ui/components"
	"github.com/abhisek/glossmatch/internal/ui/layout"
	"github.com/abhisek/glossmatch/internal/ui/theme"
)

const generateTimeout = 2 * time.Minute

type field int

const (
	topicField field = iota
	languageField
	entriesField
	fieldCount
)

// CatalogGenerator produces a new catalog for a topic.
type CatalogGenerator interface {
	Generate(ctx context.Context, opts glossary.GenerateOptions) (*glossary.File, error)
}

// QuizFactory builds the quiz screen for a generated catalog.
type QuizFactory func(cat matching.Catalog) screen.Screen

type generatedMsg struct {
	File *glossary.File
	Err  error
}

var keys = struct {
	Next, Prev, Submit, Cancel key.Binding
}{
	Next:   key.NewBinding(key.WithKeys("tab", "down")),
	Prev:   key.NewBinding(key.WithKeys("shift+tab", "up")),
	Submit: key.NewBinding(key.WithKeys("enter")),
	Cancel: key.NewBinding(key.WithKeys("esc")),
}

// GenerateScreen asks for a topic and has a language model write a quiz.
type GenerateScreen struct {
	gen    CatalogGenerator
	quiz   QuizFactory
	log    *zap.Logger
	inputs []components.TextInput
	focus  field

	pending bool
	errMsg  string
}

var _ screen.Screen = (*GenerateScreen)(nil)
var _ screen.KeyHintProvider = (*GenerateScreen)(nil)
var _ screen.KeyCapturer = (*GenerateScreen)(nil)

// New creates the screen. quiz is used to open the generated catalog.
func New(gen CatalogGenerator, quiz QuizFactory, log *zap.Logger) *GenerateScreen {
	if log == nil {
		log = zap.NewNop()
	}
	inputs := []components.TextInput{
		components.NewTextInput("Topic", "e.g. ISO 14971 risk management", false, 120),
		components.NewTextInput("Language", "English", false, 40),
		components.NewTextInput("Entries", "6", true, 2),
	}
	inputs[languageField].Blur()
	inputs[entriesField].Blur()
	return &GenerateScreen{gen: gen, quiz: quiz, log: log, inputs: inputs}
}

func (s *GenerateScreen) Init() tea.Cmd {
	return s.inputs[s.focus].Focus()
}

func (s *GenerateScreen) Title() string { return "Generate quiz" }

// CapturesKeys keeps Esc for this screen so it can cancel cleanly.
func (s *GenerateScreen) CapturesKeys() bool { return true }

func (s *GenerateScreen) KeyHints() []layout.KeyHint {
	if s.pending {
		return []layout.KeyHint{{Key: "", Description: "Waiting for the model..."}}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Generate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *GenerateScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		s.pending = false
		if msg.Err != nil {
			s.log.Warn("catalog generation failed", zap.Error(msg.Err))
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.log.Info("catalog generated",
			zap.String("block_id", msg.File.BlockID),
			zap.Int("entries", len(msg.File.Entries)))
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: s.quiz(msg.File.Catalog())}
		}

	case tea.KeyPressMsg:
		if s.pending {
			return s, nil
		}
		switch {
		case key.Matches(msg, keys.Cancel):
			return s, router.Pop
		case key.Matches(msg, keys.Next):
			return s, s.setFocus((s.focus + 1) % fieldCount)
		case key.Matches(msg, keys.Prev):
			return s, s.setFocus((s.focus + fieldCount - 1) % fieldCount)
		case key.Matches(msg, keys.Submit):
			return s, s.submit()
		}
	}

	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return s, cmd
}

func (s *GenerateScreen) setFocus(f field) tea.Cmd {
	s.inputs[s.focus].Blur()
	s.focus = f
	return s.inputs[f].Focus()
}

func (s *GenerateScreen) submit() tea.Cmd {
	opts := glossary.GenerateOptions{
		Topic:    s.inputs[topicField].Value(),
		Language: s.inputs[languageField].Value(),
	}
	if opts.Topic == "" {
		s.errMsg = "Enter a topic first"
		return nil
	}
	n, err := s.inputs[entriesField].IntValue(0)
	if err != nil {
		s.errMsg = fmt.Sprintf("Entries must be a number: %v", err)
		return nil
	}
	opts.Entries = n

	s.pending = true
	s.errMsg = ""
	gen := s.gen
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
		defer cancel()
		f, err := gen.Generate(ctx, opts)
		return generatedMsg{File: f, Err: err}
	}
}

func (s *GenerateScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, theme.Title.Width(cw).Render("Generate a new quiz"))
	sections = append(sections, theme.Subtitle.Width(cw).Render("A language model writes the terms and definitions"))
	for _, in := range s.inputs {
		sections = append(sections, in.View())
	}

	switch {
	case s.pending:
		sections = append(sections, theme.Warning.Render("Generating..."))
	case s.errMsg != "":
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Width(cw).Render(s.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		components.Card(strings.Join(sections, "\n\n"), cw, theme.Primary))
}

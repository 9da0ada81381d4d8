package generate

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/glossmatch/internal/glossary"
	"github.com/abhisek/glossmatch/internal/matching"
	"github.com/abhisek/glossmatch/internal/router"
	"github.com/abhisek/glossmatch/internal/screen"
	"github.com/abhisek/glossmatch/internal/screens/placeholder"
)

type fakeGenerator struct {
	got  glossary.GenerateOptions
	file *glossary.File
	err  error
}

func (f *fakeGenerator) Generate(_ context.Context, opts glossary.GenerateOptions) (*glossary.File, error) {
	f.got = opts
	return f.file, f.err
}

func typeText(s *GenerateScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func TestGenerateOpensQuiz(t *testing.T) {
	gen := &fakeGenerator{file: glossary.Default()}
	var built matching.Catalog
	s := New(gen, func(cat matching.Catalog) screen.Screen {
		built = cat
		return placeholder.New("quiz", "")
	}, nil)
	s.Init()

	typeText(s, "Sterilization")
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	typeText(s, "x4")

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, s.pending)

	_, cmd = s.Update(cmd())
	assert.Equal(t, "Sterilization", gen.got.Topic)
	assert.Equal(t, 4, gen.got.Entries)
	assert.False(t, s.pending)

	require.NotNil(t, cmd)
	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "quiz", msg.Screen.Title())
	assert.Equal(t, glossary.DefaultBlockID, built.BlockID)
}

func TestGenerateRequiresTopic(t *testing.T) {
	s := New(&fakeGenerator{}, nil, nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Contains(t, s.View(100, 30), "Enter a topic first")
}

func TestGenerateShowsError(t *testing.T) {
	s := New(&fakeGenerator{err: errors.New("provider unavailable")}, nil, nil)
	typeText(s, "Biocompatibility")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)

	_, next := s.Update(cmd())
	assert.Nil(t, next)
	assert.Contains(t, s.View(100, 30), "provider unavailable")
}

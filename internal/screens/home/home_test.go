package home

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/glossmatch/internal/glossary"
	"github.com/abhisek/glossmatch/internal/matching"
	"github.com/abhisek/glossmatch/internal/router"
	"github.com/abhisek/glossmatch/internal/screen"
	"github.com/abhisek/glossmatch/internal/screens/placeholder"
	"github.com/abhisek/glossmatch/internal/store"
)

func newHome(repo store.EventRepo) (*HomeScreen, *[]matching.Catalog) {
	var opened []matching.Catalog
	h := New(Deps{
		Catalog: glossary.Default().Catalog(),
		NewQuiz: func(cat matching.Catalog) screen.Screen {
			opened = append(opened, cat)
			return placeholder.New("quiz", "")
		},
		Repo: repo,
	})
	return h, &opened
}

func pushed(t *testing.T, cmd tea.Cmd) screen.Screen {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	return msg.Screen
}

func TestStartQuiz(t *testing.T) {
	h, opened := newHome(nil)
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	s := pushed(t, cmd)
	assert.Equal(t, "quiz", s.Title())
	require.Len(t, *opened, 1)
	assert.Equal(t, glossary.DefaultBlockID, (*opened)[0].BlockID)
}

func TestGenerateDisabledWithoutProvider(t *testing.T) {
	h, _ := newHome(nil)
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 2, h.menu.Selected, "the generate entry is skipped")
	assert.Contains(t, h.View(120, 40), "Set an LLM API key")

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Equal(t, "History", pushed(t, cmd).Title())
}

func TestStatsLoadedFromStore(t *testing.T) {
	name := strings.NewReplacer("/", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	defer st.Close()

	repo := st.EventRepo()
	ctx := context.Background()
	require.NoError(t, repo.AppendAttemptEvent(ctx, store.AttemptEventData{
		SessionID: "s", BlockID: glossary.DefaultBlockID, Attempt: 1, Correct: 6, Completed: true,
	}))
	require.NoError(t, repo.AppendCompletionEvent(ctx, store.CompletionEventData{
		BlockID: glossary.DefaultBlockID, Score: 6, MaxScore: 6, Attempts: 1,
	}))

	h, _ := newHome(repo)
	h.Update(h.Init()())
	require.NotNil(t, h.stats)
	assert.Equal(t, 1, h.stats.Completions)
	assert.Contains(t, h.View(120, 40), "1 COMPLETED")
}

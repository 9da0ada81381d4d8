package history

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/glossmatch/internal/router"
	"github.com/abhisek/glossmatch/internal/store"
)

func seededRepo(t *testing.T) store.EventRepo {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	repo := st.EventRepo()
	ctx := context.Background()
	require.NoError(t, repo.AppendAttemptEvent(ctx, store.AttemptEventData{
		SessionID: "s1", BlockID: "iso", Attempt: 1, Correct: 4, Incorrect: 2,
		Matches: []store.MatchPair{{TermID: "1", DefinitionID: "def-2"}},
	}))
	require.NoError(t, repo.AppendAttemptEvent(ctx, store.AttemptEventData{
		SessionID: "s1", BlockID: "iso", Attempt: 2, Correct: 6, Completed: true,
	}))
	require.NoError(t, repo.AppendCompletionEvent(ctx, store.CompletionEventData{
		Source: store.SourceLocal, SessionID: "s1", BlockID: "iso", Score: 6, MaxScore: 6, Attempts: 2,
	}))
	return repo
}

func loaded(t *testing.T, repo store.EventRepo) *HistoryScreen {
	t.Helper()
	s := New(repo)
	s.Update(s.Init()())
	require.True(t, s.loaded)
	require.Empty(t, s.errMsg)
	return s
}

func TestHistoryLoadsStatsAndEvents(t *testing.T) {
	s := loaded(t, seededRepo(t))

	require.Len(t, s.stats, 1)
	assert.Equal(t, 1, s.stats[0].Completions)
	assert.Len(t, s.completions, 1)
	assert.Len(t, s.attempts, 2)

	view := s.View(120, 40)
	assert.Contains(t, view, "iso")
	assert.Contains(t, view, "6/6 in 2 attempts")
}

func TestHistoryTabsAndExpand(t *testing.T) {
	s := loaded(t, seededRepo(t))

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	assert.Equal(t, attemptsTab, s.tab)

	s.Update(tea.KeyPressMsg{Code: 'j', Text: "j"})
	assert.Equal(t, 1, s.selected)
	s.Update(tea.KeyPressMsg{Code: 'j', Text: "j"})
	assert.Equal(t, 1, s.selected, "cursor stops at the last row")

	// Newest first: row 1 is the first attempt, which has a stored match.
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Contains(t, s.View(120, 40), "term 1 → def-2")
}

func TestHistoryEmptyAndBack(t *testing.T) {
	name := strings.NewReplacer("/", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	defer st.Close()

	s := loaded(t, st.EventRepo())
	assert.Contains(t, s.View(100, 30), "No quizzes played yet")

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.Equal(t, router.PopScreenMsg{}, cmd())
}

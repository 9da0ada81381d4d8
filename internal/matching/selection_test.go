package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectTerm_Toggles(t *testing.T) {
	g, _ := newTestGame(t, 3)

	g.SelectTerm("1")
	assert.Equal(t, "1", g.SelectedTerm())

	g.SelectTerm("2")
	assert.Equal(t, "2", g.SelectedTerm())

	g.SelectTerm("2")
	assert.Equal(t, "", g.SelectedTerm())
}

func TestSelectDefinition(t *testing.T) {
	g, _ := newTestGame(t, 3)

	assert.False(t, g.SelectDefinition("def-1"), "no pending term")
	assert.Empty(t, g.Matches())

	g.SelectTerm("2")
	assert.True(t, g.SelectDefinition("def-1"))
	assert.Equal(t, []Match{{"2", "def-1"}}, g.Matches())
	assert.Equal(t, "", g.SelectedTerm())
}

func TestDragAndDrop(t *testing.T) {
	g, _ := newTestGame(t, 3)

	assert.False(t, g.Drop("def-2"))

	g.BeginDrag("3")
	assert.Equal(t, "3", g.DraggedTerm())
	assert.True(t, g.Drop("def-2"))
	assert.Equal(t, []Match{{"3", "def-2"}}, g.Matches())
	assert.Equal(t, "", g.DraggedTerm())

	// Dropping a second term on the same definition steals it.
	g.BeginDrag("1")
	g.Drop("def-2")
	assert.Equal(t, []Match{{"1", "def-2"}}, g.Matches())
}

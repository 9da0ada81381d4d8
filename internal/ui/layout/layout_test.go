package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestIsTooSmall(t *testing.T) {
	assert.True(t, IsTooSmall(79, 40))
	assert.True(t, IsTooSmall(120, 23))
	assert.False(t, IsTooSmall(80, 24))
}

func TestRenderHeaderContainsParts(t *testing.T) {
	h := RenderHeader("Quiz ISO 13485", "Attempts: 2", 100)
	assert.Contains(t, h, "glossmatch")
	assert.Contains(t, h, "Quiz ISO 13485")
	assert.Contains(t, h, "Attempts: 2")
}

func TestRenderFrameFillsHeight(t *testing.T) {
	header := RenderHeader("t", "", 80)
	footer := RenderFooter([]KeyHint{{Key: "q", Description: "Quit"}}, 80)
	frame := RenderFrame(header, "body", footer, 80, 30)
	assert.Equal(t, 30, lipgloss.Height(frame))
	assert.True(t, strings.Contains(frame, "Quit"))
}

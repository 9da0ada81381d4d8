package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/glossmatch/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default purple
	MascotCelebrating                      // Green, block completed before
)

const mascotIdle = `┌───┐   ┌─────┐
│ A │ ? │ ... │
└───┘   └─────┘`

const mascotCelebrating = `┌───┐   ┌─────┐
│ A │━━━│ ✓✓✓ │
└───┘   └─────┘`

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(v MascotVariant) string {
	art, fg := mascotIdle, theme.Primary
	if v == MascotCelebrating {
		art, fg = mascotCelebrating, theme.Success
	}
	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}

package components

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/glossmatch/internal/ui/theme"
)

// Button is a labelled action with its key shown in brackets.
type Button struct {
	Key     string
	Label   string
	Color   color.Color
	Enabled bool
}

// View renders the button; disabled buttons are greyed out.
func (b Button) View() string {
	bg := b.Color
	if !b.Enabled {
		bg = theme.Border
	}
	return lipgloss.NewStyle().
		Background(bg).
		Foreground(theme.Text).
		Bold(b.Enabled).
		Padding(0, 2).
		Render("[" + b.Key + "] " + b.Label)
}

// ButtonRow renders buttons side by side, centred in width.
func ButtonRow(buttons []Button, width int) string {
	views := make([]string, len(buttons))
	for i, b := range buttons {
		views[i] = b.View()
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(strings.Join(views, "  "))
}

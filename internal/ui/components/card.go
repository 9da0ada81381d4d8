package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/glossmatch/internal/ui/theme"
)

// ContentWidth is the inner width used by centred card layouts.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 64)
}

// Frame centres content inside a double border filling width x height.
func Frame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card draws content in a rounded box of width cw with the given border
// colour.
func Card(content string, cw int, border color.Color) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(cw-2).
		Padding(0, 1).
		Render(content)
}

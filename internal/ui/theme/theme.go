package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette
var (
	Primary   = lipgloss.Color("#667EEA") // Indigo
	Secondary = lipgloss.Color("#764BA2") // Plum
	Accent    = lipgloss.Color("#FF9800") // Orange
	Info      = lipgloss.Color("#2196F3") // Blue
	Success   = lipgloss.Color("#4CAF50") // Green
	Error     = lipgloss.Color("#F44336") // Red
	Highlight = lipgloss.Color("#FACC15") // Yellow
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgDark    = lipgloss.Color("#0F172A")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

// PairColors tints matched pairs so a term and its chosen definition can be
// spotted at a glance. Index by match order, modulo length.
var PairColors = []color.Color{
	lipgloss.Color("#38BDF8"),
	lipgloss.Color("#F472B6"),
	lipgloss.Color("#A3E635"),
	lipgloss.Color("#FB923C"),
	lipgloss.Color("#C084FC"),
	lipgloss.Color("#2DD4BF"),
	lipgloss.Color("#FACC15"),
	lipgloss.Color("#F87171"),
}

// PairColor returns the colour for the i-th match.
func PairColor(i int) color.Color {
	if i < 0 {
		return Border
	}
	return PairColors[i%len(PairColors)]
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	ColumnHeading = lipgloss.NewStyle().
			Bold(true).
			Foreground(Text).
			Underline(true)
)

// States
var (
	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Warning = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Success)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	Banner = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(Success).
		Foreground(Success).
		Bold(true).
		Align(lipgloss.Center).
		Padding(1, 4)
)

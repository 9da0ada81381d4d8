package matching

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/glossmatch/internal/ui/components"
	"github.com/abhisek/glossmatch/internal/ui/layout"
	"github.com/abhisek/glossmatch/internal/ui/theme"
)

func (s *MatchingScreen) View(width, height int) string {
	var top []string
	if desc := s.opts.Catalog.Description; desc != "" {
		top = append(top, theme.Subtitle.Width(width).Render(desc))
	}
	top = append(top, s.renderScoreLine(width))

	var bottom []string
	switch {
	case s.alert != "":
		bottom = append(bottom, s.renderAlert(width))
	case s.game.ShowingSuccess():
		bottom = append(bottom, s.renderBanner(width))
	}
	if s.saveErr != "" {
		bottom = append(bottom, lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Hint.Render(s.saveErr)))
	}
	bottom = append(bottom, s.renderButtons(width))

	topBlock := strings.Join(top, "\n")
	bottomBlock := strings.Join(bottom, "\n")
	columnsHeight := max(height-lipgloss.Height(topBlock)-lipgloss.Height(bottomBlock)-2, 3)

	return topBlock + "\n\n" + s.renderColumns(width, columnsHeight) + "\n" + bottomBlock
}

func (s *MatchingScreen) renderScoreLine(width int) string {
	matched, total := s.game.Progress()
	bar := components.ProgressBar{Label: "Matched", Done: matched, Total: total, Width: min(width/2, 48)}

	var parts []string
	parts = append(parts, theme.Body.Render(fmt.Sprintf("Attempts: %d", s.game.Attempts())))
	if res, ok := s.game.LastResult(); ok {
		parts = append(parts,
			theme.Correct.Render(fmt.Sprintf("✓ %d/%d correct", res.Correct, res.Total())),
			theme.Incorrect.Render(fmt.Sprintf("✗ %d incorrect", res.Incorrect)))
	}
	parts = append(parts, bar.View())
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(parts, "   "))
}

func (s *MatchingScreen) renderColumns(width, height int) string {
	gap := 2
	termWidth := max(width/3, 20)
	if layout.IsCompactWidth(width) {
		termWidth = max(width/4, 18)
	}
	defWidth := max(width-termWidth-gap-2, 30)

	termCards := s.termCards(termWidth)
	defCards := s.definitionCards(defWidth)

	left := heading("Terms", s.focus == termsColumn, termWidth) + "\n" +
		window(termCards, s.termCursor, height-1)
	right := heading("Definitions", s.focus == definitionsColumn, defWidth) + "\n" +
		window(defCards, s.defCursor, height-1)

	return lipgloss.JoinHorizontal(lipgloss.Top, " ", left, strings.Repeat(" ", gap), right)
}

func heading(label string, focused bool, width int) string {
	style := theme.ColumnHeading
	if focused {
		style = style.Foreground(theme.Primary)
	}
	return lipgloss.NewStyle().Width(width).Render(style.Render(label))
}

func (s *MatchingScreen) termCards(width int) []string {
	terms := s.game.Terms()
	cards := make([]string, len(terms))
	for i, t := range terms {
		focused := s.focus == termsColumn && i == s.termCursor
		border := theme.Border
		label := t.Label
		var note string

		if idx := s.game.MatchIndex(t.ID); idx >= 0 {
			border = theme.PairColor(idx)
			label = "● " + label
		}
		switch t.ID {
		case s.game.SelectedTerm():
			border = theme.Highlight
			note = "selected, pick a definition"
		case s.game.DraggedTerm():
			border = theme.Highlight
			note = "dragging, drop on a definition"
		}
		cards[i] = card(label, note, focused, border, width)
	}
	return cards
}

func (s *MatchingScreen) definitionCards(width int) []string {
	defs := s.game.Definitions()
	cards := make([]string, len(defs))
	for i, d := range defs {
		focused := s.focus == definitionsColumn && i == s.defCursor
		border := theme.Border
		var note string
		if termID, ok := s.game.MatchedTerm(d.ID); ok {
			border = theme.PairColor(s.game.MatchIndex(termID))
			note = "✓ Matched to: " + s.game.TermLabel(termID)
		}
		cards[i] = card(d.Text, note, focused, border, width)
	}
	return cards
}

func card(text, note string, focused bool, border color.Color, width int) string {
	body := theme.Body.Render(text)
	if focused {
		body = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("▸ " + text)
	}
	if note != "" {
		body += "\n" + lipgloss.NewStyle().Foreground(border).Italic(true).Render(note)
	}
	return components.Card(body, width, border)
}

// window stacks as many cards as fit in height, keeping cards[focus] in
// view.
func window(cards []string, focus, height int) string {
	if len(cards) == 0 {
		return ""
	}
	focus = clamp(focus, len(cards))
	heights := make([]int, len(cards))
	for i, c := range cards {
		heights[i] = lipgloss.Height(c)
	}

	start, used := 0, 0
	for i := 0; i <= focus; i++ {
		used += heights[i]
	}
	for used > height && start < focus {
		used -= heights[start]
		start++
	}
	end := focus + 1
	for end < len(cards) && used+heights[end] <= height {
		used += heights[end]
		end++
	}
	return strings.Join(cards[start:end], "\n")
}

func (s *MatchingScreen) renderAlert(width int) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(theme.Accent).
		Foreground(theme.Accent).
		Bold(true).
		Padding(0, 2).
		Render("⚠ " + s.alert)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
}

func (s *MatchingScreen) renderBanner(width int) string {
	n := s.game.Attempts()
	plural := "attempt"
	if n > 1 {
		plural = "attempts"
	}
	msg := fmt.Sprintf("🎉 Congratulations! 🎉\nCompleted in %d %s", n, plural)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Banner.Render(msg))
}

func (s *MatchingScreen) renderButtons(width int) string {
	matched, total := s.game.Progress()
	return components.ButtonRow([]components.Button{
		{Key: "s", Label: fmt.Sprintf("Check answers (%d/%d)", matched, total), Color: theme.Success, Enabled: s.game.CanSubmit()},
		{Key: "r", Label: "Reset", Color: theme.Accent, Enabled: true},
		{Key: "n", Label: "New game", Color: theme.Info, Enabled: true},
	}, width)
}

package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/glossmatch/internal/store"
	"github.com/abhisek/glossmatch/internal/ui/theme"
)

const titleFull = ` ┏━╸╻  ┏━┓┏━┓┏━┓┏┳┓┏━┓╺┳╸┏━╸╻ ╻
 ┃╺┓┃  ┃ ┃┗━┓┗━┓┃┃┃┣━┫ ┃ ┃  ┣━┫
 ┗━┛┗━╸┗━┛┗━┛┗━┛╹ ╹╹ ╹ ╹ ┗━╸╹ ╹`

const titleCompact = "G · L · O · S · S · M · A · T · C · H"

// renderTitle returns the title block and the quiz name under it.
func renderTitle(quizTitle string, cw int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	art := titleFull
	if compact {
		art = titleCompact
	}
	block := style.Render(art)
	if quizTitle != "" {
		block += "\n\n" + lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(quizTitle)
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// renderStatsBar renders the block history in a bordered box matching content width.
func renderStatsBar(stats *store.BlockStats, cw int, compact bool) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	if stats == nil {
		return statsBox(dim.Render("No history yet"), cw)
	}

	done := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	best := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	acc := lipgloss.NewStyle().Foreground(theme.Info).Bold(true)

	bestText := "-"
	if stats.BestAttempts > 0 {
		bestText = fmt.Sprintf("%d", stats.BestAttempts)
	}

	var line string
	if compact {
		line = fmt.Sprintf("%s %s %s",
			done.Render(fmt.Sprintf("✓%d", stats.Completions)),
			best.Render("★"+bestText),
			acc.Render(fmt.Sprintf("%.0f%%", stats.Accuracy()*100)))
	} else {
		line = fmt.Sprintf("%s  %s  %s",
			done.Render(fmt.Sprintf("✓ %d COMPLETED", stats.Completions)),
			best.Render("★ BEST "+bestText),
			acc.Render(fmt.Sprintf("%.0f%% ACCURACY", stats.Accuracy()*100)))
	}
	return statsBox(line, cw)
}

func statsBox(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(content)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderMenu renders each menu item as a fixed-width button, or as plain
// lines when there is no room for borders.
func renderMenu(items []string, selected int, cw int, disabled map[int]bool, compact bool) string {
	base := lipgloss.NewStyle().Width(buttonWidth).Align(lipgloss.Center).Padding(0, 1)
	if !compact {
		base = base.Border(lipgloss.RoundedBorder()).BorderForeground(theme.Border)
	}
	selectedBtn := base.Bold(true).Foreground(theme.BgDark).Background(theme.Highlight)
	if !compact {
		selectedBtn = selectedBtn.BorderForeground(theme.Highlight)
	}
	normalBtn := base.Foreground(theme.Text)
	disabledBtn := base.Foreground(theme.TextDim).Strikethrough(true)

	var buttons []string
	for i, label := range items {
		switch {
		case disabled[i]:
			buttons = append(buttons, disabledBtn.Render(label))
		case i == selected:
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		default:
			buttons = append(buttons, normalBtn.Render(label))
		}
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderLLMBanner explains how to enable quiz generation.
func renderLLMBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ Set an LLM API key to generate new quizzes (see glossmatch --help)")
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}

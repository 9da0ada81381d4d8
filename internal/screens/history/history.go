package history

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/glossmatch/internal/router"
	"github.com/abhisek/glossmatch/internal/screen"
	"github.com/abhisek/glossmatch/internal/store"
	"github.com/abhisek/glossmatch/internal/ui/layout"
	"github.com/abhisek/glossmatch/internal/ui/theme"
)

const recentLimit = 50

type tab int

const (
	completionsTab tab = iota
	attemptsTab
)

type historyLoadedMsg struct {
	Stats       []store.BlockStats
	Completions []store.CompletionEventRecord
	Attempts    []store.AttemptEventRecord
	Err         error
}

var keys = struct {
	Up, Down, Tab, Expand, Back key.Binding
}{
	Up:     key.NewBinding(key.WithKeys("up", "k")),
	Down:   key.NewBinding(key.WithKeys("down", "j")),
	Tab:    key.NewBinding(key.WithKeys("tab", "left", "right")),
	Expand: key.NewBinding(key.WithKeys("enter", "space")),
	Back:   key.NewBinding(key.WithKeys("esc", "q")),
}

// HistoryScreen displays per-block stats and recent quiz activity.
type HistoryScreen struct {
	eventRepo   store.EventRepo
	stats       []store.BlockStats
	completions []store.CompletionEventRecord
	attempts    []store.AttemptEventRecord
	tab         tab
	selected    int
	expanded    map[int]bool
	loaded      bool
	errMsg      string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		return load(context.Background(), repo)
	}
}

func load(ctx context.Context, repo store.EventRepo) historyLoadedMsg {
	ids, err := repo.BlockIDs(ctx)
	if err != nil {
		return historyLoadedMsg{Err: err}
	}
	var msg historyLoadedMsg
	for _, id := range ids {
		st, err := repo.BlockStats(ctx, id)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		msg.Stats = append(msg.Stats, st)
	}
	if msg.Completions, err = repo.QueryCompletionEvents(ctx, store.QueryOpts{Limit: recentLimit}); err != nil {
		return historyLoadedMsg{Err: err}
	}
	if msg.Attempts, err = repo.QueryAttemptEvents(ctx, store.QueryOpts{Limit: recentLimit}); err != nil {
		return historyLoadedMsg{Err: err}
	}
	return msg
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Completions/Attempts"},
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) rows() int {
	if s.tab == completionsTab {
		return len(s.completions)
	}
	return len(s.attempts)
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.stats = msg.Stats
			s.completions = msg.Completions
			s.attempts = msg.Attempts
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, keys.Back):
			return s, router.Pop
		case key.Matches(msg, keys.Up):
			if s.selected > 0 {
				s.selected--
			}
		case key.Matches(msg, keys.Down):
			if s.selected < s.rows()-1 {
				s.selected++
			}
		case key.Matches(msg, keys.Tab):
			s.tab = 1 - s.tab
			s.selected = 0
			clear(s.expanded)
		case key.Matches(msg, keys.Expand):
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := func(style lipgloss.Style, text string) string {
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(style.Render(text))
	}
	if s.errMsg != "" {
		return center(lipgloss.NewStyle().Foreground(theme.Error), fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center(lipgloss.NewStyle().Foreground(theme.TextDim), "\n\n  Loading history...")
	}
	if len(s.stats) == 0 {
		return center(theme.Hint, "\n\n  No quizzes played yet. Start one from the home screen!")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.renderStats(width))
	b.WriteString("\n\n")

	completions := "Completions"
	attempts := "Attempts"
	if s.tab == completionsTab {
		completions = theme.ColumnHeading.Foreground(theme.Primary).Render(completions)
		attempts = lipgloss.NewStyle().Foreground(theme.TextDim).Render(attempts)
	} else {
		completions = lipgloss.NewStyle().Foreground(theme.TextDim).Render(completions)
		attempts = theme.ColumnHeading.Foreground(theme.Primary).Render(attempts)
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, completions+"    "+attempts))
	b.WriteString("\n\n")

	var lines []string
	if s.tab == completionsTab {
		lines = s.completionLines()
	} else {
		lines = s.attemptLines()
	}
	if len(lines) == 0 {
		lines = []string{theme.Hint.Render("Nothing recorded yet")}
	}
	for _, l := range lines {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, l))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *HistoryScreen) renderStats(width int) string {
	head := lipgloss.NewStyle().Foreground(theme.TextDim)
	rows := []string{head.Render(fmt.Sprintf("%-28s %8s %9s %8s %6s %8s", "Block", "Sessions", "Attempts", "Accuracy", "Done", "Best"))}
	for _, st := range s.stats {
		best := "-"
		if st.BestAttempts > 0 {
			best = fmt.Sprintf("%d", st.BestAttempts)
		}
		rows = append(rows, theme.Body.Render(fmt.Sprintf("%-28s %8d %9d %7.0f%% %6d %8s",
			truncate(st.BlockID, 28), st.Sessions, st.Attempts, st.Accuracy()*100, st.Completions, best)))
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Render(strings.Join(rows, "\n"))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
}

func (s *HistoryScreen) lineStyle(i int) (lipgloss.Style, string) {
	if i == s.selected {
		return lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), "> "
	}
	return lipgloss.NewStyle().Foreground(theme.Text), "  "
}

func (s *HistoryScreen) completionLines() []string {
	var lines []string
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	for i, c := range s.completions {
		style, prefix := s.lineStyle(i)
		lines = append(lines, style.Render(fmt.Sprintf("%s%s  %-28s  %d/%d in %d %s",
			prefix, c.Timestamp.Local().Format("Jan 02, 2006 15:04"), truncate(c.BlockID, 28),
			c.Score, c.MaxScore, c.Attempts, pluralize(c.Attempts, "attempt"))))
		if s.expanded[i] {
			lines = append(lines, dim.Render(fmt.Sprintf("    source: %s  session: %s", c.Source, orDash(c.SessionID))))
		}
	}
	return lines
}

func (s *HistoryScreen) attemptLines() []string {
	var lines []string
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	for i, a := range s.attempts {
		style, prefix := s.lineStyle(i)
		mark := theme.Incorrect.Render("✗")
		if a.Completed {
			mark = theme.Correct.Render("✓")
		}
		lines = append(lines, style.Render(fmt.Sprintf("%s%s  %-28s  #%d  %d correct  %d incorrect ",
			prefix, a.Timestamp.Local().Format("Jan 02, 2006 15:04"), truncate(a.BlockID, 28),
			a.Attempt, a.Correct, a.Incorrect))+mark)
		if s.expanded[i] {
			lines = append(lines, dim.Render(fmt.Sprintf("    session: %s", orDash(a.SessionID))))
			for _, m := range a.Matches {
				lines = append(lines, dim.Render(fmt.Sprintf("    term %s → %s", m.TermID, m.DefinitionID)))
			}
		}
	}
	return lines
}

func truncate(s string, n int) string {
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n-1]) + "…"
}

func pluralize(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

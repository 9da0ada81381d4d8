package app

import (
	"fmt"
	"math/rand/v2"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/glossmatch/internal/matching"
	"github.com/abhisek/glossmatch/internal/router"
	"github.com/abhisek/glossmatch/internal/screen"
	"github.com/abhisek/glossmatch/internal/screens/generate"
	"github.com/abhisek/glossmatch/internal/screens/home"
	matchscreen "github.com/abhisek/glossmatch/internal/screens/matching"
	"github.com/abhisek/glossmatch/internal/store"
	"github.com/abhisek/glossmatch/internal/ui/layout"
)

// Options holds the dependencies injected into the TUI.
type Options struct {
	Catalog   matching.Catalog
	Repo      store.EventRepo           // nil: no history
	Notifier  matching.Notifier         // nil: completions go nowhere
	Generator generate.CatalogGenerator // nil: generation disabled
	Log       *zap.Logger

	// Seed makes every shuffle reproducible when non-zero.
	Seed uint64

	// OnSession is told the session id of every quiz that starts.
	OnSession func(id string)

	// Play skips the home screen and opens the quiz directly.
	Play bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	var rng *rand.Rand
	if opts.Seed != 0 {
		rng = rand.New(rand.NewPCG(opts.Seed, opts.Seed))
	}
	newQuiz := func(cat matching.Catalog) screen.Screen {
		return matchscreen.New(matchscreen.Options{
			Catalog:   cat,
			Repo:      opts.Repo,
			Notifier:  opts.Notifier,
			Rand:      rng,
			Log:       opts.Log,
			OnSession: opts.OnSession,
		})
	}

	var initial screen.Screen
	if opts.Play {
		initial = newQuiz(opts.Catalog)
	} else {
		initial = home.New(home.Deps{
			Catalog:   opts.Catalog,
			NewQuiz:   newQuiz,
			Repo:      opts.Repo,
			Generator: opts.Generator,
			Log:       opts.Log,
		})
	}
	return AppModel{router: router.New(initial)}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if c, ok := m.router.Active().(screen.KeyCapturer); ok && c.CapturesKeys() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.Pop
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the active screen between the header and the footer.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	var title, status string
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if hp, ok := active.(screen.KeyHintProvider); ok {
		if hints := hp.KeyHints(); len(hints) > 0 {
			return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}

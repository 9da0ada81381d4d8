package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/glossmatch/internal/matching"
	"github.com/abhisek/glossmatch/internal/router"
	"github.com/abhisek/glossmatch/internal/screen"
	"github.com/abhisek/glossmatch/internal/screens/generate"
	"github.com/abhisek/glossmatch/internal/screens/history"
	"github.com/abhisek/glossmatch/internal/screens/placeholder"
	"github.com/abhisek/glossmatch/internal/store"
	"github.com/abhisek/glossmatch/internal/ui/components"
)

// Deps are what the home screen needs to open the other screens. Repo and
// Generator may be nil; the matching menu entries then explain why they
// are unavailable.
type Deps struct {
	Catalog   matching.Catalog
	NewQuiz   generate.QuizFactory
	Repo      store.EventRepo
	Generator generate.CatalogGenerator
	Log       *zap.Logger
}

type statsLoadedMsg struct {
	Stats *store.BlockStats
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	deps       Deps
	menu       components.Menu
	menuLabels []string
	disabled   map[int]bool
	stats      *store.BlockStats
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	menuLabels := []string{"START QUIZ", "GENERATE QUIZ", "HISTORY", "EXIT"}
	disabled := map[int]bool{1: deps.Generator == nil}

	items := []components.MenuItem{
		{Label: menuLabels[0], Action: func() tea.Cmd {
			return router.Push(deps.NewQuiz(deps.Catalog))
		}},
		{Label: menuLabels[1], Disabled: disabled[1], Action: func() tea.Cmd {
			return router.Push(generate.New(deps.Generator, deps.NewQuiz, deps.Log))
		}},
		{Label: menuLabels[2], Action: func() tea.Cmd {
			if deps.Repo == nil {
				return router.Push(placeholder.New("History", "History needs the local database.\nCheck the --db path and restart."))
			}
			return router.Push(history.New(deps.Repo))
		}},
		{Label: menuLabels[3], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		deps:       deps,
		menu:       components.NewMenu(items),
		menuLabels: menuLabels,
		disabled:   disabled,
	}
}

// Init loads the block's history for the stats bar.
func (h *HomeScreen) Init() tea.Cmd {
	if h.deps.Repo == nil {
		return nil
	}
	repo, blockID, log := h.deps.Repo, h.deps.Catalog.BlockID, h.deps.Log
	return func() tea.Msg {
		st, err := repo.BlockStats(context.Background(), blockID)
		if err != nil {
			log.Warn("load block stats", zap.Error(err))
			return statsLoadedMsg{}
		}
		if st.Attempts == 0 {
			return statsLoadedMsg{}
		}
		return statsLoadedMsg{Stats: &st}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(statsLoadedMsg); ok {
		h.stats = msg.Stats
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 32 || width < 100

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(h.deps.Catalog.Title, cw, compact))

	if !compact {
		variant := MascotIdle
		if h.stats != nil && h.stats.Completions > 0 {
			variant = MascotCelebrating
		}
		sections = append(sections, renderMascotBox(variant, cw))
	}

	sections = append(sections, renderStatsBar(h.stats, cw, compact))
	sections = append(sections, renderMenu(h.menuLabels, h.menu.Selected, cw, h.disabled, compact))
	if h.deps.Generator == nil {
		sections = append(sections, renderLLMBanner(cw))
	}

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

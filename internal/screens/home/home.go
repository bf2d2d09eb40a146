package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/tmakino/kotoba/internal/catalog"
	"github.com/tmakino/kotoba/internal/drill"
	"github.com/tmakino/kotoba/internal/hints"
	"github.com/tmakino/kotoba/internal/router"
	"github.com/tmakino/kotoba/internal/screen"
	"github.com/tmakino/kotoba/internal/screens/stats"
	"github.com/tmakino/kotoba/internal/screens/study"
	"github.com/tmakino/kotoba/internal/store"
	"github.com/tmakino/kotoba/internal/trainer"
	"github.com/tmakino/kotoba/internal/ui/components"
	"github.com/tmakino/kotoba/internal/ui/theme"
)

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	trainer *trainer.Trainer
	menu    components.Menu
	due     int
	fresh   int
	streak  int
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen. The store and hint service may be nil.
func New(tr *trainer.Trainer, st *store.Store, sampler *drill.Sampler, hintSvc *hints.Service) *HomeScreen {
	due, fresh := tr.DueCounts(catalog.ScopeAll)
	prefs := tr.Profile().Prefs

	sessionOpts := func(weak, practice bool) trainer.SessionOptions {
		size := prefs.SessionSize
		if prefs.AutoSuggest && !weak {
			size = tr.SuggestSessionSize(context.Background())
		}
		return trainer.SessionOptions{
			Scope:      catalog.ScopeAll,
			Size:       size,
			NewCap:     prefs.NewItemCap,
			WeakReview: weak,
			Practice:   practice,
		}
	}

	push := func(make func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: make()} }
		}
	}

	items := []components.MenuItem{
		{
			Label:  "STUDY",
			Detail: fmt.Sprintf("%d due · %d new", due, fresh),
			Action: push(func() screen.Screen {
				return study.New(tr, sampler, hintSvc, sessionOpts(false, false))
			}),
		},
		{
			Label:  "WEAK REVIEW",
			Detail: "drill your shakiest items",
			Action: push(func() screen.Screen {
				return study.New(tr, sampler, hintSvc, sessionOpts(true, false))
			}),
		},
		{
			Label:  "PRACTICE",
			Detail: "no grades recorded",
			Action: push(func() screen.Screen {
				return study.New(tr, sampler, hintSvc, sessionOpts(false, true))
			}),
		},
		{
			Label: "STATS",
			Action: push(func() screen.Screen {
				return stats.New(tr.Profile(), st)
			}),
		},
		{
			Label:  "QUIT",
			Action: func() tea.Cmd { return tea.Quit },
		},
	}

	return &HomeScreen{
		trainer: tr,
		menu:    components.NewMenu(items),
		due:     due,
		fresh:   fresh,
		streak:  tr.Profile().Stats.CurrentStreak,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// Counts drift while study sessions run on top of this screen.
	h.due, h.fresh = h.trainer.DueCounts(catalog.ScopeAll)
	h.streak = h.trainer.Profile().Stats.CurrentStreak
	h.menu.Items[0].Detail = fmt.Sprintf("%d due · %d new", h.due, h.fresh)

	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center.Render(theme.Title.Render("こ と ば · K O T O B A")))
	b.WriteString("\n")
	b.WriteString(center.Render(theme.Subtitle.Render("spaced-repetition language trainer")))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("⏱ %d due    ✦ %d new    ★ %d day streak", h.due, h.fresh, h.streak)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Card.Render(lipgloss.NewStyle().Foreground(theme.Text).Render(statsLine))))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View()))

	return b.String()
}

func (h *HomeScreen) Title() string {
	return "Home"
}

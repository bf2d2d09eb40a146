package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/tmakino/kotoba/internal/catalog"
	"github.com/tmakino/kotoba/internal/drill"
	"github.com/tmakino/kotoba/internal/hints"
	"github.com/tmakino/kotoba/internal/router"
	"github.com/tmakino/kotoba/internal/screen"
	"github.com/tmakino/kotoba/internal/screens/home"
	"github.com/tmakino/kotoba/internal/screens/study"
	"github.com/tmakino/kotoba/internal/store"
	"github.com/tmakino/kotoba/internal/trainer"
	"github.com/tmakino/kotoba/internal/ui/layout"
)

// Options carries the wired dependencies into the TUI.
type Options struct {
	Trainer *trainer.Trainer
	Store   *store.Store // may be nil (in-memory run)
	Hints   *hints.Service

	// StartSession, when set, jumps straight into a study session
	// instead of landing on the home menu.
	StartSession *trainer.SessionOptions
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts    Options
	sampler *drill.Sampler
	router  *router.Router
	width   int
	height  int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	sampler := drill.NewSampler(nil)
	homeScreen := home.New(opts.Trainer, opts.Store, sampler, opts.Hints)
	return AppModel{
		opts:    opts,
		sampler: sampler,
		router:  router.New(homeScreen),
	}
}

func (m AppModel) Init() tea.Cmd {
	if m.opts.StartSession != nil {
		s := study.New(m.opts.Trainer, m.sampler, m.opts.Hints, *m.opts.StartSession)
		return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	// Screens own Esc themselves: study shows a quit confirmation first,
	// the others pop directly.
	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	due, _ := m.opts.Trainer.DueCounts(catalog.ScopeAll)
	streak := m.opts.Trainer.Profile().Stats.CurrentStreak
	header := layout.RenderHeader(title, due, streak, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	if footerHints == nil {
		if m.router.Depth() > 1 {
			footerHints = []layout.KeyHint{
				{Key: "Esc", Description: "Back"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		} else {
			footerHints = []layout.KeyHint{
				{Key: "↑↓", Description: "Navigate"},
				{Key: "Enter", Description: "Select"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}

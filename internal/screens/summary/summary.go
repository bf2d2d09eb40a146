package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/tmakino/kotoba/internal/router"
	"github.com/tmakino/kotoba/internal/screen"
	"github.com/tmakino/kotoba/internal/session"
	"github.com/tmakino/kotoba/internal/ui/layout"
	"github.com/tmakino/kotoba/internal/ui/theme"
)

// SummaryScreen displays the tally for a finished session.
type SummaryScreen struct {
	summary *session.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(sum *session.Summary) *SummaryScreen {
	return &SummaryScreen{summary: sum}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder

	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render("Session complete!"))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Items: %d        Correct: %d        Accuracy: %.0f%%",
		sum.Attempted(), sum.Correct(), sum.Accuracy()*100)
	b.WriteString(center.Foreground(theme.Text).Render(statsLine))
	b.WriteString("\n")
	if sum.Skipped() > 0 {
		b.WriteString(center.Foreground(theme.TextDim).Render(
			fmt.Sprintf("Skipped: %d", sum.Skipped())))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Categories")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	for _, cr := range sum.Categories() {
		if cr.Attempted == 0 {
			continue
		}
		line := fmt.Sprintf("  %-20s %d/%d correct", cr.Category, cr.Correct, cr.Attempted)
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if cr.Correct == cr.Attempted {
			style = style.Foreground(theme.Success)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

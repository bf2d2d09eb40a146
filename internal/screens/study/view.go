package study

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/tmakino/kotoba/internal/catalog"
	"github.com/tmakino/kotoba/internal/ui/theme"
)

func (s *StudyScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderNotice(width, s.errMsg)
	}
	if s.quitConfirm {
		return renderQuitConfirm(width)
	}
	if !s.hasItem {
		return renderLoading(width)
	}
	if s.showingFeedback {
		return s.renderFeedback(width)
	}
	return s.renderDrill(width)
}

// renderDrill renders the active question.
func (s *StudyScreen) renderDrill(width int) string {
	var b strings.Builder

	sess := s.trainer.Session()
	progress := ""
	if sess != nil {
		progress = fmt.Sprintf("%d / %d", sess.Index()+1, sess.Total())
	}

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s", s.item.Category))

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(progress)

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	var drillView string
	switch {
	case s.item.Kind == catalog.KindSentence:
		drillView = s.picker.View()
	case s.typed:
		drillView = theme.Target.Render(s.item.Prompt) + "\n\n" +
			"Answer: " + s.input.View()
	default:
		drillView = s.mc.View()
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, drillView))

	return b.String()
}

// renderFeedback renders the correct/incorrect overlay.
func (s *StudyScreen) renderFeedback(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")

	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	if s.lastCorrect {
		b.WriteString(center.Foreground(theme.Success).Bold(true).Render("Correct!"))
	} else {
		b.WriteString(center.Foreground(theme.Error).Bold(true).Render("Not quite"))
		b.WriteString("\n")
		answer := s.item.Target
		if s.item.Kind == catalog.KindSentence {
			answer = strings.Join(s.item.Tokens, " ")
		}
		if s.item.Phonetic != "" {
			answer += fmt.Sprintf("  (%s)", s.item.Phonetic)
		}
		b.WriteString(center.Foreground(theme.TextDim).Render("Answer: " + answer))
	}
	b.WriteString("\n\n")

	if s.hintPending {
		b.WriteString(center.Foreground(theme.TextDim).Italic(true).Render("thinking of a mnemonic..."))
		b.WriteString("\n\n")
	} else if s.hintText != "" {
		hint := lipgloss.NewStyle().
			Width(min(width-8, 64)).
			Foreground(theme.Text).
			Render(s.hintText)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Card.Render(hint)))
		b.WriteString("\n\n")
	}

	if s.awaitingGrade {
		b.WriteString(center.Foreground(theme.TextDim).Render("How well did you know it?"))
		b.WriteString("\n")
		b.WriteString(center.Render(
			lipgloss.NewStyle().Foreground(theme.Accent).Render("[1] Hard") + "  " +
				lipgloss.NewStyle().Foreground(theme.Success).Render("[2] Good") + "  " +
				lipgloss.NewStyle().Foreground(theme.Primary).Render("[3] Easy"),
		))
	} else {
		b.WriteString(center.Foreground(theme.TextDim).Render("Press any key to continue..."))
	}

	return b.String()
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(center.Foreground(theme.Text).Bold(true).Render("End session early?"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render("Graded answers are already saved."))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.Success).Render("[Y] Yes, end session"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Primary).Render("[N] No, keep going"))
	return b.String()
}

// renderLoading renders the queue-building state.
func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Building your session...")
}

// renderNotice renders a message state. Any key goes back.
func renderNotice(width int, msg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("\n\n\n  %s\n\n  Press any key to go back.", msg))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

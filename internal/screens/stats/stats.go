package stats

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/tmakino/kotoba/internal/profile"
	"github.com/tmakino/kotoba/internal/router"
	"github.com/tmakino/kotoba/internal/screen"
	"github.com/tmakino/kotoba/internal/store"
	"github.com/tmakino/kotoba/internal/ui/components"
	"github.com/tmakino/kotoba/internal/ui/layout"
	"github.com/tmakino/kotoba/internal/ui/theme"
)

const historyDays = 7

// StatsScreen shows lifetime totals and the recent review history.
type StatsScreen struct {
	stats       profile.AggregateStats
	recentAcc   float64
	recentCount int
	perDay      []int
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates a StatsScreen, reading the review log up front. The store may
// be nil; the screen then shows only the in-memory aggregates.
func New(p *profile.Profile, st *store.Store) *StatsScreen {
	s := &StatsScreen{stats: p.Stats}
	if st != nil {
		ctx := context.Background()
		now := time.Now()
		if acc, n, err := st.RecentAccuracy(ctx, now.AddDate(0, 0, -historyDays)); err == nil {
			s.recentAcc = acc
			s.recentCount = n
		}
		if perDay, err := st.ReviewsPerDay(ctx, historyDays, now); err == nil {
			s.perDay = perDay
		}
	}
	return s
}

func (s *StatsScreen) Init() tea.Cmd {
	return nil
}

func (s *StatsScreen) Title() string {
	return "Stats"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n")

	line := fmt.Sprintf("Reviews: %d        Lifetime accuracy: %.0f%%        Streak: %d days",
		s.stats.TotalReviews, s.stats.Accuracy()*100, s.stats.CurrentStreak)
	b.WriteString(center.Foreground(theme.Text).Render(line))
	b.WriteString("\n")

	if s.recentCount > 0 {
		b.WriteString(center.Foreground(theme.TextDim).Render(
			fmt.Sprintf("Last %d days: %d reviews at %.0f%%",
				historyDays, s.recentCount, s.recentAcc*100)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(s.perDay) > 0 {
		b.WriteString(center.Foreground(theme.TextDim).Render("Reviews per day"))
		b.WriteString("\n\n")

		peak := 1
		for _, n := range s.perDay {
			if n > peak {
				peak = n
			}
		}
		barWidth := min(width-24, 40)
		today := time.Now()
		for i, n := range s.perDay {
			day := today.AddDate(0, 0, i-len(s.perDay)+1)
			bar := components.NewProgressBar(day.Format("Mon"), float64(n)/float64(peak), false, barWidth)
			row := fmt.Sprintf("%s  %d", bar.View(), n)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, row))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(center.Foreground(theme.TextDim).Render("No reviews yet. Start a session!"))
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

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tmakino/kotoba/internal/catalog"
	"github.com/tmakino/kotoba/internal/queue"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := setup(cmd)
		if err != nil {
			return err
		}
		defer deps.Close()

		p := deps.Profile
		fmt.Printf("Reviews:   %d (%.0f%% correct)\n",
			p.Stats.TotalReviews, p.Stats.Accuracy()*100)
		fmt.Printf("Streak:    %d days\n", p.Stats.CurrentStreak)

		now := time.Now()
		part := queue.Classify(deps.Catalog.InScope(catalog.ScopeAll), p.Memory, now)
		fmt.Printf("Items:     %d total, %d due, %d new\n",
			deps.Catalog.Len(), len(part.Due), len(part.New))

		if acc, n, err := deps.Store.RecentAccuracy(cmd.Context(), now.AddDate(0, 0, -7)); err == nil && n > 0 {
			fmt.Printf("Last 7d:   %d reviews at %.0f%%\n", n, acc*100)
		}
		return nil
	},
}

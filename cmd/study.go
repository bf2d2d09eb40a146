package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tmakino/kotoba/internal/app"
	"github.com/tmakino/kotoba/internal/catalog"
	"github.com/tmakino/kotoba/internal/trainer"
)

var studyCmd = &cobra.Command{
	Use:   "study",
	Short: "Start a study session directly",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := setup(cmd)
		if err != nil {
			return err
		}
		defer deps.Close()

		scope, _ := cmd.Flags().GetString("scope")
		size, _ := cmd.Flags().GetInt("size")
		newCap, _ := cmd.Flags().GetInt("new")
		weak, _ := cmd.Flags().GetBool("weak")
		practice, _ := cmd.Flags().GetBool("practice")

		if size < 0 {
			size = deps.Profile.Prefs.SessionSize
		}
		if newCap < 0 {
			newCap = deps.Profile.Prefs.NewItemCap
		}

		opts := trainer.SessionOptions{
			Scope:      scope,
			Size:       size,
			NewCap:     newCap,
			WeakReview: weak,
			Practice:   practice,
		}
		return app.Run(app.Options{
			Trainer:      deps.Trainer,
			Store:        deps.Store,
			Hints:        deps.Hints,
			StartSession: &opts,
		})
	},
}

func init() {
	studyCmd.Flags().String("scope", catalog.ScopeAll, "Category to study, or 'all'")
	studyCmd.Flags().Int("size", -1, "Session size (0 = unlimited, -1 = use preference)")
	studyCmd.Flags().Int("new", -1, "Cap on new items (-1 = use preference)")
	studyCmd.Flags().Bool("weak", false, "Weak-review session over your shakiest items")
	studyCmd.Flags().Bool("practice", false, "Practice session: nothing is recorded")
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tmakino/kotoba/internal/app"
	"github.com/tmakino/kotoba/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "kotoba",
	Short: "Spaced-repetition language trainer",
	Long:  "Kotoba — a terminal spaced-repetition trainer for vocabulary and sentence construction.",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := setup(cmd)
		if err != nil {
			return err
		}
		defer deps.Close()
		return app.Run(app.Options{
			Trainer: deps.Trainer,
			Store:   deps.Store,
			Hints:   deps.Hints,
		})
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides KOTOBA_DB env var)")

	rootCmd.AddCommand(studyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(decksCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(hintCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then KOTOBA_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

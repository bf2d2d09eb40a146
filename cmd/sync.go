package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tmakino/kotoba/internal/remote"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync the profile with the configured remote",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := setup(cmd)
		if err != nil {
			return err
		}
		defer deps.Close()

		if deps.Config.Sync.URL == "" {
			return fmt.Errorf("no sync URL configured (set sync.url in config.yaml or KOTOBA_SYNC_URL)")
		}

		client := remote.NewClient(deps.Config.Sync.URL, deps.Config.Sync.Token)
		merged, err := client.Sync(cmd.Context(), deps.Profile)
		if err != nil {
			return fmt.Errorf("sync: %w", err)
		}

		if err := deps.Store.SaveProfile(cmd.Context(), merged); err != nil {
			return fmt.Errorf("save merged profile: %w", err)
		}
		fmt.Printf("Synced. %d items tracked, %d lifetime reviews.\n",
			len(merged.Memory), merged.Stats.TotalReviews)
		return nil
	},
}

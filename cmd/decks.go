package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tmakino/kotoba/internal/catalog"
)

var decksCmd = &cobra.Command{
	Use:   "decks",
	Short: "List loaded decks and categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := setup(cmd)
		if err != nil {
			return err
		}
		defer deps.Close()

		cat := deps.Catalog
		fmt.Printf("%d items in %d categories\n\n", cat.Len(), len(cat.Categories()))
		for _, c := range cat.Categories() {
			items := cat.InScope(c)
			vocab, sentences := 0, 0
			for _, it := range items {
				if it.Kind == catalog.KindSentence {
					sentences++
				} else {
					vocab++
				}
			}
			fmt.Printf("  %-20s %3d items (%d vocab, %d sentences)\n",
				c, len(items), vocab, sentences)
		}
		return nil
	},
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tmakino/kotoba/internal/catalog"
)

var hintCmd = &cobra.Command{
	Use:   "hint <item-id or prompt>",
	Short: "Generate a mnemonic hint for an item",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := setup(cmd)
		if err != nil {
			return err
		}
		defer deps.Close()

		if deps.Hints == nil {
			return fmt.Errorf("no LLM provider configured (set llm.provider or an API key env var)")
		}

		query := strings.Join(args, " ")
		item, ok := findItem(deps.Catalog, query)
		if !ok {
			return fmt.Errorf("no item matches %q", query)
		}

		text, err := deps.Hints.Mnemonic(cmd.Context(), item)
		if err != nil {
			return fmt.Errorf("generate hint: %w", err)
		}
		fmt.Println(text)
		return nil
	},
}

// findItem looks an item up by id first, then by prompt or target text.
func findItem(cat *catalog.Catalog, query string) (catalog.Item, bool) {
	if it, ok := cat.Get(query); ok {
		return it, true
	}
	q := strings.ToLower(query)
	for _, it := range cat.Items() {
		if strings.ToLower(it.Prompt) == q || strings.ToLower(it.Target) == q {
			return it, true
		}
	}
	return catalog.Item{}, false
}

package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed decks/*.json
var embeddedDecks embed.FS

// Deck is the on-disk deck file format.
type Deck struct {
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// Load reads the embedded starter decks plus any *.json deck files found in
// userDir (empty string skips the user directory). Every deck is validated
// against the deck schema before its items are accepted, and duplicate item
// ids across decks are rejected.
func Load(userDir string) (*Catalog, error) {
	var items []Item
	seen := make(map[string]string) // item id -> deck name

	entries, err := fs.ReadDir(embeddedDecks, "decks")
	if err != nil {
		return nil, fmt.Errorf("read embedded decks: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	for _, e := range entries {
		raw, err := fs.ReadFile(embeddedDecks, "decks/"+e.Name())
		if err != nil {
			return nil, fmt.Errorf("read embedded deck %s: %w", e.Name(), err)
		}
		deck, err := parseDeck(e.Name(), raw)
		if err != nil {
			return nil, err
		}
		items, err = appendDeck(items, seen, deck)
		if err != nil {
			return nil, err
		}
	}

	if userDir != "" {
		userItems, err := loadUserDecks(userDir, seen)
		if err != nil {
			return nil, err
		}
		items = append(items, userItems...)
	}

	return New(items), nil
}

func loadUserDecks(dir string, seen map[string]string) ([]Item, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read deck dir %s: %w", dir, err)
	}

	var items []Item
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read deck %s: %w", e.Name(), err)
		}
		deck, err := parseDeck(e.Name(), raw)
		if err != nil {
			return nil, err
		}
		items, err = appendDeck(items, seen, deck)
		if err != nil {
			return nil, err
		}
	}
	return items, nil
}

// parseDeck validates raw deck JSON against the schema and unmarshals it.
func parseDeck(name string, raw []byte) (*Deck, error) {
	if err := validateDeck(raw); err != nil {
		return nil, fmt.Errorf("deck %s: %w", name, err)
	}
	var deck Deck
	if err := json.Unmarshal(raw, &deck); err != nil {
		return nil, fmt.Errorf("deck %s: %w", name, err)
	}
	return &deck, nil
}

func appendDeck(items []Item, seen map[string]string, deck *Deck) ([]Item, error) {
	for _, it := range deck.Items {
		if prev, dup := seen[it.ID]; dup {
			return nil, fmt.Errorf("deck %s: duplicate item id %q (already in %s)", deck.Name, it.ID, prev)
		}
		seen[it.ID] = deck.Name
		if it.Kind == KindSentence && len(it.Tokens) == 0 {
			return nil, fmt.Errorf("deck %s: sentence item %q has no tokens", deck.Name, it.ID)
		}
		items = append(items, it)
	}
	return items, nil
}

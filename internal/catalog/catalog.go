package catalog

import "sort"

// ItemKind distinguishes drill types.
type ItemKind string

const (
	// KindVocab is a prompt/target word pair answered by multiple choice
	// or typed recall.
	KindVocab ItemKind = "vocab"

	// KindSentence is a sentence reconstructed from a shuffled word bank.
	KindSentence ItemKind = "sentence"
)

// ScopeAll selects items from every category.
const ScopeAll = "all"

// Item is a single immutable drill item loaded from a deck file.
type Item struct {
	ID       string   `json:"id"`
	Category string   `json:"category"`
	Kind     ItemKind `json:"kind"`

	// Prompt is the question side (native-language word or sentence).
	Prompt string `json:"prompt"`

	// Target is the expected answer for vocab items.
	Target string `json:"target,omitempty"`

	// Phonetic is an optional pronunciation rendering shown with feedback.
	Phonetic string `json:"phonetic,omitempty"`

	// Tokens is the canonical token sequence for sentence items.
	Tokens []string `json:"tokens,omitempty"`

	// DistractorTokens are extra wrong-answer tokens for this item's word bank.
	DistractorTokens []string `json:"distractor_tokens,omitempty"`
}

// Catalog is the immutable item set for the whole application.
type Catalog struct {
	items []Item
	byID  map[string]Item
}

// New builds a catalog from a validated, duplicate-free item list.
func New(items []Item) *Catalog {
	byID := make(map[string]Item, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	return &Catalog{items: items, byID: byID}
}

// Items returns all items. Callers must not modify the returned slice.
func (c *Catalog) Items() []Item {
	return c.items
}

// Get returns the item with the given id.
func (c *Catalog) Get(id string) (Item, bool) {
	it, ok := c.byID[id]
	return it, ok
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// InScope returns the items belonging to the given category, or all items
// for ScopeAll.
func (c *Catalog) InScope(scope string) []Item {
	if scope == ScopeAll || scope == "" {
		return c.items
	}
	var out []Item
	for _, it := range c.items {
		if it.Category == scope {
			out = append(out, it)
		}
	}
	return out
}

// Categories returns the sorted list of distinct categories.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, it := range c.items {
		if !seen[it.Category] {
			seen[it.Category] = true
			out = append(out, it.Category)
		}
	}
	sort.Strings(out)
	return out
}

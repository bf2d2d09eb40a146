// Package drill produces the answer choices shown for each study item and
// grades the learner's responses. Vocabulary items are multiple-choice over
// target strings; sentence items are reconstructed token by token from a
// word bank.
package drill

import (
	"math/rand"
	"strings"
	"time"

	"github.com/tmakino/kotoba/internal/catalog"
)

// Sampler draws distractors and shuffles choice sets. The random source is
// injected so tests can assert exact output.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler creates a Sampler from the given source, falling back to a
// time-seeded one when nil.
func NewSampler(rng *rand.Rand) *Sampler {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Sampler{rng: rng}
}

// Choices returns count options including target, sampled without
// replacement from pool and shuffled. The target is removed from the pool
// before sampling so it appears exactly once. A pool with fewer than
// count-1 eligible distractors degrades to all available plus the target.
func (s *Sampler) Choices(target string, pool []string, count int) []string {
	eligible := make([]string, 0, len(pool))
	seen := map[string]bool{target: true}
	for _, p := range pool {
		if seen[p] {
			continue
		}
		seen[p] = true
		eligible = append(eligible, p)
	}
	s.rng.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})

	n := count - 1
	if n > len(eligible) {
		n = len(eligible)
	}
	if n < 0 {
		n = 0
	}
	choices := append([]string{target}, eligible[:n]...)
	s.rng.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})
	return choices
}

// VocabChoices builds the multiple-choice set for a vocabulary item,
// drawing distractor targets from the rest of the catalog. Items in the
// same category are preferred; the pool widens to the whole catalog when
// the category alone cannot fill the set.
func (s *Sampler) VocabChoices(item catalog.Item, cat *catalog.Catalog, count int) []string {
	var same, other []string
	for _, it := range cat.Items() {
		if it.ID == item.ID || it.Kind != catalog.KindVocab || it.Target == "" {
			continue
		}
		if it.Category == item.Category {
			same = append(same, it.Target)
		} else {
			other = append(other, it.Target)
		}
	}
	if len(same) >= count-1 {
		return s.Choices(item.Target, same, count)
	}
	return s.Choices(item.Target, append(same, other...), count)
}

// TokenBank builds the shuffled word bank for a sentence item: the
// canonical tokens plus up to extra distractor tokens. The item's own
// distractor list is used first; the remainder is drawn from other items'
// token sets, excluding anything already in the bank.
func (s *Sampler) TokenBank(item catalog.Item, cat *catalog.Catalog, extra int) []string {
	bank := append([]string(nil), item.Tokens...)
	inBank := make(map[string]bool, len(bank))
	for _, tok := range bank {
		inBank[tok] = true
	}

	add := func(tok string) bool {
		if extra <= 0 || tok == "" || inBank[tok] {
			return false
		}
		inBank[tok] = true
		bank = append(bank, tok)
		extra--
		return true
	}

	for _, tok := range item.DistractorTokens {
		add(tok)
	}

	var foreign []string
	for _, it := range cat.Items() {
		if it.ID == item.ID {
			continue
		}
		foreign = append(foreign, it.Tokens...)
	}
	s.rng.Shuffle(len(foreign), func(i, j int) {
		foreign[i], foreign[j] = foreign[j], foreign[i]
	})
	for _, tok := range foreign {
		if extra <= 0 {
			break
		}
		add(tok)
	}

	s.rng.Shuffle(len(bank), func(i, j int) {
		bank[i], bank[j] = bank[j], bank[i]
	})
	return bank
}

// CheckVocab grades a typed or chosen vocabulary answer. Comparison is
// case-insensitive and ignores surrounding whitespace; the phonetic
// rendering is accepted as an alternative to the target.
func CheckVocab(item catalog.Item, answer string) bool {
	got := strings.ToLower(strings.TrimSpace(answer))
	if got == "" {
		return false
	}
	if got == strings.ToLower(strings.TrimSpace(item.Target)) {
		return true
	}
	return item.Phonetic != "" && got == strings.ToLower(strings.TrimSpace(item.Phonetic))
}

// CheckTokens grades a reconstructed sentence. Word order is graded:
// the answer must equal the canonical token sequence exactly.
func CheckTokens(item catalog.Item, answer []string) bool {
	if len(answer) != len(item.Tokens) {
		return false
	}
	for i, tok := range item.Tokens {
		if answer[i] != tok {
			return false
		}
	}
	return len(item.Tokens) > 0
}

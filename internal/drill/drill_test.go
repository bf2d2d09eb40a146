package drill

import (
	"math/rand"
	"testing"

	"github.com/tmakino/kotoba/internal/catalog"
)

func sampler() *Sampler {
	return NewSampler(rand.New(rand.NewSource(7)))
}

func TestChoices_IncludesTargetOnce(t *testing.T) {
	pool := []string{"犬", "猫", "魚", "水", "木"}
	got := sampler().Choices("水", pool, 4)

	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}
	count := 0
	for _, c := range got {
		if c == "水" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("target appears %d times, want 1", count)
	}
}

func TestChoices_SamplesWithoutReplacement(t *testing.T) {
	pool := []string{"a", "b", "c", "d", "e", "f"}
	got := sampler().Choices("x", pool, 5)

	seen := make(map[string]bool)
	for _, c := range got {
		if seen[c] {
			t.Fatalf("duplicate choice %q in %v", c, got)
		}
		seen[c] = true
	}
}

func TestChoices_ShortPoolDegrades(t *testing.T) {
	got := sampler().Choices("水", []string{"犬"}, 4)
	if len(got) != 2 {
		t.Errorf("len = %d, want 2 (target + sole distractor)", len(got))
	}
}

func TestChoices_TargetExcludedFromPool(t *testing.T) {
	// Pool contains the target and a duplicate; neither may inflate the set.
	got := sampler().Choices("水", []string{"水", "犬", "犬"}, 4)
	if len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
}

func TestVocabChoices_PrefersSameCategory(t *testing.T) {
	cat := catalog.New([]catalog.Item{
		{ID: "a", Category: "animals", Kind: catalog.KindVocab, Target: "犬"},
		{ID: "b", Category: "animals", Kind: catalog.KindVocab, Target: "猫"},
		{ID: "c", Category: "animals", Kind: catalog.KindVocab, Target: "魚"},
		{ID: "d", Category: "animals", Kind: catalog.KindVocab, Target: "鳥"},
		{ID: "e", Category: "things", Kind: catalog.KindVocab, Target: "車"},
	})
	item, _ := cat.Get("a")

	got := sampler().VocabChoices(item, cat, 4)
	for _, c := range got {
		if c == "車" {
			t.Errorf("out-of-category distractor chosen while category could fill the set: %v", got)
		}
	}
}

func TestTokenBank_ContainsAllCanonicalTokens(t *testing.T) {
	cat := catalog.New([]catalog.Item{
		{ID: "s1", Kind: catalog.KindSentence, Tokens: []string{"私", "は", "水", "を", "飲む"}, DistractorTokens: []string{"猫"}},
		{ID: "s2", Kind: catalog.KindSentence, Tokens: []string{"犬", "が", "走る"}},
	})
	item, _ := cat.Get("s1")

	bank := sampler().TokenBank(item, cat, 2)

	inBank := make(map[string]bool)
	for _, tok := range bank {
		inBank[tok] = true
	}
	for _, tok := range item.Tokens {
		if !inBank[tok] {
			t.Errorf("canonical token %q missing from bank %v", tok, bank)
		}
	}
	if len(bank) != len(item.Tokens)+2 {
		t.Errorf("bank size = %d, want %d", len(bank), len(item.Tokens)+2)
	}
}

func TestTokenBank_NoDuplicates(t *testing.T) {
	cat := catalog.New([]catalog.Item{
		{ID: "s1", Kind: catalog.KindSentence, Tokens: []string{"水", "を"}, DistractorTokens: []string{"水", "犬"}},
		{ID: "s2", Kind: catalog.KindSentence, Tokens: []string{"水", "犬", "は"}},
	})
	item, _ := cat.Get("s1")

	bank := sampler().TokenBank(item, cat, 5)
	seen := make(map[string]bool)
	for _, tok := range bank {
		if seen[tok] {
			t.Fatalf("duplicate token %q in %v", tok, bank)
		}
		seen[tok] = true
	}
}

func TestCheckVocab(t *testing.T) {
	item := catalog.Item{Target: "水", Phonetic: "mizu"}
	cases := []struct {
		answer string
		want   bool
	}{
		{"水", true},
		{" 水 ", true},
		{"mizu", true},
		{"MIZU", true},
		{"kawa", false},
		{"", false},
	}
	for _, c := range cases {
		if got := CheckVocab(item, c.answer); got != c.want {
			t.Errorf("CheckVocab(%q) = %v, want %v", c.answer, got, c.want)
		}
	}
}

func TestCheckTokens_OrderMatters(t *testing.T) {
	item := catalog.Item{Tokens: []string{"私", "は", "水", "を", "飲む"}}

	if !CheckTokens(item, []string{"私", "は", "水", "を", "飲む"}) {
		t.Error("exact sequence should pass")
	}
	if CheckTokens(item, []string{"水", "は", "私", "を", "飲む"}) {
		t.Error("same tokens in wrong order should fail")
	}
	if CheckTokens(item, []string{"私", "は", "水", "を"}) {
		t.Error("short answer should fail")
	}
	if CheckTokens(catalog.Item{}, nil) {
		t.Error("empty canonical sequence should never pass")
	}
}

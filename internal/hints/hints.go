// Package hints generates mnemonic hints for vocabulary items through an
// LLM provider. Hints are an optional aid: every failure degrades to
// studying without one.
package hints

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmakino/kotoba/internal/catalog"
	"github.com/tmakino/kotoba/internal/llm"
)

const systemPrompt = `You are a language tutor helping a learner memorize
vocabulary. Given a word, its meaning, and its reading, reply with a single
short mnemonic (at most two sentences) linking the sound or shape of the
word to its meaning. Reply with the mnemonic only, no preamble.`

// Service produces mnemonics for catalog items.
type Service struct {
	provider llm.Provider
}

// NewService creates a hint service. The provider must not be nil; callers
// with no configured provider should not construct a Service.
func NewService(p llm.Provider) *Service {
	return &Service{provider: p}
}

// Mnemonic returns a memorization hint for the given item.
func (s *Service) Mnemonic(ctx context.Context, item catalog.Item) (string, error) {
	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Prompt:      buildPrompt(item),
		MaxTokens:   200,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("generate mnemonic: %w", err)
	}
	return resp.Text, nil
}

func buildPrompt(item catalog.Item) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Word: %s\nMeaning: %s\n", item.Target, item.Prompt)
	if item.Phonetic != "" {
		fmt.Fprintf(&b, "Reading: %s\n", item.Phonetic)
	}
	if item.Kind == catalog.KindSentence {
		fmt.Fprintf(&b, "This is a full sentence: %s\n", strings.Join(item.Tokens, " "))
	}
	return b.String()
}

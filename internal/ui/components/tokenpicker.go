package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/tmakino/kotoba/internal/ui/theme"
)

// TokenPicker lets the user assemble a sentence from a bank of word
// tokens. Left/right moves the cursor over the remaining bank, enter
// picks the highlighted token, backspace returns the last picked token
// to the bank.
type TokenPicker struct {
	Prompt    string
	Bank      []string
	picked    []int // indices into Bank, in pick order
	used      []bool
	Cursor    int
	Submitted bool
}

// NewTokenPicker creates a token picker over the given bank.
func NewTokenPicker(prompt string, bank []string) TokenPicker {
	return TokenPicker{
		Prompt: prompt,
		Bank:   bank,
		used:   make([]bool, len(bank)),
	}
}

// Update handles keyboard input.
func (p TokenPicker) Update(msg tea.Msg) (TokenPicker, tea.Cmd) {
	if p.Submitted {
		return p, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch kmsg.String() {
	case "left", "h":
		for i := p.Cursor - 1; i >= 0; i-- {
			if !p.used[i] {
				p.Cursor = i
				break
			}
		}
	case "right", "l":
		for i := p.Cursor + 1; i < len(p.Bank); i++ {
			if !p.used[i] {
				p.Cursor = i
				break
			}
		}
	case "enter", " ":
		if p.Cursor >= 0 && p.Cursor < len(p.Bank) && !p.used[p.Cursor] {
			p.used[p.Cursor] = true
			p.picked = append(p.picked, p.Cursor)
			p.advanceCursor()
		}
	case "backspace":
		if n := len(p.picked); n > 0 {
			last := p.picked[n-1]
			p.picked = p.picked[:n-1]
			p.used[last] = false
			p.Cursor = last
		}
	case "tab":
		if len(p.picked) == len(p.Bank) {
			p.Submitted = true
		}
	}

	return p, nil
}

// advanceCursor moves the cursor to the next unused token, wrapping to
// the first unused one if the end is reached.
func (p *TokenPicker) advanceCursor() {
	for i := p.Cursor + 1; i < len(p.Bank); i++ {
		if !p.used[i] {
			p.Cursor = i
			return
		}
	}
	for i := 0; i < len(p.Bank); i++ {
		if !p.used[i] {
			p.Cursor = i
			return
		}
	}
}

// Answer returns the picked tokens in order.
func (p TokenPicker) Answer() []string {
	out := make([]string, 0, len(p.picked))
	for _, idx := range p.picked {
		out = append(out, p.Bank[idx])
	}
	return out
}

// Complete reports whether every token has been picked.
func (p TokenPicker) Complete() bool {
	return len(p.picked) == len(p.Bank)
}

// View renders the assembled answer above the remaining bank.
func (p TokenPicker) View() string {
	s := theme.Target.Render(p.Prompt) + "\n\n"

	answer := make([]string, 0, len(p.picked))
	for _, idx := range p.picked {
		answer = append(answer, theme.TokenChip.Render(p.Bank[idx]))
	}
	line := strings.Join(answer, " ")
	if line == "" {
		line = theme.Hint.Render("pick words below to build the sentence")
	}
	s += line + "\n\n"

	bank := make([]string, 0, len(p.Bank))
	for i, tok := range p.Bank {
		switch {
		case p.used[i]:
			bank = append(bank, theme.TokenChipUsed.Render(tok))
		case i == p.Cursor && !p.Submitted:
			bank = append(bank, theme.TokenChipActive.Render(tok))
		default:
			bank = append(bank, theme.TokenChip.Render(tok))
		}
	}
	s += lipgloss.JoinHorizontal(lipgloss.Center, joinWithSpaces(bank)...)

	return s
}

func joinWithSpaces(parts []string) []string {
	out := make([]string, 0, len(parts)*2)
	for i, part := range parts {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, part)
	}
	return out
}

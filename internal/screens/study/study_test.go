package study

import (
	"math/rand"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/tmakino/kotoba/internal/catalog"
	"github.com/tmakino/kotoba/internal/drill"
	"github.com/tmakino/kotoba/internal/profile"
	"github.com/tmakino/kotoba/internal/router"
	"github.com/tmakino/kotoba/internal/trainer"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Item{
		{ID: "v1", Category: "food", Kind: catalog.KindVocab, Prompt: "bread", Target: "pan"},
		{ID: "v2", Category: "food", Kind: catalog.KindVocab, Prompt: "water", Target: "mizu"},
		{ID: "v3", Category: "food", Kind: catalog.KindVocab, Prompt: "fish", Target: "sakana"},
		{ID: "v4", Category: "food", Kind: catalog.KindVocab, Prompt: "rice", Target: "gohan"},
	})
}

func newTestScreen(t *testing.T, cat *catalog.Catalog) *StudyScreen {
	t.Helper()
	tr := trainer.New(cat, profile.New(), nil,
		trainer.WithRand(rand.New(rand.NewSource(1))))
	sampler := drill.NewSampler(rand.New(rand.NewSource(2)))
	s := New(tr, sampler, nil, trainer.SessionOptions{
		Scope:  catalog.ScopeAll,
		NewCap: 10,
	})

	msg := s.Init()()
	init, ok := msg.(sessionInitMsg)
	if !ok {
		t.Fatalf("Init produced %T, want sessionInitMsg", msg)
	}
	s.Update(init)
	return s
}

func TestStudyScreen_EmptyQueue(t *testing.T) {
	tr := trainer.New(catalog.New(nil), profile.New(), nil)
	s := New(tr, drill.NewSampler(nil), nil, trainer.SessionOptions{Scope: catalog.ScopeAll})

	s.Update(s.Init()())
	if s.errMsg == "" {
		t.Fatal("expected an error message for an empty queue")
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if cmd == nil {
		t.Fatal("expected a pop command from the empty-queue notice")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestStudyScreen_LoadsFirstItem(t *testing.T) {
	s := newTestScreen(t, testCatalog())
	if !s.hasItem {
		t.Fatal("expected an item after init")
	}
	if s.item.Kind != catalog.KindVocab {
		t.Fatalf("unexpected kind %q", s.item.Kind)
	}
	if len(s.mc.Options) < 2 {
		t.Errorf("expected at least 2 choices, got %d", len(s.mc.Options))
	}
}

func TestStudyScreen_CorrectAnswerFlow(t *testing.T) {
	s := newTestScreen(t, testCatalog())

	// Move the selector onto the correct option and submit.
	for i := 0; i < s.mc.CorrectIndex; i++ {
		s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if !s.showingFeedback {
		t.Fatal("expected feedback after submit")
	}
	if !s.lastCorrect {
		t.Fatal("expected the chosen option to be correct")
	}

	before := s.trainer.Summary().Attempted()
	s.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if s.showingFeedback {
		t.Error("feedback should dismiss on key press")
	}
	if got := s.trainer.Summary().Attempted(); got != before+1 {
		t.Errorf("attempted = %d, want %d", got, before+1)
	}
}

func TestStudyScreen_WrongAnswerRecordsLapse(t *testing.T) {
	s := newTestScreen(t, testCatalog())

	// Pick a wrong option.
	if s.mc.CorrectIndex == 0 {
		s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if s.lastCorrect {
		t.Fatal("expected a wrong answer")
	}

	itemID := s.item.ID
	s.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})

	rec, ok := s.trainer.Profile().Record(itemID)
	if !ok {
		t.Fatal("expected a memory record after grading")
	}
	if rec.Lapses != 1 {
		t.Errorf("lapses = %d, want 1", rec.Lapses)
	}
}

func TestStudyScreen_RunToSummary(t *testing.T) {
	s := newTestScreen(t, testCatalog())

	var cmd tea.Cmd
	for i := 0; i < 10; i++ {
		if !s.hasItem {
			break
		}
		s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
		_, cmd = s.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	}
	if cmd == nil {
		t.Fatal("expected a command at session end")
	}

	msg := cmd()
	end, ok := msg.(sessionEndMsg)
	if !ok {
		t.Fatalf("got %T, want sessionEndMsg", msg)
	}
	_, cmd = s.Update(end)
	if cmd == nil {
		t.Fatal("expected a replace command")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Error("expected ReplaceScreenMsg to the summary screen")
	}
}

func TestStudyScreen_QuitConfirm(t *testing.T) {
	s := newTestScreen(t, testCatalog())

	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if !s.quitConfirm {
		t.Fatal("expected quit confirmation after esc")
	}

	s.Update(tea.KeyPressMsg{Code: 'n', Text: "n"})
	if s.quitConfirm {
		t.Fatal("n should dismiss the confirmation")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'y', Text: "y"})
	if cmd == nil {
		t.Fatal("expected a command on confirmed quit")
	}
	if _, ok := cmd().(sessionEndMsg); !ok {
		t.Error("expected sessionEndMsg on confirmed quit")
	}
}

func TestStudyScreen_SkipAdvances(t *testing.T) {
	s := newTestScreen(t, testCatalog())

	first := s.item.ID
	s.Update(tea.KeyPressMsg{Code: 's', Text: "s"})

	if s.item.ID == first {
		t.Error("expected skip to advance to the next item")
	}
	if s.trainer.Summary().Skipped() != 1 {
		t.Errorf("skipped = %d, want 1", s.trainer.Summary().Skipped())
	}
	rec, ok := s.trainer.Profile().Record(first)
	if !ok {
		t.Fatal("skip should reschedule the item like a wrong answer")
	}
	if rec.Lapses != 1 {
		t.Errorf("lapses = %d, want 1", rec.Lapses)
	}
}

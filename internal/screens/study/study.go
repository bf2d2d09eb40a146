package study

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/tmakino/kotoba/internal/catalog"
	"github.com/tmakino/kotoba/internal/drill"
	"github.com/tmakino/kotoba/internal/hints"
	"github.com/tmakino/kotoba/internal/router"
	"github.com/tmakino/kotoba/internal/screen"
	"github.com/tmakino/kotoba/internal/screens/summary"
	"github.com/tmakino/kotoba/internal/srs"
	"github.com/tmakino/kotoba/internal/trainer"
	"github.com/tmakino/kotoba/internal/ui/components"
	"github.com/tmakino/kotoba/internal/ui/layout"
)

const (
	vocabChoiceCount = 4
	tokenBankExtra   = 3

	// typedRecallReps is the repetition count at which a vocab item
	// graduates from multiple choice to typed recall.
	typedRecallReps = 2
)

// StudyScreen runs one study session: it presents drills for the items the
// trainer serves, grades answers, and hands the tally to the summary screen.
type StudyScreen struct {
	trainer *trainer.Trainer
	sampler *drill.Sampler
	hints   *hints.Service
	opts    trainer.SessionOptions

	item    catalog.Item
	hasItem bool
	mc      components.MultiChoice
	picker  components.TokenPicker
	input   components.TextInput
	typed   bool // typed recall instead of multiple choice

	showingFeedback bool
	lastCorrect     bool
	awaitingGrade   bool // four-tier: correct answer, grade not yet chosen
	hintText        string
	hintPending     bool

	quitConfirm bool
	errMsg      string
}

var _ screen.Screen = (*StudyScreen)(nil)
var _ screen.KeyHintProvider = (*StudyScreen)(nil)

// New creates a study screen. The session itself is started in Init so that
// an empty queue can be reported instead of crashing mid-navigation.
func New(tr *trainer.Trainer, sampler *drill.Sampler, hintSvc *hints.Service, opts trainer.SessionOptions) *StudyScreen {
	return &StudyScreen{
		trainer: tr,
		sampler: sampler,
		hints:   hintSvc,
		opts:    opts,
	}
}

func (s *StudyScreen) Init() tea.Cmd {
	return func() tea.Msg {
		return sessionInitMsg{OK: s.trainer.StartSession(s.opts)}
	}
}

func (s *StudyScreen) Title() string {
	if s.opts.Practice {
		return "Practice"
	}
	if s.opts.WeakReview {
		return "Weak Review"
	}
	return "Study"
}

func (s *StudyScreen) KeyHints() []layout.KeyHint {
	if s.quitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.showingFeedback {
		if s.awaitingGrade {
			return []layout.KeyHint{
				{Key: "1-3", Description: "Hard / Good / Easy"},
			}
		}
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	}
	if s.hasItem && s.item.Kind == catalog.KindSentence {
		return []layout.KeyHint{
			{Key: "←→", Description: "Move"},
			{Key: "Enter", Description: "Pick / Submit"},
			{Key: "Backspace", Description: "Undo"},
			{Key: "S", Description: "Skip"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	if s.typed {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Select"},
		{Key: "Enter", Description: "Submit"},
		{Key: "S", Description: "Skip"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *StudyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionInitMsg:
		if !msg.OK {
			s.errMsg = "Nothing to study right now. Come back later!"
			return s, nil
		}
		s.loadCurrent()
		return s, nil

	case hintReadyMsg:
		s.hintPending = false
		if msg.Err == nil && s.showingFeedback && s.hasItem && s.item.ID == msg.ItemID {
			s.hintText = msg.Text
		}
		return s, nil

	case sessionEndMsg:
		return s, s.finish()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	// Non-key messages (cursor blink) go to the active text input.
	if s.hasItem && s.typed && !s.showingFeedback && !s.quitConfirm {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *StudyScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.quitConfirm {
		switch key {
		case "y", "Y":
			return s, func() tea.Msg { return sessionEndMsg{} }
		case "n", "N", "esc":
			s.quitConfirm = false
		}
		return s, nil
	}

	if s.showingFeedback {
		return s.handleFeedbackKey(key)
	}

	if !s.hasItem {
		return s, nil
	}

	if key == "esc" {
		s.quitConfirm = true
		return s, nil
	}

	if s.item.Kind == catalog.KindSentence {
		if key == "enter" && s.picker.Complete() {
			return s.submit(drill.CheckTokens(s.item, s.picker.Answer()))
		}
		var cmd tea.Cmd
		s.picker, cmd = s.picker.Update(msg)
		return s, cmd
	}

	// Typed recall: every printable key belongs to the input.
	if s.typed {
		if key == "enter" {
			if strings.TrimSpace(s.input.Value()) == "" {
				return s, nil
			}
			return s.submit(drill.CheckVocab(s.item, s.input.Value()))
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	if key == "s" || key == "S" {
		if s.trainer.Skip(context.Background()) {
			s.loadCurrent()
			return s, nil
		}
		return s, func() tea.Msg { return sessionEndMsg{} }
	}

	var cmd tea.Cmd
	s.mc, cmd = s.mc.Update(msg)
	if s.mc.Submitted {
		return s.submit(s.mc.IsCorrect())
	}
	return s, cmd
}

// handleFeedbackKey applies the grade and moves to the next item.
func (s *StudyScreen) handleFeedbackKey(key string) (screen.Screen, tea.Cmd) {
	var g srs.Grade
	switch {
	case !s.lastCorrect:
		g = srs.GradeAgain
	case !s.awaitingGrade:
		g = srs.GradeGood
	default:
		switch key {
		case "1":
			g = srs.GradeHard
		case "2":
			g = srs.GradeGood
		case "3":
			g = srs.GradeEasy
		default:
			return s, nil
		}
	}

	more := s.trainer.Answer(context.Background(), g)
	s.showingFeedback = false
	s.awaitingGrade = false
	s.hintText = ""
	if !more {
		return s, func() tea.Msg { return sessionEndMsg{} }
	}
	s.loadCurrent()
	return s, nil
}

// submit grades the submitted answer and enters the feedback state. The
// grade itself is applied when feedback is dismissed so four-tier learners
// can pick how well they knew the item.
func (s *StudyScreen) submit(correct bool) (screen.Screen, tea.Cmd) {
	s.lastCorrect = correct
	s.showingFeedback = true
	s.awaitingGrade = correct && s.trainer.Params().Tiers == 4

	if !correct && s.hints != nil && s.item.Kind == catalog.KindVocab {
		s.hintPending = true
		return s, s.fetchHint(s.item)
	}
	return s, nil
}

// loadCurrent pulls the item under the session cursor and builds its drill.
func (s *StudyScreen) loadCurrent() {
	item, ok := s.trainer.Current()
	s.item = item
	s.hasItem = ok
	if !ok {
		return
	}
	if item.Kind == catalog.KindSentence {
		s.typed = false
		bank := s.sampler.TokenBank(item, s.trainer.Catalog(), tokenBankExtra)
		s.picker = components.NewTokenPicker(item.Prompt, bank)
		return
	}

	// Familiar vocab graduates to typed recall.
	rec, known := s.trainer.Profile().Record(item.ID)
	s.typed = known && rec.Repetitions >= typedRecallReps && !s.opts.Practice
	if s.typed {
		s.input = components.NewTextInput("Type the answer...", 32)
		return
	}

	choices := s.sampler.VocabChoices(item, s.trainer.Catalog(), vocabChoiceCount)
	correct := 0
	for i, c := range choices {
		if c == item.Target {
			correct = i
			break
		}
	}
	s.mc = components.NewMultiChoice(item.Prompt, choices, correct)
}

// fetchHint requests a mnemonic for a lapsed item in the background.
func (s *StudyScreen) fetchHint(item catalog.Item) tea.Cmd {
	svc := s.hints
	return func() tea.Msg {
		text, err := svc.Mnemonic(context.Background(), item)
		return hintReadyMsg{ItemID: item.ID, Text: text, Err: err}
	}
}

// finish replaces this screen with the summary so Esc from the summary
// lands back on home.
func (s *StudyScreen) finish() tea.Cmd {
	sum := s.trainer.Summary()
	s.trainer.Cancel()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(sum)}
	}
}

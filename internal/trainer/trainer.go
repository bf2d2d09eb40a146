// Package trainer coordinates the study loop. It owns the single live
// Profile and the single active Session, builds queues, applies grades to
// memory records, and mirrors every change to the store. The in-memory
// state is authoritative; persistence is best effort and its failure never
// rolls back or blocks a transition.
package trainer

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/tmakino/kotoba/internal/catalog"
	"github.com/tmakino/kotoba/internal/profile"
	"github.com/tmakino/kotoba/internal/queue"
	"github.com/tmakino/kotoba/internal/session"
	"github.com/tmakino/kotoba/internal/srs"
	"github.com/tmakino/kotoba/internal/store"
)

// Store is the persistence surface the trainer needs. *store.Store
// satisfies it; tests substitute fakes.
type Store interface {
	SaveProfile(ctx context.Context, p *profile.Profile) error
	AppendReview(ctx context.Context, r store.Review) error
	RecentAccuracy(ctx context.Context, since time.Time) (float64, int, error)
}

// Trainer mediates between the UI and the scheduling core.
type Trainer struct {
	catalog *catalog.Catalog
	profile *profile.Profile
	store   Store
	builder *queue.Builder
	params  srs.Params

	session *session.Session
	summary *session.Summary

	now func() time.Time
}

// Option tweaks trainer construction.
type Option func(*Trainer)

// WithRand injects the random source used for queue shuffles.
func WithRand(rng *rand.Rand) Option {
	return func(t *Trainer) { t.builder = queue.New(rng) }
}

// WithClock injects the time source.
func WithClock(now func() time.Time) Option {
	return func(t *Trainer) { t.now = now }
}

// New creates a Trainer over a loaded catalog and profile. The store may
// be nil for a purely in-memory trainer.
func New(cat *catalog.Catalog, p *profile.Profile, st Store, opts ...Option) *Trainer {
	if p == nil {
		p = profile.New()
	}
	t := &Trainer{
		catalog: cat,
		profile: p,
		store:   st,
		builder: queue.New(nil),
		params:  paramsFor(p.Prefs.GradeTiers),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func paramsFor(tiers int) srs.Params {
	if tiers == 4 {
		return srs.FourTierParams()
	}
	return srs.DefaultParams()
}

// Profile returns the live profile.
func (t *Trainer) Profile() *profile.Profile { return t.profile }

// Catalog returns the loaded catalog.
func (t *Trainer) Catalog() *catalog.Catalog { return t.catalog }

// Session returns the active session, or nil.
func (t *Trainer) Session() *session.Session { return t.session }

// Summary returns the tally for the current or just-finished session.
func (t *Trainer) Summary() *session.Summary { return t.summary }

// Params returns the grading parameters in effect.
func (t *Trainer) Params() srs.Params { return t.params }

// SessionOptions selects what kind of session to start.
type SessionOptions struct {
	Scope      string // category name or catalog.ScopeAll
	Size       int    // 0 means unlimited
	NewCap     int
	WeakReview bool
	Practice   bool // answers don't touch memory records or stats
}

// StartSession builds a queue for the given options and starts a session
// over it. Returns false when there is nothing to study; no session is
// created in that case.
func (t *Trainer) StartSession(opts SessionOptions) bool {
	items := t.catalog.InScope(opts.Scope)
	now := t.now()

	var q []catalog.Item
	if opts.WeakReview {
		q = t.builder.BuildWeakReview(items, t.profile.Memory, weakCount, weakMultiplier, opts.NewCap, now)
	} else {
		q = t.builder.Build(items, t.profile.Memory, opts.Size, opts.NewCap, now)
	}

	var s *session.Session
	if opts.Practice {
		s = session.StartPractice(opts.Scope, q)
	} else {
		s = session.Start(opts.Scope, q)
	}
	if s == nil {
		return false
	}
	t.session = s
	t.summary = session.NewSummary()
	return true
}

// Weak-review tuning: how many weak items to target and how many extra
// exposures each gets.
const (
	weakCount      = 5
	weakMultiplier = 3
)

// Current returns the item under the session cursor.
func (t *Trainer) Current() (catalog.Item, bool) {
	return t.session.Current()
}

// Answer applies a grade to the current item and advances the session by
// one slot, as a single logical transaction: the memory record and stats
// update first, then the persistence mirror, then the advance. Answering
// with no active session is a no-op. Returns true while the session still
// has items.
func (t *Trainer) Answer(ctx context.Context, g srs.Grade) bool {
	item, ok := t.session.Current()
	if !ok {
		return false
	}
	g = t.params.Clamp(g)

	if !t.session.Practice() {
		t.applyGrade(ctx, item.ID, g)
	}

	t.summary.Record(item.Category, g.Passing())
	return t.session.Advance()
}

// Skip consumes the current slot as a failing-grade advance: the item's
// memory record takes an Again grade exactly as a wrong answer would, but
// the session tally counts the slot as skipped rather than wrong. Practice
// sessions skip without touching the profile.
func (t *Trainer) Skip(ctx context.Context) bool {
	item, ok := t.session.Current()
	if !ok {
		return false
	}

	if !t.session.Practice() {
		t.applyGrade(ctx, item.ID, srs.GradeAgain)
	}

	t.summary.RecordSkip(item.Category)
	return t.session.Advance()
}

// applyGrade updates the item's memory record and the aggregate stats, then
// mirrors the change to the store. Answer and Skip both funnel through here
// so every consumed slot carries the same transaction shape.
func (t *Trainer) applyGrade(ctx context.Context, itemID string, g srs.Grade) {
	now := t.now()
	var prev *srs.MemoryRecord
	if rec, ok := t.profile.Record(itemID); ok {
		prev = &rec
	}
	next := srs.Update(prev, itemID, g, now, t.params)
	t.profile.SetRecord(next, now)
	t.profile.Stats.RecordAnswer(g.Passing(), now)
	t.persist(ctx, itemID, g, now)
}

// Cancel discards the active session.
func (t *Trainer) Cancel() {
	t.session.Cancel()
	t.session = nil
}

// persist mirrors one graded answer to the store. Failures are logged and
// swallowed; the in-memory state already changed and stays authoritative.
func (t *Trainer) persist(ctx context.Context, itemID string, g srs.Grade, now time.Time) {
	if t.store == nil {
		return
	}
	if err := t.store.AppendReview(ctx, store.Review{
		SessionID:  t.session.ID(),
		ItemID:     itemID,
		Grade:      g,
		Correct:    g.Passing(),
		ReviewedAt: now,
	}); err != nil {
		slog.Warn("review log write failed", "item", itemID, "error", err)
	}
	if err := t.store.SaveProfile(ctx, t.profile); err != nil {
		slog.Warn("profile save failed", "error", err)
	}
}

// DueCounts reports how many items are due and how many are new in the
// given scope, for the home screen.
func (t *Trainer) DueCounts(scope string) (due, fresh int) {
	p := queue.Classify(t.catalog.InScope(scope), t.profile.Memory, t.now())
	return len(p.Due), len(p.New)
}

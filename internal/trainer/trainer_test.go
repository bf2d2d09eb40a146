package trainer

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/tmakino/kotoba/internal/catalog"
	"github.com/tmakino/kotoba/internal/profile"
	"github.com/tmakino/kotoba/internal/srs"
	"github.com/tmakino/kotoba/internal/store"
)

var tNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

// fakeStore records calls and can be told to fail.
type fakeStore struct {
	saves    int
	reviews  []store.Review
	fail     bool
	accuracy float64
	total    int
}

func (f *fakeStore) SaveProfile(_ context.Context, _ *profile.Profile) error {
	if f.fail {
		return errors.New("disk full")
	}
	f.saves++
	return nil
}

func (f *fakeStore) AppendReview(_ context.Context, r store.Review) error {
	if f.fail {
		return errors.New("disk full")
	}
	f.reviews = append(f.reviews, r)
	return nil
}

func (f *fakeStore) RecentAccuracy(_ context.Context, _ time.Time) (float64, int, error) {
	if f.fail {
		return 0, 0, errors.New("disk full")
	}
	return f.accuracy, f.total, nil
}

func testCatalog() *catalog.Catalog {
	items := []catalog.Item{
		{ID: "a", Category: "basics", Kind: catalog.KindVocab, Prompt: "water", Target: "水"},
		{ID: "b", Category: "basics", Kind: catalog.KindVocab, Prompt: "fire", Target: "火"},
		{ID: "c", Category: "verbs", Kind: catalog.KindVocab, Prompt: "drink", Target: "飲む"},
	}
	return catalog.New(items)
}

func newTrainer(fs *fakeStore) *Trainer {
	return New(testCatalog(), profile.New(), fs,
		WithRand(rand.New(rand.NewSource(1))),
		WithClock(func() time.Time { return tNow }))
}

func TestStartSession_RefusesEmptyScope(t *testing.T) {
	tr := newTrainer(&fakeStore{})
	if tr.StartSession(SessionOptions{Scope: "nonexistent", Size: 10, NewCap: 5}) {
		t.Fatal("empty scope should not start a session")
	}
	if tr.Session() != nil {
		t.Error("no session should exist")
	}
}

func TestAnswer_UpdatesRecordStatsAndStore(t *testing.T) {
	fs := &fakeStore{}
	tr := newTrainer(fs)
	if !tr.StartSession(SessionOptions{Scope: catalog.ScopeAll, Size: 10, NewCap: 5}) {
		t.Fatal("expected session")
	}

	item, _ := tr.Current()
	tr.Answer(context.Background(), srs.GradeGood)

	rec, ok := tr.Profile().Record(item.ID)
	if !ok {
		t.Fatal("memory record not created")
	}
	if rec.Repetitions != 1 || rec.IntervalDays != 1 {
		t.Errorf("record = %+v", rec)
	}
	if tr.Profile().Stats.TotalReviews != 1 || tr.Profile().Stats.CorrectReviews != 1 {
		t.Errorf("stats = %+v", tr.Profile().Stats)
	}
	if fs.saves != 1 || len(fs.reviews) != 1 {
		t.Errorf("saves=%d reviews=%d, want 1/1", fs.saves, len(fs.reviews))
	}
	if fs.reviews[0].ItemID != item.ID || !fs.reviews[0].Correct {
		t.Errorf("logged review = %+v", fs.reviews[0])
	}
}

// Persistence failure must not roll back the in-memory update.
func TestAnswer_StoreFailureDoesNotRollBack(t *testing.T) {
	fs := &fakeStore{fail: true}
	tr := newTrainer(fs)
	tr.StartSession(SessionOptions{Scope: catalog.ScopeAll, Size: 10, NewCap: 5})

	item, _ := tr.Current()
	tr.Answer(context.Background(), srs.GradeGood)

	if _, ok := tr.Profile().Record(item.ID); !ok {
		t.Error("in-memory record lost on store failure")
	}
	if tr.Profile().Stats.TotalReviews != 1 {
		t.Error("in-memory stats lost on store failure")
	}
}

func TestAnswer_SessionRunsToCompletion(t *testing.T) {
	tr := newTrainer(&fakeStore{})
	tr.StartSession(SessionOptions{Scope: catalog.ScopeAll, Size: 10, NewCap: 5})
	total := tr.Session().Total()

	ctx := context.Background()
	for i := 0; i < total-1; i++ {
		if !tr.Answer(ctx, srs.GradeGood) {
			t.Fatalf("session ended after %d of %d answers", i+1, total)
		}
	}
	if tr.Answer(ctx, srs.GradeGood) {
		t.Error("last answer should complete the session")
	}
	if !tr.Session().Completed() {
		t.Error("session not completed")
	}

	// Stale events after completion are ignored.
	if tr.Answer(ctx, srs.GradeGood) {
		t.Error("answer after completion should be a no-op")
	}
	if tr.Profile().Stats.TotalReviews != total {
		t.Errorf("reviews = %d, want %d", tr.Profile().Stats.TotalReviews, total)
	}
}

func TestAnswer_NoSessionIsNoOp(t *testing.T) {
	tr := newTrainer(&fakeStore{})
	if tr.Answer(context.Background(), srs.GradeGood) {
		t.Error("answer without session should report inactive")
	}
	if tr.Profile().Stats.TotalReviews != 0 {
		t.Error("no stats should change")
	}
}

// A skip is a failing-grade advance: the item is rescheduled as if it had
// been answered wrong, only the session tally tells the two apart.
func TestSkip_AppliesFailingGrade(t *testing.T) {
	fs := &fakeStore{}
	tr := newTrainer(fs)
	tr.StartSession(SessionOptions{Scope: catalog.ScopeAll, Size: 10, NewCap: 5})

	item, _ := tr.Current()
	before := tr.Session().Index()
	tr.Skip(context.Background())

	if tr.Session().Index() != before+1 {
		t.Error("skip should advance exactly one slot")
	}
	rec, ok := tr.Profile().Record(item.ID)
	if !ok {
		t.Fatal("skip should create a memory record")
	}
	if rec.Lapses != 1 || rec.Repetitions != 0 || rec.IntervalDays != 1 {
		t.Errorf("record = %+v, want a lapsed one-day reschedule", rec)
	}
	if tr.Profile().Stats.TotalReviews != 1 || tr.Profile().Stats.CorrectReviews != 0 {
		t.Errorf("stats = %+v", tr.Profile().Stats)
	}
	if len(fs.reviews) != 1 || fs.reviews[0].Correct {
		t.Errorf("logged reviews = %+v, want one failing review", fs.reviews)
	}
	if tr.Summary().Skipped() != 1 || tr.Summary().Attempted() != 1 {
		t.Errorf("summary = %d skipped / %d attempted", tr.Summary().Skipped(), tr.Summary().Attempted())
	}
}

func TestSkip_PracticeLeavesProfileUntouched(t *testing.T) {
	fs := &fakeStore{}
	tr := newTrainer(fs)
	tr.StartSession(SessionOptions{Scope: catalog.ScopeAll, Size: 10, NewCap: 5, Practice: true})

	item, _ := tr.Current()
	tr.Skip(context.Background())

	if _, ok := tr.Profile().Record(item.ID); ok {
		t.Error("practice skip must not create a memory record")
	}
	if fs.saves != 0 || len(fs.reviews) != 0 {
		t.Error("practice skip must not hit the store")
	}
	if tr.Summary().Skipped() != 1 {
		t.Errorf("skipped = %d, want 1", tr.Summary().Skipped())
	}
}

func TestPracticeSession_LeavesProfileUntouched(t *testing.T) {
	fs := &fakeStore{}
	tr := newTrainer(fs)
	tr.StartSession(SessionOptions{Scope: catalog.ScopeAll, Size: 10, NewCap: 5, Practice: true})

	tr.Answer(context.Background(), srs.GradeGood)

	if len(tr.Profile().Memory) != 0 || tr.Profile().Stats.TotalReviews != 0 {
		t.Error("practice answers must not touch the profile")
	}
	if fs.saves != 0 || len(fs.reviews) != 0 {
		t.Error("practice answers must not hit the store")
	}
	if tr.Summary().Attempted() != 1 {
		t.Error("practice answers still count in the session tally")
	}
}

func TestTwoTierClampInAnswer(t *testing.T) {
	tr := newTrainer(&fakeStore{}) // default prefs: 2 tiers
	tr.StartSession(SessionOptions{Scope: catalog.ScopeAll, Size: 10, NewCap: 5})

	item, _ := tr.Current()
	tr.Answer(context.Background(), srs.GradeEasy)

	rec, _ := tr.Profile().Record(item.ID)
	want := srs.InitialEase + 0.05 // Easy collapses to Good in the two-tier scheme
	if rec.Ease != want {
		t.Errorf("ease = %v, want %v", rec.Ease, want)
	}
}

func TestCancel(t *testing.T) {
	tr := newTrainer(&fakeStore{})
	tr.StartSession(SessionOptions{Scope: catalog.ScopeAll, Size: 10, NewCap: 5})
	tr.Cancel()
	if tr.Session() != nil {
		t.Error("cancel should discard the session")
	}
	if tr.Answer(context.Background(), srs.GradeGood) {
		t.Error("answer after cancel should be a no-op")
	}
}

func TestDueCounts(t *testing.T) {
	tr := newTrainer(&fakeStore{})
	tr.Profile().Memory["a"] = srs.MemoryRecord{ItemID: "a", Ease: srs.InitialEase, DueAt: tNow.Add(-time.Hour)}

	due, fresh := tr.DueCounts(catalog.ScopeAll)
	if due != 1 || fresh != 2 {
		t.Errorf("due=%d fresh=%d, want 1/2", due, fresh)
	}
}

func TestSuggestSessionSize(t *testing.T) {
	cases := []struct {
		name     string
		store    *fakeStore
		hour     int
		want     int
	}{
		{"no history", &fakeStore{total: 3}, 9, sizeMedium},
		{"high accuracy", &fakeStore{accuracy: 0.9, total: 40}, 9, sizeLong},
		{"low accuracy", &fakeStore{accuracy: 0.4, total: 40}, 9, sizeShort},
		{"late night", &fakeStore{accuracy: 0.9, total: 40}, 23, sizeShort},
		{"store failure", &fakeStore{fail: true}, 9, sizeMedium},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			at := time.Date(2025, 3, 10, tc.hour, 0, 0, 0, time.UTC)
			tr := New(testCatalog(), profile.New(), tc.store,
				WithClock(func() time.Time { return at }))
			if got := tr.SuggestSessionSize(context.Background()); got != tc.want {
				t.Errorf("suggest = %d, want %d", got, tc.want)
			}
		})
	}
}

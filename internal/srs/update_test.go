package srs

import (
	"math/rand"
	"testing"
	"time"
)

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func TestUpdate_FreshRecordSynthesized(t *testing.T) {
	got := Update(nil, "vocab-1", GradeGood, testNow, DefaultParams())
	if got.ItemID != "vocab-1" {
		t.Errorf("ItemID = %q, want %q", got.ItemID, "vocab-1")
	}
	if got.Repetitions != 1 {
		t.Errorf("Repetitions = %d, want 1", got.Repetitions)
	}
	if got.IntervalDays != 1 {
		t.Errorf("IntervalDays = %d, want 1", got.IntervalDays)
	}
	if got.Lapses != 0 {
		t.Errorf("Lapses = %d, want 0", got.Lapses)
	}
	if !got.LastReviewedAt.Equal(testNow) {
		t.Errorf("LastReviewedAt = %v, want %v", got.LastReviewedAt, testNow)
	}
	if !got.DueAt.Equal(testNow.AddDate(0, 0, 1)) {
		t.Errorf("DueAt = %v, want %v", got.DueAt, testNow.AddDate(0, 0, 1))
	}
}

func TestUpdate_InputNotMutated(t *testing.T) {
	rec := NewRecord("vocab-1", testNow)
	before := rec
	_ = Update(&rec, "vocab-1", GradeAgain, testNow, DefaultParams())
	if rec != before {
		t.Error("input record was mutated")
	}
}

// Three consecutive passes in the two-tier scheme: intervals 1, 6, then
// round(6 * ease) with ease nudged +0.05 per pass from the initial 2.5.
func TestUpdate_ThreeGoodPasses(t *testing.T) {
	p := DefaultParams()
	rec := Update(nil, "v", GradeGood, testNow, p)
	if rec.IntervalDays != 1 || rec.Repetitions != 1 {
		t.Fatalf("after 1st: interval=%d reps=%d, want 1/1", rec.IntervalDays, rec.Repetitions)
	}
	if rec.Ease != 2.55 {
		t.Fatalf("after 1st: ease=%v, want 2.55", rec.Ease)
	}

	rec = Update(&rec, "v", GradeGood, testNow.AddDate(0, 0, 1), p)
	if rec.IntervalDays != 6 || rec.Repetitions != 2 {
		t.Fatalf("after 2nd: interval=%d reps=%d, want 6/2", rec.IntervalDays, rec.Repetitions)
	}

	rec = Update(&rec, "v", GradeGood, testNow.AddDate(0, 0, 7), p)
	// ease 2.6 + 0.05 = 2.65; round(6 * 2.65) = 16
	if rec.IntervalDays != 16 || rec.Repetitions != 3 {
		t.Fatalf("after 3rd: interval=%d reps=%d, want 16/3", rec.IntervalDays, rec.Repetitions)
	}
}

func TestUpdate_FailureResetsStreak(t *testing.T) {
	p := DefaultParams()
	rec := Update(nil, "v", GradeGood, testNow, p)
	rec = Update(&rec, "v", GradeGood, testNow.AddDate(0, 0, 1), p)

	easeBefore := rec.Ease
	rec = Update(&rec, "v", GradeAgain, testNow.AddDate(0, 0, 7), p)

	if rec.Repetitions != 0 {
		t.Errorf("Repetitions = %d, want 0", rec.Repetitions)
	}
	if rec.Lapses != 1 {
		t.Errorf("Lapses = %d, want 1", rec.Lapses)
	}
	if rec.IntervalDays != 1 {
		t.Errorf("IntervalDays = %d, want 1", rec.IntervalDays)
	}
	want := easeBefore - 0.20
	if diff := rec.Ease - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Ease = %v, want %v", rec.Ease, want)
	}
}

func TestUpdate_EaseFloorHoldsForAnyGradeSequence(t *testing.T) {
	p := FourTierParams()
	rng := rand.New(rand.NewSource(7))

	rec := Update(nil, "v", GradeAgain, testNow, p)
	now := testNow
	for i := 0; i < 500; i++ {
		now = now.AddDate(0, 0, 1)
		rec = Update(&rec, "v", Grade(rng.Intn(4)), now, p)
		if rec.Ease < MinEase {
			t.Fatalf("step %d: ease %v below floor %v", i, rec.Ease, MinEase)
		}
		if rec.Strength < 0 || rec.Strength > MaxStrength {
			t.Fatalf("step %d: strength %d out of range", i, rec.Strength)
		}
	}
}

func TestUpdate_IntervalMonotonicOnSuccess(t *testing.T) {
	p := DefaultParams()
	rec := Update(nil, "v", GradeGood, testNow, p)
	rec = Update(&rec, "v", GradeGood, testNow, p)

	now := testNow
	for i := 0; i < 20; i++ {
		prev := rec.IntervalDays
		now = now.AddDate(0, 0, prev)
		rec = Update(&rec, "v", GradeGood, now, p)
		if rec.IntervalDays < prev {
			t.Fatalf("interval shrank on success: %d -> %d", prev, rec.IntervalDays)
		}
	}
}

func TestUpdate_StrengthPenaltyFlooredAtZero(t *testing.T) {
	p := DefaultParams()
	rec := Update(nil, "v", GradeGood, testNow, p) // strength 8
	rec = Update(&rec, "v", GradeAgain, testNow, p)
	if rec.Strength != 0 {
		t.Errorf("Strength = %d, want 0", rec.Strength)
	}
}

func TestUpdate_StrengthCappedAtHundred(t *testing.T) {
	p := FourTierParams()
	rec := Update(nil, "v", GradeEasy, testNow, p)
	for i := 0; i < 20; i++ {
		rec = Update(&rec, "v", GradeEasy, testNow, p)
	}
	if rec.Strength != MaxStrength {
		t.Errorf("Strength = %d, want %d", rec.Strength, MaxStrength)
	}
}

func TestUpdate_TwoTierCollapsesPassingGrades(t *testing.T) {
	p := DefaultParams()
	easy := Update(nil, "v", GradeEasy, testNow, p)
	good := Update(nil, "v", GradeGood, testNow, p)
	if easy != good {
		t.Error("two-tier scheme should grade easy and good identically")
	}
}

func TestUpdate_FourTierSecondInterval(t *testing.T) {
	p := FourTierParams()
	rec := Update(nil, "v", GradeGood, testNow, p)
	rec = Update(&rec, "v", GradeGood, testNow.AddDate(0, 0, 1), p)
	if rec.IntervalDays != 3 {
		t.Errorf("IntervalDays = %d, want 3", rec.IntervalDays)
	}
}

func TestIsDue(t *testing.T) {
	rec := MemoryRecord{DueAt: testNow}
	if !rec.IsDue(testNow) {
		t.Error("expected due at exact due date")
	}
	if rec.IsDue(testNow.Add(-time.Hour)) {
		t.Error("expected not due before due date")
	}
	if !rec.IsDue(testNow.Add(time.Hour)) {
		t.Error("expected due after due date")
	}
}

func TestOverdueDays(t *testing.T) {
	rec := MemoryRecord{DueAt: testNow}
	if got := rec.OverdueDays(testNow.Add(-time.Hour)); got != 0 {
		t.Errorf("OverdueDays before due = %f, want 0", got)
	}
	got := rec.OverdueDays(testNow.Add(72 * time.Hour))
	if got < 2.99 || got > 3.01 {
		t.Errorf("OverdueDays = %f, want ~3.0", got)
	}
}

package srs

import (
	"math"
	"time"
)

const (
	// InitialEase is the ease factor assigned to a never-reviewed item.
	InitialEase = 2.5

	// MinEase is the floor enforced on every update.
	MinEase = 1.3

	// MaxEase caps interval growth for items that are graded easy repeatedly.
	MaxEase = 3.0

	// LapseStrengthPenalty is subtracted from strength on a failed review.
	LapseStrengthPenalty = 15

	// MaxStrength is the cap for the mastery estimate.
	MaxStrength = 100
)

// Params configures the updater. Tier count is a configuration choice, not a
// structural difference: two-tier schemes grade every pass as GradeGood.
type Params struct {
	// Tiers is the number of grade tiers in use: 2 (again/good) or 4.
	Tiers int

	// SecondInterval is the interval in days after the second consecutive
	// success. The classic two-tier scheme uses 6; the four-tier scheme
	// uses 3.
	SecondInterval int

	// EaseDelta maps each grade to its ease factor adjustment.
	EaseDelta map[Grade]float64

	// StrengthDelta maps each passing grade to its strength gain.
	StrengthDelta map[Grade]int
}

// DefaultParams returns the canonical two-tier parameter set.
func DefaultParams() Params {
	return Params{
		Tiers:          2,
		SecondInterval: 6,
		EaseDelta: map[Grade]float64{
			GradeAgain: -0.20,
			GradeHard:  -0.15,
			GradeGood:  0.05,
			GradeEasy:  0.15,
		},
		StrengthDelta: map[Grade]int{
			GradeHard: 4,
			GradeGood: 8,
			GradeEasy: 12,
		},
	}
}

// FourTierParams returns the richer four-grade parameter set. The shorter
// second interval compensates for the finer-grained ease adjustments.
func FourTierParams() Params {
	p := DefaultParams()
	p.Tiers = 4
	p.SecondInterval = 3
	return p
}

// Clamp coerces an out-of-range grade into the configured tier set.
// Two-tier schemes collapse all passing grades to GradeGood.
func (p Params) Clamp(g Grade) Grade {
	if g < GradeAgain {
		return GradeAgain
	}
	if g > GradeEasy {
		g = GradeEasy
	}
	if p.Tiers == 2 && g.Passing() {
		return GradeGood
	}
	return g
}

// Update applies a graded review to a memory record and returns the new
// record. A nil record means the item has never been reviewed; a fresh
// record is synthesized before the grade is applied. The input record is
// never mutated, and now is the only exogenous input.
func Update(rec *MemoryRecord, itemID string, g Grade, now time.Time, p Params) MemoryRecord {
	var next MemoryRecord
	if rec == nil {
		next = NewRecord(itemID, now)
	} else {
		next = *rec
	}

	g = p.Clamp(g)

	// Ease adjusts first; interval growth below uses the updated value.
	next.Ease += p.EaseDelta[g]
	if next.Ease < MinEase {
		next.Ease = MinEase
	}
	if next.Ease > MaxEase {
		next.Ease = MaxEase
	}

	if g == GradeAgain {
		next.Repetitions = 0
		next.Lapses++
		next.IntervalDays = 1
		next.Strength -= LapseStrengthPenalty
		if next.Strength < 0 {
			next.Strength = 0
		}
	} else {
		next.Repetitions++
		switch next.Repetitions {
		case 1:
			next.IntervalDays = 1
		case 2:
			next.IntervalDays = p.SecondInterval
		default:
			next.IntervalDays = int(math.Round(float64(next.IntervalDays) * next.Ease))
		}
		next.Strength += p.StrengthDelta[g]
		if next.Strength > MaxStrength {
			next.Strength = MaxStrength
		}
	}

	next.DueAt = now.AddDate(0, 0, next.IntervalDays)
	next.LastReviewedAt = now

	return next
}

// Package profile holds the learner's persisted state: memory records for
// every reviewed item, lifetime aggregate stats, and study preferences. A
// Profile is an explicit value passed into and out of the core; the store
// serializes it, the trainer owns the live copy.
package profile

import (
	"time"

	"github.com/tmakino/kotoba/internal/srs"
)

// Preferences are the learner-tunable study options.
type Preferences struct {
	SessionSize int    `json:"session_size"` // 0 means unlimited
	NewItemCap  int    `json:"new_item_cap"`
	GradeTiers  int    `json:"grade_tiers"` // 2 or 4
	AutoSuggest bool   `json:"auto_suggest"`
	DecksDir    string `json:"decks_dir,omitempty"`
}

// DefaultPreferences returns the out-of-the-box study options.
func DefaultPreferences() Preferences {
	return Preferences{
		SessionSize: 10,
		NewItemCap:  5,
		GradeTiers:  2,
	}
}

// AggregateStats are lifetime counters, never decremented except by an
// explicit reset.
type AggregateStats struct {
	TotalReviews   int       `json:"total_reviews"`
	CorrectReviews int       `json:"correct_reviews"`
	CurrentStreak  int       `json:"current_streak"`
	LastStudyDate  time.Time `json:"last_study_date,omitzero"`
}

// RecordAnswer updates the counters for one graded answer. The streak
// advances on the first answer of a new day and restarts after a gap of
// more than one day.
func (a *AggregateStats) RecordAnswer(correct bool, now time.Time) {
	a.TotalReviews++
	if correct {
		a.CorrectReviews++
	}

	today := dateOf(now)
	switch {
	case a.LastStudyDate.IsZero():
		a.CurrentStreak = 1
	case today.Equal(dateOf(a.LastStudyDate)):
		// Same day, streak unchanged.
	case today.Equal(dateOf(a.LastStudyDate).AddDate(0, 0, 1)):
		a.CurrentStreak++
	default:
		a.CurrentStreak = 1
	}
	a.LastStudyDate = today
}

// Accuracy returns correct/total in [0,1], or 0 before any reviews.
func (a AggregateStats) Accuracy() float64 {
	if a.TotalReviews == 0 {
		return 0
	}
	return float64(a.CorrectReviews) / float64(a.TotalReviews)
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Profile is the complete persisted learner state.
type Profile struct {
	Memory    map[string]srs.MemoryRecord `json:"memory"`
	Stats     AggregateStats              `json:"stats"`
	Prefs     Preferences                 `json:"prefs"`
	UpdatedAt time.Time                   `json:"updated_at,omitzero"`
}

// New returns an empty profile with default preferences.
func New() *Profile {
	return &Profile{
		Memory: make(map[string]srs.MemoryRecord),
		Prefs:  DefaultPreferences(),
	}
}

// Record returns the memory record for an item id, if any.
func (p *Profile) Record(itemID string) (srs.MemoryRecord, bool) {
	rec, ok := p.Memory[itemID]
	return rec, ok
}

// SetRecord stores an updated memory record and stamps the profile.
func (p *Profile) SetRecord(rec srs.MemoryRecord, now time.Time) {
	if p.Memory == nil {
		p.Memory = make(map[string]srs.MemoryRecord)
	}
	p.Memory[rec.ItemID] = rec
	p.UpdatedAt = now
}

// Reset drops all memory records and lifetime stats, keeping preferences.
func (p *Profile) Reset(now time.Time) {
	p.Memory = make(map[string]srs.MemoryRecord)
	p.Stats = AggregateStats{}
	p.UpdatedAt = now
}

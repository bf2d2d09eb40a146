package srs

import "time"

// MemoryRecord holds the spaced repetition state for a single catalog item.
// A catalog item with no MemoryRecord has never been reviewed.
type MemoryRecord struct {
	ItemID         string    `json:"item_id"`
	Repetitions    int       `json:"repetitions"`
	Lapses         int       `json:"lapses"`
	Ease           float64   `json:"ease"`
	IntervalDays   int       `json:"interval_days"`
	DueAt          time.Time `json:"due_at"`
	LastReviewedAt time.Time `json:"last_reviewed_at"`
	Strength       int       `json:"strength"`
}

// IsDue returns true if the item is due for review (at or past the due date).
func (r *MemoryRecord) IsDue(now time.Time) bool {
	return !now.Before(r.DueAt)
}

// OverdueDays returns how many days past due the item is. Returns 0 if not yet due.
func (r *MemoryRecord) OverdueDays(now time.Time) float64 {
	if now.Before(r.DueAt) {
		return 0
	}
	return now.Sub(r.DueAt).Hours() / 24.0
}

// DaysUntilDue returns the number of days until the next review.
// Returns 0 if already due.
func (r *MemoryRecord) DaysUntilDue(now time.Time) int {
	if r.IsDue(now) {
		return 0
	}
	return int(r.DueAt.Sub(now).Hours()/24.0) + 1
}

// NewRecord synthesizes a fresh record for an item reviewed for the first
// time. The zero interval makes the item immediately due.
func NewRecord(itemID string, now time.Time) MemoryRecord {
	return MemoryRecord{
		ItemID:   itemID,
		Ease:     InitialEase,
		DueAt:    now,
		Strength: 0,
	}
}

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/tmakino/kotoba/internal/srs"
)

// Review is one graded answer in the append-only review log.
type Review struct {
	SessionID  string
	ItemID     string
	Grade      srs.Grade
	Correct    bool
	ReviewedAt time.Time
}

// AppendReview records one graded answer.
func (s *Store) AppendReview(ctx context.Context, r Review) error {
	correct := 0
	if r.Correct {
		correct = 1
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO review_log (session_id, item_id, grade, correct, reviewed_at)
		VALUES (?, ?, ?, ?, ?)`,
		r.SessionID, r.ItemID, r.Grade.String(), correct,
		r.ReviewedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("append review: %w", err)
	}
	return nil
}

// RecentAccuracy returns correct/total over reviews since the cutoff, and
// the number of reviews considered. Zero reviews yields accuracy 0.
func (s *Store) RecentAccuracy(ctx context.Context, since time.Time) (float64, int, error) {
	var total, correct int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(correct), 0)
		FROM review_log WHERE reviewed_at >= ?`,
		since.UTC().Format(time.RFC3339)).Scan(&total, &correct)
	if err != nil {
		return 0, 0, fmt.Errorf("recent accuracy: %w", err)
	}
	if total == 0 {
		return 0, 0, nil
	}
	return float64(correct) / float64(total), total, nil
}

// ReviewsPerDay returns review counts per UTC day for the last n days,
// oldest first, for the stats screen.
func (s *Store) ReviewsPerDay(ctx context.Context, n int, now time.Time) ([]int, error) {
	start := now.UTC().AddDate(0, 0, -(n - 1)).Truncate(24 * time.Hour)
	rows, err := s.db.QueryContext(ctx, `
		SELECT substr(reviewed_at, 1, 10), COUNT(*)
		FROM review_log WHERE reviewed_at >= ?
		GROUP BY 1`, start.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("reviews per day: %w", err)
	}
	defer rows.Close()

	byDay := make(map[string]int)
	for rows.Next() {
		var day string
		var count int
		if err := rows.Scan(&day, &count); err != nil {
			return nil, fmt.Errorf("reviews per day: %w", err)
		}
		byDay[day] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reviews per day: %w", err)
	}

	out := make([]int, n)
	for i := 0; i < n; i++ {
		day := start.AddDate(0, 0, i).Format("2006-01-02")
		out[i] = byDay[day]
	}
	return out, nil
}

package session

import "sort"

// CategoryResult is the per-category tally for one finished session.
type CategoryResult struct {
	Category  string
	Attempted int
	Correct   int
}

// Summary accumulates graded results over the course of a session for the
// completion screen. It is write-only during the session and read once at
// the end.
type Summary struct {
	byCategory map[string]*CategoryResult
	attempted  int
	correct    int
	skipped    int
}

// NewSummary returns an empty tally.
func NewSummary() *Summary {
	return &Summary{byCategory: make(map[string]*CategoryResult)}
}

// Record tallies one graded answer.
func (s *Summary) Record(category string, correct bool) {
	r, ok := s.byCategory[category]
	if !ok {
		r = &CategoryResult{Category: category}
		s.byCategory[category] = r
	}
	r.Attempted++
	s.attempted++
	if correct {
		r.Correct++
		s.correct++
	}
}

// RecordSkip tallies a skipped item. Skips count as attempts.
func (s *Summary) RecordSkip(category string) {
	s.Record(category, false)
	s.skipped++
}

// Attempted returns the total number of answered or skipped items.
func (s *Summary) Attempted() int { return s.attempted }

// Correct returns the number of passing answers.
func (s *Summary) Correct() int { return s.correct }

// Skipped returns the number of skipped items.
func (s *Summary) Skipped() int { return s.skipped }

// Accuracy returns correct/attempted in [0,1], or 0 for an empty session.
func (s *Summary) Accuracy() float64 {
	if s.attempted == 0 {
		return 0
	}
	return float64(s.correct) / float64(s.attempted)
}

// Categories returns the per-category results sorted by category name.
func (s *Summary) Categories() []CategoryResult {
	out := make([]CategoryResult, 0, len(s.byCategory))
	for _, r := range s.byCategory {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

package srs

// Grade is an ordinal review grade. Two-tier configurations use only
// GradeAgain and GradeGood; four-tier configurations use all four.
type Grade int

const (
	GradeAgain Grade = iota
	GradeHard
	GradeGood
	GradeEasy
)

// Passing returns true for any grade above the failure tier.
func (g Grade) Passing() bool {
	return g > GradeAgain
}

// String returns the lowercase grade name.
func (g Grade) String() string {
	switch g {
	case GradeAgain:
		return "again"
	case GradeHard:
		return "hard"
	case GradeGood:
		return "good"
	case GradeEasy:
		return "easy"
	}
	return "unknown"
}

// GradeFromString parses a grade name back to the Grade type.
// Unknown names map to GradeAgain.
func GradeFromString(s string) Grade {
	switch s {
	case "hard":
		return GradeHard
	case "good":
		return GradeGood
	case "easy":
		return GradeEasy
	}
	return GradeAgain
}

package profile

// Merge combines a local and a remote profile into a new one without
// mutating either. Per item id the memory record with more review history
// wins (repetitions plus lapses, then strength, then later last-review
// time), lifetime counters take the maximum of the two sides, the streak
// fields follow whichever side studied later, and preferences follow the
// side with the later profile timestamp. Progress is never silently
// dropped: an id present on either side is present in the result.
func Merge(local, remote *Profile) *Profile {
	if local == nil {
		local = New()
	}
	if remote == nil {
		remote = New()
	}

	out := New()
	for id, rec := range local.Memory {
		out.Memory[id] = rec
	}
	for id, rrec := range remote.Memory {
		lrec, ok := out.Memory[id]
		if !ok {
			out.Memory[id] = rrec
			continue
		}
		lh, rh := lrec.Repetitions+lrec.Lapses, rrec.Repetitions+rrec.Lapses
		switch {
		case rh > lh:
			out.Memory[id] = rrec
		case rh == lh && rrec.Strength > lrec.Strength:
			out.Memory[id] = rrec
		case rh == lh && rrec.Strength == lrec.Strength && rrec.LastReviewedAt.After(lrec.LastReviewedAt):
			out.Memory[id] = rrec
		}
	}

	out.Stats = AggregateStats{
		TotalReviews:   maxInt(local.Stats.TotalReviews, remote.Stats.TotalReviews),
		CorrectReviews: maxInt(local.Stats.CorrectReviews, remote.Stats.CorrectReviews),
	}
	if remote.Stats.LastStudyDate.After(local.Stats.LastStudyDate) {
		out.Stats.CurrentStreak = remote.Stats.CurrentStreak
		out.Stats.LastStudyDate = remote.Stats.LastStudyDate
	} else {
		out.Stats.CurrentStreak = local.Stats.CurrentStreak
		out.Stats.LastStudyDate = local.Stats.LastStudyDate
	}

	if remote.UpdatedAt.After(local.UpdatedAt) {
		out.Prefs = remote.Prefs
		out.UpdatedAt = remote.UpdatedAt
	} else {
		out.Prefs = local.Prefs
		out.UpdatedAt = local.UpdatedAt
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

package profile

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tmakino/kotoba/internal/srs"
)

// Encode serializes a profile in its canonical form.
func Encode(p *Profile) ([]byte, error) {
	return json.Marshal(p)
}

// Decode deserializes a stored profile, tolerating older and loosely-typed
// payloads: missing fields default, numbers stored as strings coerce, and
// timestamps are accepted as RFC 3339 strings or epoch milliseconds.
// Records that cannot be made sense of are dropped rather than failing the
// whole profile.
func Decode(data []byte) (*Profile, error) {
	var raw storedProfile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}

	p := New()
	for id, sr := range raw.Memory {
		if sr == nil {
			continue
		}
		rec := sr.toRecord(id)
		if rec.ItemID == "" {
			continue
		}
		p.Memory[rec.ItemID] = rec
	}

	p.Stats = AggregateStats{
		TotalReviews:   raw.Stats.TotalReviews.value,
		CorrectReviews: raw.Stats.CorrectReviews.value,
		CurrentStreak:  raw.Stats.CurrentStreak.value,
		LastStudyDate:  raw.Stats.LastStudyDate.value,
	}
	if raw.Prefs != nil {
		if raw.Prefs.SessionSize.set {
			p.Prefs.SessionSize = raw.Prefs.SessionSize.value
		}
		if raw.Prefs.NewItemCap.set {
			p.Prefs.NewItemCap = raw.Prefs.NewItemCap.value
		}
		if raw.Prefs.GradeTiers.set {
			p.Prefs.GradeTiers = raw.Prefs.GradeTiers.value
		}
		p.Prefs.AutoSuggest = raw.Prefs.AutoSuggest
		p.Prefs.DecksDir = raw.Prefs.DecksDir
	}
	p.UpdatedAt = raw.UpdatedAt.value
	return p, nil
}

type storedProfile struct {
	Memory    map[string]*storedRecord `json:"memory"`
	Stats     storedStats              `json:"stats"`
	Prefs     *storedPrefs             `json:"prefs"`
	UpdatedAt flexTime                 `json:"updated_at"`
}

type storedRecord struct {
	ItemID         string    `json:"item_id"`
	Repetitions    flexInt   `json:"repetitions"`
	Lapses         flexInt   `json:"lapses"`
	Ease           flexFloat `json:"ease"`
	IntervalDays   flexInt   `json:"interval_days"`
	DueAt          flexTime  `json:"due_at"`
	LastReviewedAt flexTime  `json:"last_reviewed_at"`
	Strength       flexInt   `json:"strength"`
}

func (sr *storedRecord) toRecord(mapKey string) srs.MemoryRecord {
	rec := srs.MemoryRecord{
		ItemID:         sr.ItemID,
		Repetitions:    sr.Repetitions.value,
		Lapses:         sr.Lapses.value,
		Ease:           sr.Ease.value,
		IntervalDays:   sr.IntervalDays.value,
		DueAt:          sr.DueAt.value,
		LastReviewedAt: sr.LastReviewedAt.value,
		Strength:       sr.Strength.value,
	}
	if rec.ItemID == "" {
		rec.ItemID = mapKey
	}
	if rec.Ease < srs.MinEase {
		rec.Ease = srs.InitialEase
	}
	if rec.Strength < 0 {
		rec.Strength = 0
	}
	if rec.Strength > srs.MaxStrength {
		rec.Strength = srs.MaxStrength
	}
	return rec
}

type storedStats struct {
	TotalReviews   flexInt  `json:"total_reviews"`
	CorrectReviews flexInt  `json:"correct_reviews"`
	CurrentStreak  flexInt  `json:"current_streak"`
	LastStudyDate  flexTime `json:"last_study_date"`
}

type storedPrefs struct {
	SessionSize flexInt `json:"session_size"`
	NewItemCap  flexInt `json:"new_item_cap"`
	GradeTiers  flexInt `json:"grade_tiers"`
	AutoSuggest bool    `json:"auto_suggest"`
	DecksDir    string  `json:"decks_dir"`
}

// flexInt accepts a JSON number or a numeric string.
type flexInt struct {
	value int
	set   bool
}

func (f *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil // tolerate garbage, keep the zero value
	}
	f.value = int(v)
	f.set = true
	return nil
}

// flexFloat accepts a JSON number or a numeric string.
type flexFloat struct {
	value float64
	set   bool
}

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	f.value = v
	f.set = true
	return nil
}

// flexTime accepts an RFC 3339 string or epoch milliseconds, either as a
// number or a numeric string.
type flexTime struct {
	value time.Time
}

func (f *flexTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		f.value = t
		return nil
	}
	if ms, err := strconv.ParseFloat(s, 64); err == nil {
		f.value = time.UnixMilli(int64(ms)).UTC()
	}
	return nil
}

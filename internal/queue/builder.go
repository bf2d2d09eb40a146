// Package queue builds bounded, shuffled study queues from the catalog and
// the learner's memory state. Selection priority is deterministic; final
// review order is randomized.
package queue

import (
	"math/rand"
	"sort"
	"time"

	"github.com/tmakino/kotoba/internal/catalog"
	"github.com/tmakino/kotoba/internal/srs"
)

// Unlimited disables the session size bound.
const Unlimited = 0

// Builder constructs study queues. The random source is injected so tests
// can assert exact queue contents.
type Builder struct {
	rng *rand.Rand
}

// New creates a Builder using the given random source. A nil source falls
// back to a time-seeded one.
func New(rng *rand.Rand) *Builder {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Builder{rng: rng}
}

// Partition splits the in-scope catalog items by review status.
type Partition struct {
	Due     []catalog.Item // has record, due; sorted oldest-overdue first
	New     []catalog.Item // no record
	Learned []catalog.Item // has record, not yet due
}

// Classify partitions every in-scope item. Due items are sorted ascending
// by due date with the item id as a deterministic tiebreak.
func Classify(items []catalog.Item, memory map[string]srs.MemoryRecord, now time.Time) Partition {
	var p Partition
	for _, it := range items {
		rec, ok := memory[it.ID]
		switch {
		case !ok:
			p.New = append(p.New, it)
		case rec.IsDue(now):
			p.Due = append(p.Due, it)
		default:
			p.Learned = append(p.Learned, it)
		}
	}

	sort.Slice(p.Due, func(i, j int) bool {
		di, dj := memory[p.Due[i].ID].DueAt, memory[p.Due[j].ID].DueAt
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return p.Due[i].ID < p.Due[j].ID
	})

	return p
}

// Build assembles a standard session queue for the given scope.
//
// Up to min(newCap, limit) shuffled new items are taken first, the remaining
// budget is filled from the due queue in overdue order, and the combined
// selection gets a final uniform shuffle. A limit of Unlimited takes all due
// items plus up to newCap new items. An empty result means there is nothing
// to study and no session should be created.
func (b *Builder) Build(items []catalog.Item, memory map[string]srs.MemoryRecord, limit, newCap int, now time.Time) []catalog.Item {
	p := Classify(items, memory, now)

	newItems := append([]catalog.Item(nil), p.New...)
	b.shuffle(newItems)

	newBudget := newCap
	if limit != Unlimited && limit < newBudget {
		newBudget = limit
	}
	if newBudget > len(newItems) {
		newBudget = len(newItems)
	}
	selected := newItems[:newBudget]

	dueBudget := len(p.Due)
	if limit != Unlimited {
		remaining := limit - len(selected)
		if remaining < 0 {
			remaining = 0
		}
		if remaining < dueBudget {
			dueBudget = remaining
		}
	}
	selected = append(selected, p.Due[:dueBudget]...)

	b.shuffle(selected)
	return selected
}

// BuildWeakReview assembles a catch-up queue focused on the weakest items.
//
// The weakCount lowest-strength items across due and learned are replicated
// multiplier times for extra exposure, all strictly-due items are unioned
// in, a small batch of brand-new items is added, and the combined multiset
// is shuffled. The output contract matches Build.
func (b *Builder) BuildWeakReview(items []catalog.Item, memory map[string]srs.MemoryRecord, weakCount, multiplier, newBatch int, now time.Time) []catalog.Item {
	p := Classify(items, memory, now)

	reviewed := append(append([]catalog.Item(nil), p.Due...), p.Learned...)
	sort.Slice(reviewed, func(i, j int) bool {
		si, sj := memory[reviewed[i].ID].Strength, memory[reviewed[j].ID].Strength
		if si != sj {
			return si < sj
		}
		return reviewed[i].ID < reviewed[j].ID
	})
	if weakCount > len(reviewed) {
		weakCount = len(reviewed)
	}
	weak := reviewed[:weakCount]

	if multiplier < 1 {
		multiplier = 1
	}
	var selected []catalog.Item
	for i := 0; i < multiplier; i++ {
		selected = append(selected, weak...)
	}

	// Union in due items not already in the weak set.
	inWeak := make(map[string]bool, len(weak))
	for _, it := range weak {
		inWeak[it.ID] = true
	}
	for _, it := range p.Due {
		if !inWeak[it.ID] {
			selected = append(selected, it)
		}
	}

	newItems := append([]catalog.Item(nil), p.New...)
	b.shuffle(newItems)
	if newBatch > len(newItems) {
		newBatch = len(newItems)
	}
	selected = append(selected, newItems[:newBatch]...)

	b.shuffle(selected)
	return selected
}

// shuffle performs a uniform in-place permutation.
func (b *Builder) shuffle(items []catalog.Item) {
	b.rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}

package queue

import (
	"math/rand"
	"testing"
	"time"

	"github.com/tmakino/kotoba/internal/catalog"
	"github.com/tmakino/kotoba/internal/srs"
)

var qNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func seeded() *Builder {
	return New(rand.New(rand.NewSource(1)))
}

func vocabItem(id, category string) catalog.Item {
	return catalog.Item{ID: id, Category: category, Kind: catalog.KindVocab, Prompt: id}
}

func dueRecord(id string, dueAt time.Time, strength int) srs.MemoryRecord {
	return srs.MemoryRecord{ItemID: id, Ease: srs.InitialEase, DueAt: dueAt, Strength: strength}
}

func TestClassify_Partitions(t *testing.T) {
	items := []catalog.Item{vocabItem("a", "x"), vocabItem("b", "x"), vocabItem("c", "x")}
	memory := map[string]srs.MemoryRecord{
		"a": dueRecord("a", qNow.Add(-time.Hour), 50),
		"b": dueRecord("b", qNow.Add(time.Hour), 50),
	}

	p := Classify(items, memory, qNow)
	if len(p.Due) != 1 || p.Due[0].ID != "a" {
		t.Errorf("Due = %v, want [a]", ids(p.Due))
	}
	if len(p.Learned) != 1 || p.Learned[0].ID != "b" {
		t.Errorf("Learned = %v, want [b]", ids(p.Learned))
	}
	if len(p.New) != 1 || p.New[0].ID != "c" {
		t.Errorf("New = %v, want [c]", ids(p.New))
	}
}

// Selection-order test: due items are picked oldest-overdue first
// regardless of catalog order.
func TestClassify_DueSortedByDueDate(t *testing.T) {
	items := []catalog.Item{vocabItem("a", "x"), vocabItem("b", "x"), vocabItem("c", "x")}
	memory := map[string]srs.MemoryRecord{
		"a": dueRecord("a", qNow.Add(-1*time.Hour), 50), // t3
		"b": dueRecord("b", qNow.Add(-72*time.Hour), 50), // t1
		"c": dueRecord("c", qNow.Add(-24*time.Hour), 50), // t2
	}

	p := Classify(items, memory, qNow)
	got := ids(p.Due)
	want := []string{"b", "c", "a"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("due order = %v, want %v", got, want)
		}
	}
}

func TestClassify_DueTieBrokenByID(t *testing.T) {
	items := []catalog.Item{vocabItem("b", "x"), vocabItem("a", "x")}
	due := qNow.Add(-time.Hour)
	memory := map[string]srs.MemoryRecord{
		"a": dueRecord("a", due, 50),
		"b": dueRecord("b", due, 50),
	}

	p := Classify(items, memory, qNow)
	if p.Due[0].ID != "a" || p.Due[1].ID != "b" {
		t.Errorf("due order = %v, want [a b]", ids(p.Due))
	}
}

// Scenario from the session contract: 3 due + 20 new, size 10, new cap 5.
func TestBuild_CapsNewAndFillsWithDue(t *testing.T) {
	var items []catalog.Item
	memory := make(map[string]srs.MemoryRecord)
	for i := 0; i < 3; i++ {
		id := "due-" + string(rune('a'+i))
		items = append(items, vocabItem(id, "x"))
		memory[id] = dueRecord(id, qNow.Add(-time.Hour), 50)
	}
	for i := 0; i < 20; i++ {
		items = append(items, vocabItem("new-"+string(rune('a'+i)), "x"))
	}

	got := seeded().Build(items, memory, 10, 5, qNow)

	if len(got) != 8 { // 5 new + 3 due (fewer due than budget)
		t.Fatalf("queue length = %d, want 8", len(got))
	}
	newCount, dueCount := 0, 0
	for _, it := range got {
		if _, ok := memory[it.ID]; ok {
			dueCount++
		} else {
			newCount++
		}
	}
	if newCount != 5 || dueCount != 3 {
		t.Errorf("new=%d due=%d, want 5/3", newCount, dueCount)
	}
}

func TestBuild_LimitBoundsTotal(t *testing.T) {
	var items []catalog.Item
	memory := make(map[string]srs.MemoryRecord)
	for i := 0; i < 30; i++ {
		id := "due-" + string(rune('a'+i))
		items = append(items, vocabItem(id, "x"))
		memory[id] = dueRecord(id, qNow.Add(-time.Duration(i)*time.Hour), 50)
	}
	for i := 0; i < 30; i++ {
		items = append(items, vocabItem("new-"+string(rune('a'+i)), "x"))
	}

	got := seeded().Build(items, memory, 10, 5, qNow)
	if len(got) != 10 {
		t.Errorf("queue length = %d, want 10", len(got))
	}
}

func TestBuild_UnlimitedTakesAllDue(t *testing.T) {
	var items []catalog.Item
	memory := make(map[string]srs.MemoryRecord)
	for i := 0; i < 25; i++ {
		id := "due-" + string(rune('a'+i))
		items = append(items, vocabItem(id, "x"))
		memory[id] = dueRecord(id, qNow.Add(-time.Hour), 50)
	}
	for i := 0; i < 12; i++ {
		items = append(items, vocabItem("new-"+string(rune('a'+i)), "x"))
	}

	got := seeded().Build(items, memory, Unlimited, 5, qNow)
	if len(got) != 30 { // all 25 due + 5 new
		t.Errorf("queue length = %d, want 30", len(got))
	}
}

func TestBuild_EmptyWhenNothingToStudy(t *testing.T) {
	items := []catalog.Item{vocabItem("a", "x")}
	memory := map[string]srs.MemoryRecord{
		"a": dueRecord("a", qNow.Add(time.Hour), 50), // learned, not due
	}

	got := seeded().Build(items, memory, 10, 5, qNow)
	if len(got) != 0 {
		t.Errorf("queue length = %d, want 0", len(got))
	}
}

func TestBuild_DeterministicWithSeed(t *testing.T) {
	var items []catalog.Item
	for i := 0; i < 10; i++ {
		items = append(items, vocabItem("new-"+string(rune('a'+i)), "x"))
	}

	a := New(rand.New(rand.NewSource(42))).Build(items, nil, 5, 5, qNow)
	b := New(rand.New(rand.NewSource(42))).Build(items, nil, 5, 5, qNow)

	for i := range a {
		if a[i].ID != b[i].ID {
			t.Fatalf("same seed produced different queues: %v vs %v", ids(a), ids(b))
		}
	}
}

func TestBuildWeakReview_ReplicatesWeakest(t *testing.T) {
	items := []catalog.Item{vocabItem("weak", "x"), vocabItem("strong", "x"), vocabItem("due", "x"), vocabItem("fresh", "x")}
	memory := map[string]srs.MemoryRecord{
		"weak":   dueRecord("weak", qNow.Add(time.Hour), 10),
		"strong": dueRecord("strong", qNow.Add(time.Hour), 90),
		"due":    dueRecord("due", qNow.Add(-time.Hour), 80),
	}

	got := seeded().BuildWeakReview(items, memory, 1, 3, 1, qNow)

	counts := make(map[string]int)
	for _, it := range got {
		counts[it.ID]++
	}
	if counts["weak"] != 3 {
		t.Errorf("weak item replicated %d times, want 3", counts["weak"])
	}
	if counts["due"] != 1 {
		t.Errorf("due item appears %d times, want 1", counts["due"])
	}
	if counts["fresh"] != 1 {
		t.Errorf("new item appears %d times, want 1", counts["fresh"])
	}
	if counts["strong"] != 0 {
		t.Errorf("strong learned item appears %d times, want 0", counts["strong"])
	}
}

func ids(items []catalog.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

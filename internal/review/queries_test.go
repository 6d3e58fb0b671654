package review

import (
	"testing"
	"time"

	"github.com/studydeck/backend/internal/models"
)

func TestDue(t *testing.T) {
	tests := []struct {
		name string
		rec  models.RepetitionRecord
		want bool
	}{
		{"never answered", models.NewRepetitionRecord("q", testNow), true},
		{"incorrect", models.RepetitionRecord{
			QuestionID: "q", EaseFactor: 2.2, Interval: 1,
			NextReview: testNow.Add(24 * time.Hour).UnixMilli(),
			LastResult: models.ResultIncorrect,
		}, true},
		{"correct and overdue", models.RepetitionRecord{
			QuestionID: "q", EaseFactor: 2.6, Interval: 6, Repetitions: 2,
			NextReview: testNow.UnixMilli() - 1,
			LastResult: models.ResultCorrect,
		}, true},
		{"correct exactly at review time", models.RepetitionRecord{
			QuestionID: "q", EaseFactor: 2.6, Interval: 6, Repetitions: 2,
			NextReview: testNow.UnixMilli(),
			LastResult: models.ResultCorrect,
		}, true},
		{"correct and not yet due", models.RepetitionRecord{
			QuestionID: "q", EaseFactor: 2.6, Interval: 6, Repetitions: 2,
			NextReview: testNow.Add(time.Hour).UnixMilli(),
			LastResult: models.ResultCorrect,
		}, false},
	}

	for _, tt := range tests {
		if got := Due(tt.rec, testNow); got != tt.want {
			t.Errorf("%s: Due = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func testRecords() map[string]models.RepetitionRecord {
	return map[string]models.RepetitionRecord{
		"incorrect": {
			QuestionID: "incorrect", EaseFactor: 1.3, Interval: 1,
			NextReview: testNow.Add(24 * time.Hour).UnixMilli(),
			LastResult: models.ResultIncorrect,
		},
		"overdue": {
			QuestionID: "overdue", EaseFactor: 2.5, Interval: 6, Repetitions: 2,
			NextReview: testNow.UnixMilli() - 10*86_400_000,
			LastResult: models.ResultCorrect,
		},
		"notdue": {
			QuestionID: "notdue", EaseFactor: 2.5, Interval: 6, Repetitions: 2,
			NextReview: testNow.Add(72 * time.Hour).UnixMilli(),
			LastResult: models.ResultCorrect,
		},
	}
}

func TestSortByPriority(t *testing.T) {
	items := []models.Question{
		{ID: "notdue"},
		{ID: "unseen"},
		{ID: "overdue"},
		{ID: "incorrect"},
	}

	sorted := SortByPriority(items, func(q models.Question) string { return q.ID }, testRecords(), testNow)

	want := []string{"incorrect", "overdue", "unseen", "notdue"}
	for i, id := range want {
		if sorted[i].ID != id {
			t.Errorf("sorted[%d] = %q, want %q", i, sorted[i].ID, id)
		}
	}

	// Input untouched
	if items[0].ID != "notdue" {
		t.Errorf("input slice was modified")
	}
}

func TestSortByPriorityStable(t *testing.T) {
	// Unseen questions all score 50; ties keep input order.
	items := []models.Question{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	records := map[string]models.RepetitionRecord{}

	sorted := SortByPriority(items, func(q models.Question) string { return q.ID }, records, testNow)
	for i, id := range []string{"a", "b", "c"} {
		if sorted[i].ID != id {
			t.Errorf("sorted[%d] = %q, want %q (stable order)", i, sorted[i].ID, id)
		}
	}
}

func TestFilterDue(t *testing.T) {
	items := []models.Question{
		{ID: "notdue"},
		{ID: "unseen"},
		{ID: "overdue"},
		{ID: "incorrect"},
	}

	due := FilterDue(items, func(q models.Question) string { return q.ID }, testRecords(), testNow)

	want := []string{"unseen", "overdue", "incorrect"}
	if len(due) != len(want) {
		t.Fatalf("len(due) = %d, want %d", len(due), len(want))
	}
	for i, id := range want {
		if due[i].ID != id {
			t.Errorf("due[%d] = %q, want %q (input order preserved)", i, due[i].ID, id)
		}
	}
}

func TestDueCount(t *testing.T) {
	ids := []string{"incorrect", "overdue", "notdue", "unseen"}
	if got := DueCount(ids, testRecords(), testNow); got != 3 {
		t.Errorf("DueCount = %d, want 3", got)
	}

	if got := DueCount(nil, testRecords(), testNow); got != 0 {
		t.Errorf("DueCount(nil) = %d, want 0", got)
	}
}

func TestStats(t *testing.T) {
	records := map[string]models.RepetitionRecord{
		"mastered": {
			QuestionID: "mastered", EaseFactor: 2.8, Interval: 25, Repetitions: 4,
			NextReview: testNow.Add(10 * 24 * time.Hour).UnixMilli(),
			LastResult: models.ResultCorrect,
		},
		// Mastery is checked before the overdue rule: a mastered question
		// past its review date still counts as mastered.
		"mastered_overdue": {
			QuestionID: "mastered_overdue", EaseFactor: 2.8, Interval: 21, Repetitions: 3,
			NextReview: testNow.UnixMilli() - 86_400_000,
			LastResult: models.ResultCorrect,
		},
		"learning": {
			QuestionID: "learning", EaseFactor: 2.6, Interval: 6, Repetitions: 2,
			NextReview: testNow.Add(72 * time.Hour).UnixMilli(),
			LastResult: models.ResultCorrect,
		},
		"missed": {
			QuestionID: "missed", EaseFactor: 2.2, Interval: 1,
			NextReview: testNow.Add(24 * time.Hour).UnixMilli(),
			LastResult: models.ResultIncorrect,
		},
		"overdue": {
			QuestionID: "overdue", EaseFactor: 2.6, Interval: 6, Repetitions: 2,
			NextReview: testNow.UnixMilli() - 86_400_000,
			LastResult: models.ResultCorrect,
		},
		"unset": {
			QuestionID: "unset", EaseFactor: 2.5, Interval: 1,
			NextReview: testNow.UnixMilli(),
			LastResult: models.ResultUnset,
		},
	}

	ids := []string{"mastered", "mastered_overdue", "learning", "missed", "overdue", "unset", "absent"}
	stats := Stats(ids, records, testNow)

	if stats.Mastered != 2 {
		t.Errorf("Mastered = %d, want 2", stats.Mastered)
	}
	if stats.Learning != 1 {
		t.Errorf("Learning = %d, want 1", stats.Learning)
	}
	if stats.NeedsReview != 2 {
		t.Errorf("NeedsReview = %d, want 2", stats.NeedsReview)
	}
	if stats.NotStarted != 2 {
		t.Errorf("NotStarted = %d, want 2", stats.NotStarted)
	}
}

// Every id lands in exactly one bucket regardless of record shape.
func TestStatsExhaustive(t *testing.T) {
	records := testRecords()
	records["partial"] = models.RepetitionRecord{
		QuestionID: "partial", EaseFactor: 1.3, Interval: 30, Repetitions: 1,
		NextReview: testNow.UnixMilli(), LastResult: models.ResultCorrect,
	}

	ids := []string{"incorrect", "overdue", "notdue", "partial", "ghost1", "ghost2"}
	stats := Stats(ids, records, testNow)

	total := stats.Mastered + stats.Learning + stats.NeedsReview + stats.NotStarted
	if total != len(ids) {
		t.Errorf("bucket sum = %d, want %d", total, len(ids))
	}
}

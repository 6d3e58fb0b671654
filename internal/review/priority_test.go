package review

import (
	"math"
	"testing"
	"time"

	"github.com/studydeck/backend/internal/models"
)

func TestPriorityUnseen(t *testing.T) {
	rec := models.NewRepetitionRecord("q1", testNow)
	if got := Priority(rec, testNow); got != 50 {
		t.Errorf("Priority(unseen) = %f, want 50", got)
	}
}

func TestPriorityIncorrect(t *testing.T) {
	tests := []struct {
		ease float64
		want float64
	}{
		{1.3, 87}, // hardest items score highest
		{2.2, 78},
		{2.5, 75},
	}

	for _, tt := range tests {
		rec := models.RepetitionRecord{
			QuestionID: "q1",
			EaseFactor: tt.ease,
			Interval:   1,
			LastResult: models.ResultIncorrect,
		}
		if got := Priority(rec, testNow); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Priority(incorrect, ease=%.1f) = %f, want %f", tt.ease, got, tt.want)
		}
	}
}

func TestPriorityOverdue(t *testing.T) {
	tests := []struct {
		daysOverdue int64
		want        float64
	}{
		{1, 35},
		{10, 80},
		{50, 80},  // saturates at 50 days overdue
		{500, 80}, // stays saturated
	}

	for _, tt := range tests {
		rec := models.RepetitionRecord{
			QuestionID:  "q1",
			EaseFactor:  2.5,
			Interval:    6,
			Repetitions: 2,
			NextReview:  testNow.UnixMilli() - tt.daysOverdue*86_400_000,
			LastResult:  models.ResultCorrect,
		}
		if got := Priority(rec, testNow); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Priority(%d days overdue) = %f, want %f", tt.daysOverdue, got, tt.want)
		}
	}
}

func TestPriorityNotYetDue(t *testing.T) {
	rec := models.RepetitionRecord{
		QuestionID:  "q1",
		EaseFactor:  2.5,
		Interval:    6,
		Repetitions: 2,
		NextReview:  testNow.Add(48 * time.Hour).UnixMilli(),
		LastResult:  models.ResultCorrect,
	}
	if got := Priority(rec, testNow); math.Abs(got-12.5) > 1e-9 {
		t.Errorf("Priority(not due, ease=2.5) = %f, want 12.5", got)
	}

	// Mastered low-ease items score lowest of all
	rec.EaseFactor = 1.3
	if got := Priority(rec, testNow); math.Abs(got-6.5) > 1e-9 {
		t.Errorf("Priority(not due, ease=1.3) = %f, want 6.5", got)
	}
}

// The three tiers rank incorrect above overdue-correct above never-answered,
// with never-answered above anything not yet due.
func TestPriorityTierOrdering(t *testing.T) {
	incorrect := models.RepetitionRecord{
		QuestionID: "a", EaseFactor: 1.3, Interval: 1,
		LastResult: models.ResultIncorrect,
	}
	overdue := models.RepetitionRecord{
		QuestionID: "b", EaseFactor: 2.5, Interval: 6, Repetitions: 2,
		NextReview: testNow.UnixMilli() - 10*86_400_000,
		LastResult: models.ResultCorrect,
	}
	unseen := models.NewRepetitionRecord("c", testNow)
	notDue := models.RepetitionRecord{
		QuestionID: "d", EaseFactor: 2.5, Interval: 6, Repetitions: 2,
		NextReview: testNow.Add(72 * time.Hour).UnixMilli(),
		LastResult: models.ResultCorrect,
	}

	pIncorrect := Priority(incorrect, testNow)
	pOverdue := Priority(overdue, testNow)
	pUnseen := Priority(unseen, testNow)
	pNotDue := Priority(notDue, testNow)

	if pIncorrect != 87 {
		t.Errorf("Priority(incorrect ease=1.3) = %f, want 87", pIncorrect)
	}
	if pOverdue != 80 {
		t.Errorf("Priority(10 days overdue) = %f, want 80", pOverdue)
	}
	if !(pIncorrect > pOverdue && pOverdue > pUnseen && pUnseen > pNotDue) {
		t.Errorf("tier ordering violated: incorrect=%f overdue=%f unseen=%f notDue=%f",
			pIncorrect, pOverdue, pUnseen, pNotDue)
	}
}

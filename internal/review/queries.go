package review

import (
	"sort"
	"time"

	"github.com/studydeck/backend/internal/models"
)

// Mastery thresholds: a question counts as mastered once it has survived three
// consecutive correct answers out to a three-week interval.
const (
	masteredInterval    = 21
	masteredRepetitions = 3
)

// Due reports whether a record needs review now: never answered, last answer
// wrong, or its scheduled review time has passed.
func Due(rec models.RepetitionRecord, now time.Time) bool {
	return rec.LastResult == models.ResultUnset ||
		rec.LastResult == models.ResultIncorrect ||
		rec.NextReview <= now.UnixMilli()
}

// recordFor looks up a question's record, synthesizing the default for
// questions that have never been seen.
func recordFor(records map[string]models.RepetitionRecord, questionID string, now time.Time) models.RepetitionRecord {
	if rec, ok := records[questionID]; ok {
		return rec
	}
	return models.NewRepetitionRecord(questionID, now)
}

// SortByPriority returns the items ordered by descending review priority.
// The sort is stable: items with equal scores keep their input order. The
// input slice is not modified.
func SortByPriority[T any](items []T, key func(T) string, records map[string]models.RepetitionRecord, now time.Time) []T {
	sorted := make([]T, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		pi := Priority(recordFor(records, key(sorted[i]), now), now)
		pj := Priority(recordFor(records, key(sorted[j]), now), now)
		return pi > pj
	})
	return sorted
}

// FilterDue returns the subset of items due for review, input order preserved.
func FilterDue[T any](items []T, key func(T) string, records map[string]models.RepetitionRecord, now time.Time) []T {
	var due []T
	for _, item := range items {
		if Due(recordFor(records, key(item), now), now) {
			due = append(due, item)
		}
	}
	return due
}

// DueCount counts the question IDs due for review.
func DueCount(questionIDs []string, records map[string]models.RepetitionRecord, now time.Time) int {
	count := 0
	for _, id := range questionIDs {
		if Due(recordFor(records, id, now), now) {
			count++
		}
	}
	return count
}

// Stats partitions every question ID into exactly one bucket. The bucket
// counts always sum to len(questionIDs).
func Stats(questionIDs []string, records map[string]models.RepetitionRecord, now time.Time) models.ReviewStats {
	var stats models.ReviewStats
	nowMillis := now.UnixMilli()

	for _, id := range questionIDs {
		rec, ok := records[id]
		switch {
		case !ok || rec.LastResult == models.ResultUnset:
			stats.NotStarted++
		case rec.LastResult == models.ResultIncorrect:
			stats.NeedsReview++
		case rec.Interval >= masteredInterval && rec.Repetitions >= masteredRepetitions:
			stats.Mastered++
		case rec.NextReview <= nowMillis:
			stats.NeedsReview++
		default:
			stats.Learning++
		}
	}
	return stats
}

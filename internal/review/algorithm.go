package review

import (
	"math"
	"time"

	"github.com/studydeck/backend/internal/models"
)

const (
	// EaseFloor is the minimum ease factor. No streak of misses pushes a
	// record below it.
	EaseFloor = 1.3

	easeReward  = 0.1
	easePenalty = 0.3

	dayMillis = 86_400_000
)

// UpdateRecord computes the next repetition record after an answer. It is a
// pure transition: the caller persists the result.
//
// A correct answer walks the interval through three tiers — first success one
// day, second success six days, then geometric growth by the ease factor. An
// incorrect answer resets the streak and pulls the question back to tomorrow
// while lowering the ease factor, so missed material returns to rotation
// quickly. Intervals and ease factors have no upper bound.
func UpdateRecord(rec models.RepetitionRecord, correct bool, now time.Time) models.RepetitionRecord {
	if correct {
		switch {
		case rec.Repetitions == 0:
			rec.Interval = 1
		case rec.Repetitions == 1:
			rec.Interval = 6
		default:
			rec.Interval = int(math.Round(float64(rec.Interval) * rec.EaseFactor))
		}
		rec.Repetitions++
		rec.EaseFactor = math.Max(EaseFloor, rec.EaseFactor+easeReward)
		rec.LastResult = models.ResultCorrect
	} else {
		rec.Repetitions = 0
		rec.Interval = 1
		rec.EaseFactor = math.Max(EaseFloor, rec.EaseFactor-easePenalty)
		rec.LastResult = models.ResultIncorrect
	}

	rec.NextReview = now.UnixMilli() + int64(rec.Interval)*dayMillis
	return rec
}

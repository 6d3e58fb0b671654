package review

import (
	"math"
	"time"

	"github.com/studydeck/backend/internal/models"
)

const (
	// unseenPriority ranks never-answered questions between not-yet-due
	// material and anything answered incorrectly. Callers sort and display
	// these exact magnitudes, so the constant is part of the contract.
	unseenPriority = 50.0

	overdueBase     = 30.0
	overduePerDay   = 5.0
	overdueCapBonus = 50.0
)

// Priority scores a record's review urgency; higher sorts first.
//
// Three tiers: incorrect answers score highest (harder questions higher still),
// overdue correct answers score 30–80 saturating at 50 days overdue, and
// questions not yet due score lowest, proportional to ease.
func Priority(rec models.RepetitionRecord, now time.Time) float64 {
	switch rec.LastResult {
	case models.ResultUnset:
		return unseenPriority
	case models.ResultIncorrect:
		return 100 - rec.EaseFactor*10
	}

	daysOverdue := float64(now.UnixMilli()-rec.NextReview) / dayMillis
	if daysOverdue > 0 {
		return overdueBase + math.Min(daysOverdue*overduePerDay, overdueCapBonus)
	}
	return rec.EaseFactor * 5
}

package models

import "time"

// Result is the outcome of the most recent answer to a question. The zero
// value means the question has never been answered.
type Result string

const (
	ResultUnset     Result = ""
	ResultCorrect   Result = "correct"
	ResultIncorrect Result = "incorrect"
)

const (
	InitialEaseFactor = 2.5
	InitialInterval   = 1
)

// RepetitionRecord is the per-question scheduling state. Records are keyed by
// question ID; a question with no record behaves exactly like a fresh default
// record.
type RepetitionRecord struct {
	QuestionID  string  `json:"questionId"`
	EaseFactor  float64 `json:"easeFactor"`
	Interval    int     `json:"interval"`
	Repetitions int     `json:"repetitions"`
	NextReview  int64   `json:"nextReview"`
	LastResult  Result  `json:"lastResult,omitempty"`
}

// NewRepetitionRecord returns the default record for a question that has never
// been answered: due immediately, never reviewed.
func NewRepetitionRecord(questionID string, now time.Time) RepetitionRecord {
	return RepetitionRecord{
		QuestionID:  questionID,
		EaseFactor:  InitialEaseFactor,
		Interval:    InitialInterval,
		Repetitions: 0,
		NextReview:  now.UnixMilli(),
		LastResult:  ResultUnset,
	}
}

type AnswerRequest struct {
	QuestionID string `json:"question_id"`
	Correct    bool   `json:"correct"`
}

type AnswerResponse struct {
	Record   RepetitionRecord `json:"record"`
	Priority float64          `json:"priority"`
}

// ReviewStats partitions a set of question IDs into exactly one bucket each.
type ReviewStats struct {
	Mastered    int `json:"mastered"`
	Learning    int `json:"learning"`
	NeedsReview int `json:"needs_review"`
	NotStarted  int `json:"not_started"`
}

type DueCountResponse struct {
	DueCount int `json:"due_count"`
}

type ReviewQueueResponse struct {
	Questions []Question `json:"questions"`
	Total     int        `json:"total"`
}

package review

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/studydeck/backend/internal/models"
)

// Catalog lists the questions the engine schedules over. The review subsystem
// treats question content as opaque; it only reads IDs.
type Catalog interface {
	AllQuestions(ctx context.Context) ([]models.Question, error)
	ChapterQuestions(ctx context.Context, chapterID int64) ([]models.Question, error)
	ChapterQuestionIDs(ctx context.Context, chapterID int64) ([]string, error)
}

type Service struct {
	store   Store
	catalog Catalog
	now     func() time.Time
}

func NewService(store Store, catalog Catalog) *Service {
	return &Service{store: store, catalog: catalog, now: time.Now}
}

// GetRecord returns the stored record for a question, or the default record
// for one that has never been answered. It never writes.
func (s *Service) GetRecord(ctx context.Context, userID int64, questionID string) models.RepetitionRecord {
	if rec, ok := s.store.Get(ctx, userID, questionID); ok {
		return rec
	}
	return models.NewRepetitionRecord(questionID, s.now())
}

// SubmitAnswer applies an answer to the question's record and persists the
// whole mapping. A failed save is logged but never surfaces: answer submission
// must succeed from the user's perspective even if scheduling bookkeeping is
// lost.
func (s *Service) SubmitAnswer(ctx context.Context, userID int64, questionID string, correct bool) models.AnswerResponse {
	now := s.now()

	records := s.store.LoadAll(ctx, userID)
	rec, ok := records[questionID]
	if !ok {
		rec = models.NewRepetitionRecord(questionID, now)
	}
	rec = UpdateRecord(rec, correct, now)
	records[questionID] = rec

	if err := s.store.SaveAll(ctx, userID, records); err != nil {
		log.Printf("WARN: failed to save review state for user %d: %v", userID, err)
	}

	return models.AnswerResponse{
		Record:   rec,
		Priority: Priority(rec, now),
	}
}

// ReviewQueue returns the due questions of the scope (a chapter, or the whole
// catalog when chapterID is nil), most urgent first.
func (s *Service) ReviewQueue(ctx context.Context, userID int64, chapterID *int64, limit int) ([]models.Question, error) {
	questions, err := s.scopeQuestions(ctx, chapterID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	records := s.store.LoadAll(ctx, userID)

	due := FilterDue(questions, questionKey, records, now)
	queue := SortByPriority(due, questionKey, records, now)
	if limit > 0 && len(queue) > limit {
		queue = queue[:limit]
	}
	return queue, nil
}

func (s *Service) DueCount(ctx context.Context, userID int64, chapterID *int64) (int, error) {
	ids, err := s.scopeQuestionIDs(ctx, chapterID)
	if err != nil {
		return 0, err
	}
	return DueCount(ids, s.store.LoadAll(ctx, userID), s.now()), nil
}

func (s *Service) Stats(ctx context.Context, userID int64, chapterID *int64) (models.ReviewStats, error) {
	ids, err := s.scopeQuestionIDs(ctx, chapterID)
	if err != nil {
		return models.ReviewStats{}, err
	}
	return Stats(ids, s.store.LoadAll(ctx, userID), s.now()), nil
}

// ResetChapter drops the records of every question in the chapter. Questions
// without a record are skipped silently.
func (s *Service) ResetChapter(ctx context.Context, userID int64, chapterID int64) error {
	ids, err := s.catalog.ChapterQuestionIDs(ctx, chapterID)
	if err != nil {
		return fmt.Errorf("chapter question ids: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}
	return s.store.DeleteMany(ctx, userID, ids)
}

// ResetAll clears the user's entire review history in one operation.
func (s *Service) ResetAll(ctx context.Context, userID int64) error {
	return s.store.DeleteAll(ctx, userID)
}

func (s *Service) scopeQuestions(ctx context.Context, chapterID *int64) ([]models.Question, error) {
	if chapterID != nil {
		return s.catalog.ChapterQuestions(ctx, *chapterID)
	}
	return s.catalog.AllQuestions(ctx)
}

func (s *Service) scopeQuestionIDs(ctx context.Context, chapterID *int64) ([]string, error) {
	if chapterID != nil {
		return s.catalog.ChapterQuestionIDs(ctx, *chapterID)
	}
	questions, err := s.catalog.AllQuestions(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	return ids, nil
}

func questionKey(q models.Question) string { return q.ID }

package questions

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/studydeck/backend/internal/models"
)

// Store reads the chapter/question catalog. The catalog is maintained by the
// content import pipeline; this service only reads it.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListChapters(ctx context.Context) ([]models.Chapter, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT c.id, c.title, c.position, c.created_at, COUNT(q.id)
		 FROM chapters c
		 LEFT JOIN questions q ON q.chapter_id = c.id
		 GROUP BY c.id, c.title, c.position, c.created_at
		 ORDER BY c.position, c.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}
	defer rows.Close()

	var chapters []models.Chapter
	for rows.Next() {
		var c models.Chapter
		if err := rows.Scan(&c.ID, &c.Title, &c.Position, &c.CreatedAt, &c.QuestionCount); err != nil {
			return nil, fmt.Errorf("scan chapter: %w", err)
		}
		chapters = append(chapters, c)
	}
	return chapters, rows.Err()
}

func (s *Store) AllQuestions(ctx context.Context) ([]models.Question, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT q.id, q.chapter_id, q.prompt, q.position
		 FROM questions q
		 JOIN chapters c ON c.id = q.chapter_id
		 ORDER BY c.position, c.id, q.position, q.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()
	return scanQuestions(rows)
}

func (s *Store) ChapterQuestions(ctx context.Context, chapterID int64) ([]models.Question, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, chapter_id, prompt, position
		 FROM questions WHERE chapter_id = $1
		 ORDER BY position, id`,
		chapterID,
	)
	if err != nil {
		return nil, fmt.Errorf("chapter questions: %w", err)
	}
	defer rows.Close()
	return scanQuestions(rows)
}

func (s *Store) ChapterQuestionIDs(ctx context.Context, chapterID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM questions WHERE chapter_id = $1 ORDER BY position, id`,
		chapterID,
	)
	if err != nil {
		return nil, fmt.Errorf("chapter question ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan question id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListUserIDs returns every registered user, for the reminder scheduler.
func (s *Store) ListUserIDs(ctx context.Context) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list user ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanQuestions(rows *sql.Rows) ([]models.Question, error) {
	var questions []models.Question
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.ChapterID, &q.Prompt, &q.Position); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

package review

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"github.com/studydeck/backend/internal/models"
)

// Store persists each user's flat questionID → record mapping as a single
// document. All mutations are whole-document read-modify-write cycles; there
// is no per-key locking, so concurrent writers resolve last-writer-wins.
//
// LoadAll and Get never fail: missing or corrupt state degrades to empty.
// Losing repetition history is non-fatal — at worst everything shows as not
// started. Writes fail loudly so callers can at least log the loss.
type Store interface {
	LoadAll(ctx context.Context, userID int64) map[string]models.RepetitionRecord
	Get(ctx context.Context, userID int64, questionID string) (models.RepetitionRecord, bool)
	SaveAll(ctx context.Context, userID int64, records map[string]models.RepetitionRecord) error
	DeleteMany(ctx context.Context, userID int64, questionIDs []string) error
	DeleteAll(ctx context.Context, userID int64) error
}

// PGStore keeps one JSONB row per user in review_state.
type PGStore struct {
	db *sql.DB
}

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) LoadAll(ctx context.Context, userID int64) map[string]models.RepetitionRecord {
	var raw []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT records FROM review_state WHERE user_id = $1`,
		userID,
	).Scan(&raw)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Printf("WARN: load review state for user %d: %v", userID, err)
		}
		return map[string]models.RepetitionRecord{}
	}
	return decodeRecords(raw, userID)
}

func (s *PGStore) Get(ctx context.Context, userID int64, questionID string) (models.RepetitionRecord, bool) {
	var raw []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT records -> $2 FROM review_state WHERE user_id = $1`,
		userID, questionID,
	).Scan(&raw)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Printf("WARN: get review record %s for user %d: %v", questionID, userID, err)
		}
		return models.RepetitionRecord{}, false
	}
	if len(raw) == 0 || string(raw) == "null" {
		return models.RepetitionRecord{}, false
	}

	var rec models.RepetitionRecord
	if err := json.Unmarshal(raw, &rec); err != nil || !wellFormed(rec) {
		return models.RepetitionRecord{}, false
	}
	rec.QuestionID = questionID
	return rec, true
}

func (s *PGStore) SaveAll(ctx context.Context, userID int64, records map[string]models.RepetitionRecord) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode review state: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO review_state (user_id, records, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (user_id) DO UPDATE SET records = $2, updated_at = NOW()`,
		userID, raw,
	)
	if err != nil {
		return fmt.Errorf("save review state: %w", err)
	}
	return nil
}

func (s *PGStore) DeleteMany(ctx context.Context, userID int64, questionIDs []string) error {
	records := s.LoadAll(ctx, userID)
	for _, id := range questionIDs {
		delete(records, id)
	}
	return s.SaveAll(ctx, userID, records)
}

func (s *PGStore) DeleteAll(ctx context.Context, userID int64) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM review_state WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("clear review state: %w", err)
	}
	return nil
}

// decodeRecords unpacks a persisted document. A document that fails to parse
// is discarded wholesale; individual entries that are malformed (missing
// fields after a schema change, hand-edited state) are dropped and later
// treated as never-seen rather than partially trusted.
func decodeRecords(raw []byte, userID int64) map[string]models.RepetitionRecord {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		log.Printf("WARN: corrupt review state for user %d, starting empty: %v", userID, err)
		return map[string]models.RepetitionRecord{}
	}

	records := make(map[string]models.RepetitionRecord, len(doc))
	for id, entry := range doc {
		var rec models.RepetitionRecord
		if err := json.Unmarshal(entry, &rec); err != nil || !wellFormed(rec) {
			continue
		}
		// The map key is authoritative for identity.
		rec.QuestionID = id
		records[id] = rec
	}
	return records
}

// wellFormed rejects records with impossible field values. A stored record
// always carries an ease factor at or above the floor.
func wellFormed(rec models.RepetitionRecord) bool {
	return rec.EaseFactor >= EaseFloor && rec.Interval >= 0 && rec.Repetitions >= 0
}

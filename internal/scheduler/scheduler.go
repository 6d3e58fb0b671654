package scheduler

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/studydeck/backend/internal/questions"
	"github.com/studydeck/backend/internal/review"
)

// Default local-time window outside which no reminders are recorded.
const (
	DefaultReminderStartHour = 8
	DefaultReminderEndHour   = 22
)

// Scheduler periodically records a review reminder for every user with due
// questions. The surrounding application turns reminder rows into
// notifications; this service only produces them.
type Scheduler struct {
	scheduler *gocron.Scheduler
	db        *sql.DB
	reviews   *review.Service
	catalog   *questions.Store
}

func New(db *sql.DB, reviews *review.Service, catalog *questions.Store) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		db:        db,
		reviews:   reviews,
		catalog:   catalog,
	}
}

// Start begins the hourly due-review check in the background.
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Hour().Do(s.recordDueReminders)
	s.scheduler.StartAsync()
}

func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) recordDueReminders() {
	currentHour := time.Now().Hour()
	startHour := envHour("REMINDER_START_HOUR", DefaultReminderStartHour)
	endHour := envHour("REMINDER_END_HOUR", DefaultReminderEndHour)

	if currentHour < startHour || currentHour > endHour {
		return
	}

	ctx := context.Background()
	userIDs, err := s.catalog.ListUserIDs(ctx)
	if err != nil {
		log.Printf("[reminders] list users: %v", err)
		return
	}

	for _, userID := range userIDs {
		count, err := s.reviews.DueCount(ctx, userID, nil)
		if err != nil {
			log.Printf("[reminders] due count for user %d: %v", userID, err)
			continue
		}
		if count == 0 {
			continue
		}

		_, err = s.db.ExecContext(ctx,
			`INSERT INTO review_reminders (user_id, due_count) VALUES ($1, $2)`,
			userID, count,
		)
		if err != nil {
			log.Printf("[reminders] record reminder for user %d: %v", userID, err)
		}
	}
}

func envHour(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h >= 0 && h <= 23 {
			return h
		}
	}
	return fallback
}

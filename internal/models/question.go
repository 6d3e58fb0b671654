package models

import "time"

type Chapter struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Position      int       `json:"position"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// Question is the catalog view the review engine schedules over. The engine
// itself only ever reads the ID.
type Question struct {
	ID        string `json:"id"`
	ChapterID int64  `json:"chapter_id"`
	Prompt    string `json:"prompt"`
	Position  int    `json:"position"`
}

package models

import "time"

// Session is one user's attempt at a fixed question set. QuestionIDs is
// frozen at creation; Answers and Score are written once, in bulk, when
// the session is submitted.
type Session struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	QuestionIDs []uint     `gorm:"serializer:json" json:"question_ids"`
	Answers     []Answer   `gorm:"serializer:json" json:"answers"`
	Score       int        `gorm:"not null;default:0" json:"score"`
	Status      string     `gorm:"size:20;not null;default:'in-progress';index" json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

const (
	SessionStatusInProgress = "in-progress"
	SessionStatusCompleted  = "completed"
)

package models

import "time"

type Bookmark struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_user_question" json:"user_id"`
	QuestionID uint      `gorm:"not null;uniqueIndex:idx_user_question" json:"question_id"`
	Question   Question  `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"question,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

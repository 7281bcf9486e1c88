package models

import "time"

// Question is a bank entry. Which field group matters depends on Type:
// mcq questions carry Options/CorrectOption, short-answer questions carry
// Keywords (and optionally a SampleAnswer).
type Question struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	Topic       string `gorm:"size:100;not null;index" json:"topic"`
	Difficulty  string `gorm:"size:10;not null;index" json:"difficulty"`
	Type        string `gorm:"size:20;not null;index" json:"type"`

	Options       []string `gorm:"serializer:json" json:"options,omitempty"`
	CorrectOption *int     `json:"correct_option,omitempty"`
	Explanation   string   `gorm:"type:text" json:"explanation,omitempty"`

	Keywords     []string `gorm:"serializer:json" json:"keywords,omitempty"`
	SampleAnswer string   `gorm:"type:text" json:"sample_answer,omitempty"`

	CreatedBy uint      `gorm:"index" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	QuestionTypeMCQ         = "mcq"
	QuestionTypeShortAnswer = "short-answer"

	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

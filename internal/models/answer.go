package models

// Answer is one graded entry in a session's answer list. Topic is copied
// from the question at grading time so later edits to the question bank
// don't rewrite historical attribution.
type Answer struct {
	QuestionID uint   `json:"question_id"`
	Topic      string `json:"topic"`
	UserAnswer string `json:"user_answer"`
	IsCorrect  bool   `json:"is_correct"`
	Score      int    `json:"score"`
	Feedback   string `json:"feedback"`
}

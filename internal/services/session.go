package services

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/MdAyanBadar/interview-prep/internal/models"

	"gorm.io/gorm"
)

type SessionService struct {
	db        *gorm.DB
	questions *QuestionService
	grader    *GraderService

	// pacing is the pause after each provider-backed grading inside a
	// submission, throttling successive calls against the provider's
	// rate limit. Short-answer items are graded strictly sequentially.
	pacing time.Duration
}

func NewSessionService(db *gorm.DB, questions *QuestionService, grader *GraderService, pacing time.Duration) *SessionService {
	return &SessionService{db: db, questions: questions, grader: grader, pacing: pacing}
}

// StartSessionResult carries the new session id plus the full sampled
// question objects, answer-bearing fields included. Only the session
// initiator ever receives this payload.
type StartSessionResult struct {
	SessionID uint              `json:"sessionId"`
	Questions []models.Question `json:"questions"`
}

// StartSession samples a question set under the given filters and
// persists a new in-progress session referencing it.
//
// A concrete type samples up to limit questions of that type. "mixed"
// splits the request into ceil(limit/2) mcq and floor(limit/2)
// short-answer halves, samples each independently, and shuffles the
// concatenation; a half short on questions fills partially rather than
// failing. Only a fully empty result is an error.
func (s *SessionService) StartSession(userID uint, topic, difficulty, qType string, limit int) (*StartSessionResult, error) {
	if limit <= 0 {
		limit = 5
	}

	base := QuestionFilter{Topic: topic, Difficulty: difficulty}

	var questions []models.Question
	switch qType {
	case models.QuestionTypeMCQ, models.QuestionTypeShortAnswer:
		base.Type = qType
		qs, err := s.questions.SampleRandom(base, limit)
		if err != nil {
			return nil, err
		}
		questions = qs
	default: // mixed
		mcqFilter, saFilter := base, base
		mcqFilter.Type = models.QuestionTypeMCQ
		saFilter.Type = models.QuestionTypeShortAnswer

		mcqs, err := s.questions.SampleRandom(mcqFilter, (limit+1)/2)
		if err != nil {
			return nil, err
		}
		shorts, err := s.questions.SampleRandom(saFilter, limit/2)
		if err != nil {
			return nil, err
		}

		questions = append(mcqs, shorts...)
		rand.Shuffle(len(questions), func(i, j int) {
			questions[i], questions[j] = questions[j], questions[i]
		})
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("no questions match the given filters: %w", ErrNotFound)
	}

	ids := make([]uint, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}

	session := models.Session{
		UserID:      userID,
		QuestionIDs: ids,
		Status:      models.SessionStatusInProgress,
	}
	if err := s.db.Create(&session).Error; err != nil {
		return nil, err
	}

	return &StartSessionResult{SessionID: session.ID, Questions: questions}, nil
}

type SubmittedAnswer struct {
	QuestionID uint   `json:"questionId"`
	UserAnswer string `json:"userAnswer"`
}

// SubmitSession grades every submitted answer and completes the session
// in a single bulk update. Answers are graded in the session's original
// question order regardless of submission order; entries referencing a
// question outside the session are silently skipped. Resubmitting a
// completed session is rejected.
func (s *SessionService) SubmitSession(ctx context.Context, sessionID, userID uint, answers []SubmittedAnswer) (*models.Session, error) {
	var session models.Session
	if err := s.db.First(&session, sessionID).Error; err != nil {
		return nil, fmt.Errorf("session %d: %w", sessionID, ErrNotFound)
	}
	if session.UserID != userID {
		return nil, ErrForbidden
	}
	if session.Status == models.SessionStatusCompleted {
		return nil, ErrAlreadyCompleted
	}

	submitted := make(map[uint]string, len(answers))
	for _, a := range answers {
		submitted[a.QuestionID] = a.UserAnswer
	}

	var results []models.Answer
	score := 0
	for _, qid := range session.QuestionIDs {
		userAnswer, ok := submitted[qid]
		if !ok {
			continue
		}

		q, err := s.questions.FindByID(qid)
		if err != nil {
			// Question deleted since the session started; skip it
			// rather than failing the whole submission.
			continue
		}

		verdict := s.grader.Grade(ctx, q, userAnswer)

		if q.Type == models.QuestionTypeShortAnswer && strings.TrimSpace(userAnswer) != "" {
			if err := s.pause(ctx); err != nil {
				return nil, err
			}
		}

		if verdict.IsCorrect {
			score++
		}
		results = append(results, models.Answer{
			QuestionID: qid,
			Topic:      q.Topic,
			UserAnswer: userAnswer,
			IsCorrect:  verdict.IsCorrect,
			Score:      verdict.Score,
			Feedback:   verdict.Feedback,
		})
	}

	now := time.Now()
	session.Answers = results
	session.Score = score
	session.Status = models.SessionStatusCompleted
	session.CompletedAt = &now

	if err := s.db.Save(&session).Error; err != nil {
		return nil, err
	}

	return &session, nil
}

func (s *SessionService) pause(ctx context.Context) error {
	if s.pacing <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.pacing):
		return nil
	}
}

// RecheckAnswer re-runs provider grading for one already-graded
// short-answer item and rewrites that answer entry in place. The
// session's aggregate score and status are left untouched.
func (s *SessionService) RecheckAnswer(ctx context.Context, sessionID, questionID uint, userAnswer string) (*Verdict, error) {
	var session models.Session
	if err := s.db.First(&session, sessionID).Error; err != nil {
		return nil, fmt.Errorf("session %d: %w", sessionID, ErrNotFound)
	}

	q, err := s.questions.FindByID(questionID)
	if err != nil {
		return nil, err
	}
	if q.Type != models.QuestionTypeShortAnswer {
		return nil, fmt.Errorf("re-check is only available for short-answer questions: %w", ErrInvalidInput)
	}

	idx := -1
	for i := range session.Answers {
		if session.Answers[i].QuestionID == questionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("answer for question %d: %w", questionID, ErrNotFound)
	}

	verdict := s.grader.GradeShortAnswer(ctx, q, userAnswer)

	session.Answers[idx].IsCorrect = verdict.IsCorrect
	session.Answers[idx].Score = verdict.Score
	session.Answers[idx].Feedback = verdict.Feedback

	if err := s.db.Save(&session).Error; err != nil {
		return nil, err
	}

	return &verdict, nil
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/MdAyanBadar/interview-prep/internal/llm"
	"github.com/MdAyanBadar/interview-prep/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testSessionService(t *testing.T, db *gorm.DB, provider llm.Provider) *SessionService {
	t.Helper()
	questions := NewQuestionService(db)
	grader := NewGraderService(provider, GraderConfig{RetryDelay: time.Millisecond})
	return NewSessionService(db, questions, grader, 0)
}

func TestStartSessionConcreteType(t *testing.T) {
	db := newTestDB(t)
	svc := testSessionService(t, db, llm.NewMockProvider())

	seedQuestions(t, db,
		mcqQuestion("go"), mcqQuestion("go"), mcqQuestion("go"),
		shortAnswerQuestion("go"),
	)

	result, err := svc.StartSession(1, "", "", models.QuestionTypeMCQ, 2)
	require.NoError(t, err)

	assert.Len(t, result.Questions, 2)
	for _, q := range result.Questions {
		assert.Equal(t, models.QuestionTypeMCQ, q.Type)
	}

	var session models.Session
	require.NoError(t, db.First(&session, result.SessionID).Error)
	assert.Equal(t, models.SessionStatusInProgress, session.Status)
	assert.Equal(t, uint(1), session.UserID)
	assert.Len(t, session.QuestionIDs, 2)
}

func TestStartSessionMixedSplit(t *testing.T) {
	db := newTestDB(t)
	svc := testSessionService(t, db, llm.NewMockProvider())

	var qs []models.Question
	for i := 0; i < 10; i++ {
		qs = append(qs, mcqQuestion("go"), shortAnswerQuestion("go"))
	}
	seedQuestions(t, db, qs...)

	result, err := svc.StartSession(1, "", "", "mixed", 5)
	require.NoError(t, err)
	require.Len(t, result.Questions, 5)

	counts := map[string]int{}
	for _, q := range result.Questions {
		counts[q.Type]++
	}
	assert.Equal(t, 3, counts[models.QuestionTypeMCQ])
	assert.Equal(t, 2, counts[models.QuestionTypeShortAnswer])
}

func TestStartSessionMixedPartialFill(t *testing.T) {
	db := newTestDB(t)
	svc := testSessionService(t, db, llm.NewMockProvider())

	seedQuestions(t, db, mcqQuestion("go"))

	result, err := svc.StartSession(1, "", "", "mixed", 5)
	require.NoError(t, err)
	assert.Len(t, result.Questions, 1)
}

func TestStartSessionFiltersApplied(t *testing.T) {
	db := newTestDB(t)
	svc := testSessionService(t, db, llm.NewMockProvider())

	hard := mcqQuestion("sql")
	hard.Difficulty = models.DifficultyHard
	seedQuestions(t, db, mcqQuestion("go"), hard)

	result, err := svc.StartSession(1, "sql", models.DifficultyHard, models.QuestionTypeMCQ, 5)
	require.NoError(t, err)
	require.Len(t, result.Questions, 1)
	assert.Equal(t, "sql", result.Questions[0].Topic)
}

func TestStartSessionNoQuestions(t *testing.T) {
	db := newTestDB(t)
	svc := testSessionService(t, db, llm.NewMockProvider())

	_, err := svc.StartSession(1, "haskell", "", "mixed", 5)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubmitSessionGradesAndCompletes(t *testing.T) {
	db := newTestDB(t)
	mock := llm.NewMockProvider(llm.MockResponse{
		Text: `{"isCorrect": true, "score": 80, "feedback": "good"}`,
	})
	svc := testSessionService(t, db, mock)

	seedQuestions(t, db, mcqQuestion("go"), shortAnswerQuestion("dsa"))
	result, err := svc.StartSession(1, "", "", "mixed", 2)
	require.NoError(t, err)
	require.Len(t, result.Questions, 2)

	var answers []SubmittedAnswer
	for _, q := range result.Questions {
		if q.Type == models.QuestionTypeMCQ {
			answers = append(answers, SubmittedAnswer{QuestionID: q.ID, UserAnswer: "1"})
		} else {
			answers = append(answers, SubmittedAnswer{QuestionID: q.ID, UserAnswer: "buckets"})
		}
	}

	session, err := svc.SubmitSession(context.Background(), result.SessionID, 1, answers)
	require.NoError(t, err)

	assert.Equal(t, models.SessionStatusCompleted, session.Status)
	require.NotNil(t, session.CompletedAt)
	assert.Equal(t, 2, session.Score)
	assert.Len(t, session.Answers, 2)

	// Topic is denormalized onto each answer at grading time.
	topics := map[uint]string{}
	for _, q := range result.Questions {
		topics[q.ID] = q.Topic
	}
	for _, ans := range session.Answers {
		assert.Equal(t, topics[ans.QuestionID], ans.Topic)
	}
}

func TestSubmitSessionPartialAnswers(t *testing.T) {
	db := newTestDB(t)
	svc := testSessionService(t, db, llm.NewMockProvider())

	seedQuestions(t, db,
		mcqQuestion("go"), mcqQuestion("go"), mcqQuestion("go"), mcqQuestion("go"),
	)
	result, err := svc.StartSession(1, "", "", models.QuestionTypeMCQ, 4)
	require.NoError(t, err)
	require.Len(t, result.Questions, 4)

	answers := []SubmittedAnswer{
		{QuestionID: result.Questions[0].ID, UserAnswer: "1"},
		{QuestionID: result.Questions[1].ID, UserAnswer: "0"},
	}

	session, err := svc.SubmitSession(context.Background(), result.SessionID, 1, answers)
	require.NoError(t, err)

	assert.Equal(t, models.SessionStatusCompleted, session.Status)
	assert.Len(t, session.Answers, 2, "unanswered questions are absent from the answer list")
	assert.Equal(t, 1, session.Score)
}

func TestSubmitSessionOriginalQuestionOrder(t *testing.T) {
	db := newTestDB(t)
	svc := testSessionService(t, db, llm.NewMockProvider())

	seedQuestions(t, db, mcqQuestion("go"), mcqQuestion("go"), mcqQuestion("go"))
	result, err := svc.StartSession(1, "", "", models.QuestionTypeMCQ, 3)
	require.NoError(t, err)

	var session models.Session
	require.NoError(t, db.First(&session, result.SessionID).Error)

	// Submit in reverse order; grading must follow the session's order.
	var answers []SubmittedAnswer
	for i := len(session.QuestionIDs) - 1; i >= 0; i-- {
		answers = append(answers, SubmittedAnswer{QuestionID: session.QuestionIDs[i], UserAnswer: "1"})
	}

	updated, err := svc.SubmitSession(context.Background(), result.SessionID, 1, answers)
	require.NoError(t, err)

	require.Len(t, updated.Answers, len(session.QuestionIDs))
	for i, qid := range session.QuestionIDs {
		assert.Equal(t, qid, updated.Answers[i].QuestionID)
	}
}

func TestSubmitSessionSkipsForeignQuestions(t *testing.T) {
	db := newTestDB(t)
	svc := testSessionService(t, db, llm.NewMockProvider())

	qs := seedQuestions(t, db, mcqQuestion("go"), mcqQuestion("go"))
	result, err := svc.StartSession(1, "", "", models.QuestionTypeMCQ, 1)
	require.NoError(t, err)

	inSession := result.Questions[0].ID
	foreign := qs[0].ID
	if foreign == inSession {
		foreign = qs[1].ID
	}

	session, err := svc.SubmitSession(context.Background(), result.SessionID, 1, []SubmittedAnswer{
		{QuestionID: inSession, UserAnswer: "1"},
		{QuestionID: foreign, UserAnswer: "1"},
	})
	require.NoError(t, err)

	require.Len(t, session.Answers, 1)
	assert.Equal(t, inSession, session.Answers[0].QuestionID)
}

func TestSubmitSessionNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := testSessionService(t, db, llm.NewMockProvider())

	_, err := svc.SubmitSession(context.Background(), 999, 1, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubmitSessionWrongOwner(t *testing.T) {
	db := newTestDB(t)
	svc := testSessionService(t, db, llm.NewMockProvider())

	seedQuestions(t, db, mcqQuestion("go"))
	result, err := svc.StartSession(1, "", "", models.QuestionTypeMCQ, 1)
	require.NoError(t, err)

	_, err = svc.SubmitSession(context.Background(), result.SessionID, 2, nil)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestSubmitSessionResubmissionRejected(t *testing.T) {
	db := newTestDB(t)
	svc := testSessionService(t, db, llm.NewMockProvider())

	seedQuestions(t, db, mcqQuestion("go"))
	result, err := svc.StartSession(1, "", "", models.QuestionTypeMCQ, 1)
	require.NoError(t, err)

	answers := []SubmittedAnswer{{QuestionID: result.Questions[0].ID, UserAnswer: "1"}}
	_, err = svc.SubmitSession(context.Background(), result.SessionID, 1, answers)
	require.NoError(t, err)

	_, err = svc.SubmitSession(context.Background(), result.SessionID, 1, answers)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
}

func TestSubmitSessionProviderDownStillCompletes(t *testing.T) {
	db := newTestDB(t)
	svc := testSessionService(t, db, llm.Disabled{})

	seedQuestions(t, db, shortAnswerQuestion("dsa"))
	result, err := svc.StartSession(1, "", "", models.QuestionTypeShortAnswer, 1)
	require.NoError(t, err)

	session, err := svc.SubmitSession(context.Background(), result.SessionID, 1, []SubmittedAnswer{
		{QuestionID: result.Questions[0].ID, UserAnswer: "an attempt"},
	})
	require.NoError(t, err)

	assert.Equal(t, models.SessionStatusCompleted, session.Status)
	require.Len(t, session.Answers, 1)
	assert.Equal(t, "AI evaluation unavailable at the moment.", session.Answers[0].Feedback)
	assert.Equal(t, 0, session.Score)
}

func TestRecheckAnswerUpdatesEntryInPlace(t *testing.T) {
	db := newTestDB(t)
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: `{"isCorrect": false, "score": 30, "feedback": "thin"}`},
		llm.MockResponse{Text: `{"isCorrect": true, "score": 75, "feedback": "better on review"}`},
	)
	svc := testSessionService(t, db, mock)

	seedQuestions(t, db, shortAnswerQuestion("dsa"))
	result, err := svc.StartSession(1, "", "", models.QuestionTypeShortAnswer, 1)
	require.NoError(t, err)
	qid := result.Questions[0].ID

	submitted, err := svc.SubmitSession(context.Background(), result.SessionID, 1, []SubmittedAnswer{
		{QuestionID: qid, UserAnswer: "buckets"},
	})
	require.NoError(t, err)
	require.Equal(t, 0, submitted.Score)

	verdict, err := svc.RecheckAnswer(context.Background(), result.SessionID, qid, "buckets")
	require.NoError(t, err)
	assert.True(t, verdict.IsCorrect)
	assert.Equal(t, 75, verdict.Score)

	var session models.Session
	require.NoError(t, db.First(&session, result.SessionID).Error)
	require.Len(t, session.Answers, 1)
	assert.True(t, session.Answers[0].IsCorrect)
	assert.Equal(t, 75, session.Answers[0].Score)
	assert.Equal(t, "better on review", session.Answers[0].Feedback)

	// Aggregate score and status are deliberately untouched.
	assert.Equal(t, 0, session.Score)
	assert.Equal(t, models.SessionStatusCompleted, session.Status)
}

func TestRecheckAnswerRejectsMCQ(t *testing.T) {
	db := newTestDB(t)
	svc := testSessionService(t, db, llm.NewMockProvider())

	seedQuestions(t, db, mcqQuestion("go"))
	result, err := svc.StartSession(1, "", "", models.QuestionTypeMCQ, 1)
	require.NoError(t, err)

	_, err = svc.RecheckAnswer(context.Background(), result.SessionID, result.Questions[0].ID, "1")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRecheckAnswerMissingEntry(t *testing.T) {
	db := newTestDB(t)
	svc := testSessionService(t, db, llm.NewMockProvider())

	seedQuestions(t, db, shortAnswerQuestion("dsa"))
	result, err := svc.StartSession(1, "", "", models.QuestionTypeShortAnswer, 1)
	require.NoError(t, err)

	// Session never submitted, so there is no answer entry to rewrite.
	_, err = svc.RecheckAnswer(context.Background(), result.SessionID, result.Questions[0].ID, "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

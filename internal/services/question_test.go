package services

import (
	"testing"

	"github.com/MdAyanBadar/interview-prep/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateQuestionValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuestionService(db)

	tooFewOptions := mcqQuestion("go")
	tooFewOptions.Options = []string{"only one"}
	err := svc.Create(&tooFewOptions, 1)
	assert.ErrorIs(t, err, ErrInvalidInput)

	badIndex := mcqQuestion("go")
	badIndex.CorrectOption = intPtr(9)
	err = svc.Create(&badIndex, 1)
	assert.ErrorIs(t, err, ErrInvalidInput)

	noKeywords := shortAnswerQuestion("go")
	noKeywords.Keywords = nil
	err = svc.Create(&noKeywords, 1)
	assert.ErrorIs(t, err, ErrInvalidInput)

	unknownType := mcqQuestion("go")
	unknownType.Type = "essay"
	err = svc.Create(&unknownType, 1)
	assert.ErrorIs(t, err, ErrInvalidInput)

	valid := mcqQuestion("go")
	require.NoError(t, svc.Create(&valid, 7))
	assert.Equal(t, uint(7), valid.CreatedBy)
}

func TestListQuestionsFilterAndPagination(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuestionService(db)

	for i := 0; i < 15; i++ {
		q := mcqQuestion("go")
		require.NoError(t, svc.Create(&q, 1))
	}
	sql := shortAnswerQuestion("sql")
	require.NoError(t, svc.Create(&sql, 1))

	page1, err := svc.List(QuestionFilter{Topic: "go"}, 1, 10)
	require.NoError(t, err)
	assert.Len(t, page1, 10)

	page2, err := svc.List(QuestionFilter{Topic: "go"}, 2, 10)
	require.NoError(t, err)
	assert.Len(t, page2, 5)

	sqlOnly, err := svc.List(QuestionFilter{Topic: "sql"}, 1, 10)
	require.NoError(t, err)
	assert.Len(t, sqlOnly, 1)
}

func TestSampleRandomRespectsCountAndFilter(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuestionService(db)

	seedQuestions(t, db,
		mcqQuestion("go"), mcqQuestion("go"), mcqQuestion("go"),
		shortAnswerQuestion("go"),
	)

	sampled, err := svc.SampleRandom(QuestionFilter{Type: models.QuestionTypeMCQ}, 2)
	require.NoError(t, err)
	assert.Len(t, sampled, 2)
	for _, q := range sampled {
		assert.Equal(t, models.QuestionTypeMCQ, q.Type)
	}

	all, err := svc.SampleRandom(QuestionFilter{Type: models.QuestionTypeMCQ}, 10)
	require.NoError(t, err)
	assert.Len(t, all, 3, "sampling caps at the available pool")
}

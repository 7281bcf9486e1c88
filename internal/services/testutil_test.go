package services

import (
	"path/filepath"
	"testing"

	"github.com/MdAyanBadar/interview-prep/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Question{},
		&models.Session{},
		&models.Bookmark{},
	))
	return db
}

func intPtr(i int) *int { return &i }

func mcqQuestion(topic string) models.Question {
	return models.Question{
		Title:         "pick one",
		Description:   "Which option is correct?",
		Topic:         topic,
		Difficulty:    models.DifficultyEasy,
		Type:          models.QuestionTypeMCQ,
		Options:       []string{"A", "B", "C"},
		CorrectOption: intPtr(1),
	}
}

func shortAnswerQuestion(topic string) models.Question {
	return models.Question{
		Title:       "explain",
		Description: "Explain how a hash map works.",
		Topic:       topic,
		Difficulty:  models.DifficultyMedium,
		Type:        models.QuestionTypeShortAnswer,
		Keywords:    []string{"bucket", "hash function", "collision"},
	}
}

func seedQuestions(t *testing.T, db *gorm.DB, qs ...models.Question) []models.Question {
	t.Helper()
	for i := range qs {
		require.NoError(t, db.Create(&qs[i]).Error)
	}
	return qs
}

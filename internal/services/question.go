package services

import (
	"fmt"

	"github.com/MdAyanBadar/interview-prep/internal/models"

	"gorm.io/gorm"
)

type QuestionService struct {
	db *gorm.DB
}

func NewQuestionService(db *gorm.DB) *QuestionService {
	return &QuestionService{db: db}
}

type QuestionFilter struct {
	Topic      string
	Difficulty string
	Type       string
}

func (f QuestionFilter) apply(q *gorm.DB) *gorm.DB {
	if f.Topic != "" {
		q = q.Where("topic = ?", f.Topic)
	}
	if f.Difficulty != "" {
		q = q.Where("difficulty = ?", f.Difficulty)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	return q
}

func (s *QuestionService) Create(q *models.Question, createdBy uint) error {
	switch q.Type {
	case models.QuestionTypeMCQ:
		if len(q.Options) < 2 {
			return fmt.Errorf("mcq questions need at least 2 options: %w", ErrInvalidInput)
		}
		if q.CorrectOption == nil || *q.CorrectOption < 0 || *q.CorrectOption >= len(q.Options) {
			return fmt.Errorf("mcq questions need a valid correct option index: %w", ErrInvalidInput)
		}
	case models.QuestionTypeShortAnswer:
		if len(q.Keywords) == 0 {
			return fmt.Errorf("short-answer questions need keywords: %w", ErrInvalidInput)
		}
	default:
		return fmt.Errorf("unknown question type %q: %w", q.Type, ErrInvalidInput)
	}

	q.CreatedBy = createdBy
	return s.db.Create(q).Error
}

func (s *QuestionService) List(filter QuestionFilter, page, limit int) ([]models.Question, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	var questions []models.Question
	err := filter.apply(s.db.Model(&models.Question{})).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&questions).Error
	return questions, err
}

func (s *QuestionService) FindByID(id uint) (*models.Question, error) {
	var q models.Question
	if err := s.db.First(&q, id).Error; err != nil {
		return nil, fmt.Errorf("question %d: %w", id, ErrNotFound)
	}
	return &q, nil
}

// SampleRandom returns up to count questions matching the filter, in
// random order. RANDOM() is understood by both postgres and sqlite.
func (s *QuestionService) SampleRandom(filter QuestionFilter, count int) ([]models.Question, error) {
	var questions []models.Question
	err := filter.apply(s.db.Model(&models.Question{})).
		Order("RANDOM()").
		Limit(count).
		Find(&questions).Error
	return questions, err
}

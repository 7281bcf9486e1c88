package services

import (
	"fmt"

	"github.com/MdAyanBadar/interview-prep/internal/models"

	"gorm.io/gorm"
)

type BookmarkService struct {
	db *gorm.DB
}

func NewBookmarkService(db *gorm.DB) *BookmarkService {
	return &BookmarkService{db: db}
}

func (s *BookmarkService) Add(userID, questionID uint) (*models.Bookmark, error) {
	var question models.Question
	if err := s.db.First(&question, questionID).Error; err != nil {
		return nil, fmt.Errorf("question %d: %w", questionID, ErrNotFound)
	}

	var existing models.Bookmark
	err := s.db.Where("user_id = ? AND question_id = ?", userID, questionID).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("question already bookmarked: %w", ErrAlreadyExists)
	}

	bookmark := models.Bookmark{UserID: userID, QuestionID: questionID}
	if err := s.db.Create(&bookmark).Error; err != nil {
		return nil, err
	}
	bookmark.Question = question

	return &bookmark, nil
}

func (s *BookmarkService) List(userID uint) ([]models.Bookmark, error) {
	var bookmarks []models.Bookmark
	err := s.db.
		Where("user_id = ?", userID).
		Preload("Question").
		Order("created_at DESC").
		Find(&bookmarks).Error
	return bookmarks, err
}

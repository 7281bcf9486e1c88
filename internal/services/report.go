package services

import (
	"fmt"
	"math"
	"sort"

	"github.com/MdAyanBadar/interview-prep/internal/models"

	"gorm.io/gorm"
)

type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

type TopicStat struct {
	Topic    string `json:"topic"`
	Total    int    `json:"total"`
	Correct  int    `json:"correct"`
	Accuracy int    `json:"accuracy"`
}

type ProgressSummary struct {
	TotalSessions  int         `json:"totalSessions"`
	TotalQuestions int         `json:"totalQuestions"`
	TotalCorrect   int         `json:"totalCorrect"`
	Accuracy       int         `json:"accuracy"`
	Trend          int         `json:"trend"`
	TopicStats     []TopicStat `json:"topicStats"`
}

// GetProgress aggregates a user's completed sessions into dashboard
// statistics. Topic buckets come from the topic denormalized onto each
// answer at grading time, so bank edits don't shift history. The trend
// is the most recent session's accuracy minus overall accuracy.
func (s *ReportService) GetProgress(userID uint) (*ProgressSummary, error) {
	var sessions []models.Session
	err := s.db.
		Where("user_id = ? AND status = ?", userID, models.SessionStatusCompleted).
		Order("completed_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}

	summary := &ProgressSummary{TopicStats: []TopicStat{}}
	if len(sessions) == 0 {
		return summary, nil
	}

	buckets := map[string]*TopicStat{}
	for _, session := range sessions {
		for _, ans := range session.Answers {
			if ans.Topic == "" {
				continue
			}
			summary.TotalQuestions++

			b, ok := buckets[ans.Topic]
			if !ok {
				b = &TopicStat{Topic: ans.Topic}
				buckets[ans.Topic] = b
			}
			b.Total++

			if ans.IsCorrect {
				summary.TotalCorrect++
				b.Correct++
			}
		}
	}

	summary.TotalSessions = len(sessions)
	summary.Accuracy = percentage(summary.TotalCorrect, summary.TotalQuestions)

	latest := sessions[0]
	latestAccuracy := percentage(latest.Score, len(latest.QuestionIDs))
	summary.Trend = latestAccuracy - summary.Accuracy

	for _, b := range buckets {
		b.Accuracy = percentage(b.Correct, b.Total)
		summary.TopicStats = append(summary.TopicStats, *b)
	}
	sort.SliceStable(summary.TopicStats, func(i, j int) bool {
		return summary.TopicStats[i].Accuracy > summary.TopicStats[j].Accuracy
	})

	return summary, nil
}

type SessionResult struct {
	SessionID      uint            `json:"sessionId"`
	Score          int             `json:"score"`
	TotalQuestions int             `json:"totalQuestions"`
	Accuracy       int             `json:"accuracy"`
	Results        []models.Answer `json:"results"`
}

// GetSessionResult returns one session's score and per-answer detail.
// Lookup is scoped to the owner.
func (s *ReportService) GetSessionResult(sessionID, userID uint) (*SessionResult, error) {
	var session models.Session
	err := s.db.
		Where("id = ? AND user_id = ?", sessionID, userID).
		First(&session).Error
	if err != nil {
		return nil, fmt.Errorf("session %d: %w", sessionID, ErrNotFound)
	}

	results := session.Answers
	if results == nil {
		results = []models.Answer{}
	}

	return &SessionResult{
		SessionID:      session.ID,
		Score:          session.Score,
		TotalQuestions: len(session.QuestionIDs),
		Accuracy:       percentage(session.Score, len(session.QuestionIDs)),
		Results:        results,
	}, nil
}

func percentage(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/MdAyanBadar/interview-prep/internal/llm"
	"github.com/MdAyanBadar/interview-prep/internal/models"
)

// Verdict is the result of grading one answer.
type Verdict struct {
	IsCorrect bool   `json:"isCorrect"`
	Score     int    `json:"score"`
	Feedback  string `json:"feedback"`
}

const (
	feedbackNoAnswer    = "No answer provided."
	feedbackUnavailable = "AI evaluation unavailable at the moment."
	invalidSelection    = "invalid selection"
)

type GraderConfig struct {
	// MaxRetries is the number of additional attempts after a
	// rate-limited provider call. Attempt n waits n*RetryDelay.
	MaxRetries int
	RetryDelay time.Duration
}

type GraderService struct {
	provider llm.Provider
	cfg      GraderConfig
}

func NewGraderService(provider llm.Provider, cfg GraderConfig) *GraderService {
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 2
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = 2 * time.Second
	}
	return &GraderService{provider: provider, cfg: cfg}
}

// Grade evaluates one submitted answer. It never returns an error: mcq
// grading is pure, and provider failures degrade to a fallback verdict
// so a provider outage can't fail a whole submission.
func (s *GraderService) Grade(ctx context.Context, q *models.Question, userAnswer string) Verdict {
	if strings.TrimSpace(userAnswer) == "" {
		return Verdict{IsCorrect: false, Score: 0, Feedback: feedbackNoAnswer}
	}

	if q.Type == models.QuestionTypeMCQ {
		return gradeMCQ(q, userAnswer)
	}
	return s.GradeShortAnswer(ctx, q, userAnswer)
}

func gradeMCQ(q *models.Question, userAnswer string) Verdict {
	idx, parseErr := strconv.Atoi(strings.TrimSpace(userAnswer))
	correct := parseErr == nil && q.CorrectOption != nil && idx == *q.CorrectOption

	if correct {
		fb := "Correct!"
		if q.Explanation != "" {
			fb += " " + q.Explanation
		}
		return Verdict{IsCorrect: true, Score: 100, Feedback: fb}
	}

	selected := invalidSelection
	if parseErr == nil && idx >= 0 && idx < len(q.Options) {
		selected = fmt.Sprintf("%q", q.Options[idx])
	}
	correctText := invalidSelection
	if q.CorrectOption != nil && *q.CorrectOption >= 0 && *q.CorrectOption < len(q.Options) {
		correctText = fmt.Sprintf("%q", q.Options[*q.CorrectOption])
	}

	fb := fmt.Sprintf("Incorrect. You selected %s, the correct answer is %s.", selected, correctText)
	if q.Explanation != "" {
		fb += " " + q.Explanation
	}
	return Verdict{IsCorrect: false, Score: 0, Feedback: fb}
}

// GradeShortAnswer runs the provider path, degrading to the fallback
// verdict on any terminal failure. Exposed separately because re-check
// invokes it directly, bypassing the mcq and no-answer paths.
func (s *GraderService) GradeShortAnswer(ctx context.Context, q *models.Question, userAnswer string) Verdict {
	prompt := buildGradingPrompt(q, userAnswer)

	verdict, err := s.gradeWithProvider(ctx, prompt)
	if err != nil {
		log.Printf("AI grading failed for question %d: %v", q.ID, err)
		return Verdict{IsCorrect: false, Score: 0, Feedback: feedbackUnavailable}
	}
	return verdict
}

func (s *GraderService) gradeWithProvider(ctx context.Context, prompt string) (Verdict, error) {
	var lastErr error

	for attempt := 0; attempt <= s.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return Verdict{}, ctx.Err()
			case <-time.After(time.Duration(attempt) * s.cfg.RetryDelay):
			}
		}

		raw, err := s.provider.Generate(ctx, prompt)
		if err != nil {
			lastErr = err
			var rl *llm.ErrRateLimit
			if errors.As(err, &rl) {
				continue
			}
			return Verdict{}, err
		}

		return parseVerdict(raw)
	}

	return Verdict{}, lastErr
}

const gradingPromptTemplate = `You are grading a candidate's answer to a technical interview question.

Question: %s

Expected keywords or concepts: %s

Candidate's answer: %s

Evaluate whether the answer demonstrates understanding of the expected concepts. Respond with ONLY a JSON object (no markdown, no code fences, no explanations) in this exact format:
{"isCorrect": true, "score": 85, "feedback": "One or two sentences of constructive feedback."}

"isCorrect" is a boolean, "score" is a number from 0 to 100, "feedback" is a short string.`

func buildGradingPrompt(q *models.Question, userAnswer string) string {
	return fmt.Sprintf(gradingPromptTemplate, q.Description, strings.Join(q.Keywords, ", "), userAnswer)
}

type providerVerdict struct {
	IsCorrect bool    `json:"isCorrect"`
	Score     float64 `json:"score"`
	Feedback  string  `json:"feedback"`
}

func parseVerdict(raw string) (Verdict, error) {
	obj, err := extractJSONObject(raw)
	if err != nil {
		return Verdict{}, err
	}

	var pv providerVerdict
	if err := json.Unmarshal([]byte(obj), &pv); err != nil {
		return Verdict{}, &llm.ErrInvalidResponse{Raw: raw, Err: err}
	}

	score := int(math.Round(pv.Score))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return Verdict{IsCorrect: pv.IsCorrect, Score: score, Feedback: pv.Feedback}, nil
}

// extractJSONObject strips markdown code fences, then returns the first
// balanced {...} substring. The scan is string-aware so braces inside
// quoted feedback don't terminate it early.
func extractJSONObject(raw string) (string, error) {
	s := stripCodeFences(raw)

	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", &llm.ErrInvalidResponse{Raw: raw, Err: errors.New("no JSON object found")}
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}

	return "", &llm.ErrInvalidResponse{Raw: raw, Err: errors.New("unbalanced JSON object")}
}

func stripCodeFences(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
	}
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
	}
	if strings.HasSuffix(content, "```") {
		content = strings.TrimSuffix(content, "```")
	}
	return strings.TrimSpace(content)
}

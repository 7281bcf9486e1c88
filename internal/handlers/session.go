package handlers

import (
	"net/http"
	"strconv"

	"github.com/MdAyanBadar/interview-prep/internal/services"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	sessionService *services.SessionService
}

func NewSessionHandler(sessionService *services.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

type StartSessionRequest struct {
	Topic      string `json:"topic" example:"golang"`
	Difficulty string `json:"difficulty" example:"medium"`
	Limit      int    `json:"limit" example:"5"`
	Type       string `json:"type" example:"mixed"`
}

// Start godoc
// @Summary      Start a practice session
// @Description  Samples questions under the given filters and creates an in-progress session.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body StartSessionRequest true "Session filters"
// @Success      201 {object} services.StartSessionResult
// @Failure      404 {object} ErrorResponse
// @Router       /api/sessions/start [post]
func (h *SessionHandler) Start(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.sessionService.StartSession(userID, req.Topic, req.Difficulty, req.Type, req.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

type SubmitSessionRequest struct {
	Answers []services.SubmittedAnswer `json:"answers" binding:"required"`
}

// Submit godoc
// @Summary      Submit a session's answers for grading
// @Description  Grades every submitted answer and completes the session. Short-answer items are graded by the AI provider.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        sessionId path int true "Session ID"
// @Param        request body SubmitSessionRequest true "Submitted answers"
// @Success      200 {object} models.Session
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/sessions/{sessionId}/submit [post]
func (h *SessionHandler) Submit(c *gin.Context) {
	userID := c.GetUint("user_id")

	sessionID, err := strconv.ParseUint(c.Param("sessionId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid session id"})
		return
	}

	var req SubmitSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	session, err := h.sessionService.SubmitSession(c.Request.Context(), uint(sessionID), userID, req.Answers)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

type RecheckRequest struct {
	QuestionID uint   `json:"questionId" binding:"required"`
	UserAnswer string `json:"userAnswer" binding:"required"`
}

// Recheck godoc
// @Summary      Re-grade one short-answer item
// @Description  Re-runs AI grading for a single answered question and rewrites that answer entry in place.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        sessionId path int true "Session ID"
// @Param        request body RecheckRequest true "Question and original answer"
// @Success      200 {object} services.Verdict
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/sessions/recheck/{sessionId} [post]
func (h *SessionHandler) Recheck(c *gin.Context) {
	sessionID, err := strconv.ParseUint(c.Param("sessionId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid session id"})
		return
	}

	var req RecheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	verdict, err := h.sessionService.RecheckAnswer(c.Request.Context(), uint(sessionID), req.QuestionID, req.UserAnswer)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, verdict)
}

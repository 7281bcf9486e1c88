package handlers

import (
	"net/http"
	"strconv"

	"github.com/MdAyanBadar/interview-prep/internal/services"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Progress godoc
// @Summary      Get dashboard progress statistics
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} services.ProgressSummary
// @Router       /api/reports/progress [get]
func (h *ReportHandler) Progress(c *gin.Context) {
	userID := c.GetUint("user_id")

	summary, err := h.reportService.GetProgress(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// SessionResult godoc
// @Summary      Get one session's result detail
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        sessionId path int true "Session ID"
// @Success      200 {object} services.SessionResult
// @Failure      404 {object} ErrorResponse
// @Router       /api/reports/session/{sessionId} [get]
func (h *ReportHandler) SessionResult(c *gin.Context) {
	userID := c.GetUint("user_id")

	sessionID, err := strconv.ParseUint(c.Param("sessionId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid session id"})
		return
	}

	result, err := h.reportService.GetSessionResult(uint(sessionID), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

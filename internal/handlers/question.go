package handlers

import (
	"net/http"
	"strconv"

	"github.com/MdAyanBadar/interview-prep/internal/models"
	"github.com/MdAyanBadar/interview-prep/internal/services"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	questionService *services.QuestionService
}

func NewQuestionHandler(questionService *services.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// Create godoc
// @Summary      Create a question (admin only)
// @Tags         questions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body models.Question true "Question data"
// @Success      201 {object} models.Question
// @Failure      400 {object} ErrorResponse
// @Router       /api/questions [post]
func (h *QuestionHandler) Create(c *gin.Context) {
	userID := c.GetUint("user_id")

	var q models.Question
	if err := c.ShouldBindJSON(&q); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.questionService.Create(&q, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, q)
}

// List godoc
// @Summary      List questions with filters and pagination
// @Tags         questions
// @Produce      json
// @Security     BearerAuth
// @Param        topic query string false "Topic filter"
// @Param        difficulty query string false "Difficulty filter"
// @Param        page query int false "Page number"
// @Param        limit query int false "Page size"
// @Success      200 {array} models.Question
// @Router       /api/questions [get]
func (h *QuestionHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	filter := services.QuestionFilter{
		Topic:      c.Query("topic"),
		Difficulty: c.Query("difficulty"),
	}

	questions, err := h.questionService.List(filter, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, questions)
}

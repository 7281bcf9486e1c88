package handlers

import (
	"net/http"

	"github.com/MdAyanBadar/interview-prep/internal/services"

	"github.com/gin-gonic/gin"
)

type BookmarkHandler struct {
	bookmarkService *services.BookmarkService
}

func NewBookmarkHandler(bookmarkService *services.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{bookmarkService: bookmarkService}
}

type AddBookmarkRequest struct {
	QuestionID uint `json:"questionId" binding:"required" example:"1"`
}

// Add godoc
// @Summary      Bookmark a question
// @Tags         bookmarks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body AddBookmarkRequest true "Question to bookmark"
// @Success      201 {object} models.Bookmark
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/bookmarks [post]
func (h *BookmarkHandler) Add(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req AddBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	bookmark, err := h.bookmarkService.Add(userID, req.QuestionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bookmark)
}

// List godoc
// @Summary      List the user's bookmarks, newest first
// @Tags         bookmarks
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} models.Bookmark
// @Router       /api/bookmarks [get]
func (h *BookmarkHandler) List(c *gin.Context) {
	userID := c.GetUint("user_id")

	bookmarks, err := h.bookmarkService.List(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":     len(bookmarks),
		"bookmarks": bookmarks,
	})
}

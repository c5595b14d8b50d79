package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/postboard/backend/internal/middleware"
	"github.com/postboard/backend/internal/models"
	"github.com/postboard/backend/internal/service"
)

// CommentHandler handles comment creation
type CommentHandler struct {
	postService *service.PostService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(postService *service.PostService) *CommentHandler {
	return &CommentHandler{postService: postService}
}

// RegisterCommentRoutes registers the comment routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/comments", h.CreateComment)
}

// CreateComment adds a comment to a post for the authenticated viewer
func (h *CommentHandler) CreateComment(c echo.Context) error {
	viewerID := middleware.UserIDFromContext(c)

	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	var req models.CommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	comment, err := h.postService.CreateComment(c.Request().Context(), viewerID, uint(postID), service.CommentInput{Text: req.Text})
	if err != nil {
		return respondServiceError(c, err, req)
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": comment})
}

package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/postboard/backend/internal/middleware"
	"github.com/postboard/backend/internal/models"
	"github.com/postboard/backend/internal/service"
)

// maxImageBytes caps a single uploaded attachment.
const maxImageBytes = 10 << 20

// PostHandler handles post creation and editing
type PostHandler struct {
	postService *service.PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// RegisterPostRoutes registers the post write routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.PUT("/posts/:id", h.EditPost)
}

// bindPostInput reads the payload from JSON or multipart form, picking up
// the optional image attachment in the latter case.
func bindPostInput(c echo.Context) (models.PostRequest, service.PostInput, error) {
	var req models.PostRequest
	if err := c.Bind(&req); err != nil {
		return req, service.PostInput{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	in := service.PostInput{Text: req.Text, GroupID: req.GroupID}
	if file, err := c.FormFile("image"); err == nil {
		src, err := file.Open()
		if err != nil {
			return req, in, echo.NewHTTPError(http.StatusBadRequest, "Unreadable image attachment")
		}
		defer src.Close()
		data, err := io.ReadAll(io.LimitReader(src, maxImageBytes+1))
		if err != nil {
			return req, in, echo.NewHTTPError(http.StatusBadRequest, "Unreadable image attachment")
		}
		if len(data) > maxImageBytes {
			return req, in, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "Image attachment too large")
		}
		in.ImageName = file.Filename
		in.ImageData = data
	}
	return req, in, nil
}

// CreatePost creates a new post for the authenticated viewer
func (h *PostHandler) CreatePost(c echo.Context) error {
	viewerID := middleware.UserIDFromContext(c)

	req, in, err := bindPostInput(c)
	if err != nil {
		return err
	}

	post, err := h.postService.CreatePost(c.Request().Context(), viewerID, in)
	if err != nil {
		return respondServiceError(c, err, req)
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": post})
}

// EditPost rewrites a post. Non-authors are redirected to the post's
// detail view with nothing changed.
func (h *PostHandler) EditPost(c echo.Context) error {
	viewerID := middleware.UserIDFromContext(c)

	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	req, in, err := bindPostInput(c)
	if err != nil {
		return err
	}

	post, err := h.postService.EditPost(c.Request().Context(), viewerID, uint(postID), in)
	if err != nil {
		return respondServiceError(c, err, req)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": post})
}

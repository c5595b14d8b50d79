package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/postboard/backend/internal/middleware"
	"github.com/postboard/backend/internal/service"
)

// FeedHandler handles the listing and detail HTTP requests
type FeedHandler struct {
	feedService *service.FeedService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feedService *service.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// RegisterFeedRoutes registers the public listing routes; viewer identity
// is optional on all of them
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetGlobalFeed)
	g.GET("/groups/:slug/posts", h.GetGroupFeed)
	g.GET("/users/:username/posts", h.GetAuthorFeed)
	g.GET("/posts/:id", h.GetPostDetail)
}

// RegisterFollowedFeedRoute registers the followed-authors feed, which
// requires an authenticated viewer
func (h *FeedHandler) RegisterFollowedFeedRoute(g *echo.Group) {
	g.GET("/feed/following", h.GetFollowedFeed)
}

func pageParam(c echo.Context) int {
	// Invalid values resolve to page 1 downstream.
	page, _ := strconv.Atoi(c.QueryParam("page"))
	return page
}

// GetGlobalFeed returns a page of all posts, newest first
func (h *FeedHandler) GetGlobalFeed(c echo.Context) error {
	page, err := h.feedService.GlobalFeed(c.Request().Context(), pageParam(c))
	if err != nil {
		return respondServiceError(c, err, nil)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": page})
}

// GetGroupFeed returns a page of one group's posts
func (h *FeedHandler) GetGroupFeed(c echo.Context) error {
	feed, err := h.feedService.GroupFeed(c.Request().Context(), c.Param("slug"), pageParam(c))
	if err != nil {
		return respondServiceError(c, err, nil)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": feed})
}

// GetAuthorFeed returns a page of one author's posts plus the viewer flags
func (h *FeedHandler) GetAuthorFeed(c echo.Context) error {
	viewerID := middleware.UserIDFromContext(c)
	feed, err := h.feedService.AuthorFeed(c.Request().Context(), c.Param("username"), viewerID, pageParam(c))
	if err != nil {
		return respondServiceError(c, err, nil)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": feed})
}

// GetFollowedFeed returns a page of posts by the viewer's followed authors
func (h *FeedHandler) GetFollowedFeed(c echo.Context) error {
	viewerID := middleware.UserIDFromContext(c)
	page, err := h.feedService.FollowedFeed(c.Request().Context(), viewerID, pageParam(c))
	if err != nil {
		return respondServiceError(c, err, nil)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": page})
}

// GetPostDetail returns one post, its comments and the author's post count
func (h *FeedHandler) GetPostDetail(c echo.Context) error {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}
	detail, err := h.feedService.PostDetail(c.Request().Context(), uint(postID))
	if err != nil {
		return respondServiceError(c, err, nil)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": detail})
}

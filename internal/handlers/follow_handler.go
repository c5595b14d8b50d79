package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/postboard/backend/internal/middleware"
	"github.com/postboard/backend/internal/service"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followService *service.FollowService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followService *service.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:username/follow", h.FollowUser)
	g.DELETE("/users/:username/follow", h.UnfollowUser)
}

func profilePath(username string) string {
	return fmt.Sprintf("/api/v1/users/%s/posts", username)
}

// FollowUser follows an author. Self-follows and duplicates change
// nothing; either way the caller lands back on the profile.
func (h *FollowHandler) FollowUser(c echo.Context) error {
	viewerID := middleware.UserIDFromContext(c)
	username := c.Param("username")

	if err := h.followService.Follow(c.Request().Context(), viewerID, username); err != nil {
		return respondServiceError(c, err, nil)
	}
	return c.Redirect(http.StatusFound, profilePath(username))
}

// UnfollowUser unfollows an author; absent edges are a no-op
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	viewerID := middleware.UserIDFromContext(c)
	username := c.Param("username")

	if err := h.followService.Unfollow(c.Request().Context(), viewerID, username); err != nil {
		return respondServiceError(c, err, nil)
	}
	return c.Redirect(http.StatusFound, profilePath(username))
}

package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/postboard/backend/internal/middleware"
	"github.com/postboard/backend/internal/models"
	"github.com/postboard/backend/internal/service"
)

// GroupHandler handles group administration and listing
type GroupHandler struct {
	groupService *service.GroupService
}

// NewGroupHandler creates a new GroupHandler
func NewGroupHandler(groupService *service.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

// RegisterGroupRoutes registers the authenticated group routes
func (h *GroupHandler) RegisterGroupRoutes(g *echo.Group) {
	g.POST("/groups", h.CreateGroup)
}

// RegisterPublicGroupRoutes registers the public group listing
func (h *GroupHandler) RegisterPublicGroupRoutes(g *echo.Group) {
	g.GET("/groups", h.ListGroups)
}

// CreateGroup creates a new group; the slug is unique for life
func (h *GroupHandler) CreateGroup(c echo.Context) error {
	viewerID := middleware.UserIDFromContext(c)

	var req models.CreateGroupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	group, err := h.groupService.CreateGroup(c.Request().Context(), viewerID, req)
	if err != nil {
		return respondServiceError(c, err, req)
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": group})
}

// ListGroups returns all groups
func (h *GroupHandler) ListGroups(c echo.Context) error {
	groups, err := h.groupService.ListGroups(c.Request().Context())
	if err != nil {
		return respondServiceError(c, err, nil)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": groups})
}

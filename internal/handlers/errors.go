package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/postboard/backend/internal/middleware"
	"github.com/postboard/backend/internal/service"
)

// respondServiceError translates the service error taxonomy into HTTP.
// Anonymous writers get a redirect to the login flow, forbidden actions a
// silent redirect to their fallback view, validation failures a 400 that
// echoes the submitted input next to the field annotations.
func respondServiceError(c echo.Context, err error, input any) error {
	var authErr *service.AuthRequiredError
	if errors.As(err, &authErr) {
		return c.Redirect(http.StatusFound, middleware.LoginPath)
	}

	var forbidden *service.ForbiddenError
	if errors.As(err, &forbidden) {
		return c.Redirect(http.StatusFound, forbidden.RedirectTo)
	}

	var notFound *service.NotFoundError
	if errors.As(err, &notFound) {
		return echo.NewHTTPError(http.StatusNotFound, notFound.Error())
	}

	var valErr *service.ValidationError
	if errors.As(err, &valErr) {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"errors":  valErr.Fields,
			"input":   input,
		})
	}

	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

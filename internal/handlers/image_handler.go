package handlers

import (
	"errors"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/postboard/backend/internal/storage"
)

// ImageHandler serves post image attachments from the blob store
type ImageHandler struct {
	blobs storage.BlobStore
}

// NewImageHandler creates a new ImageHandler
func NewImageHandler(blobs storage.BlobStore) *ImageHandler {
	return &ImageHandler{blobs: blobs}
}

// RegisterImageRoutes registers the image routes
func (h *ImageHandler) RegisterImageRoutes(g *echo.Group) {
	g.GET("/images/:ref", h.GetImage)
}

// GetImage streams the stored image bytes
func (h *ImageHandler) GetImage(c echo.Context) error {
	ref := c.Param("ref")

	data, err := h.blobs.Open(c.Request().Context(), ref)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Image not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load image")
	}

	contentType := mime.TypeByExtension(filepath.Ext(ref))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return c.Blob(http.StatusOK, contentType, data)
}

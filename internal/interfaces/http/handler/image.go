package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/swiftsupply/backend/internal/infrastructure/storage"
)

// ImageLocator finds uploaded images for serving
type ImageLocator interface {
	Locate(ctx context.Context, name string) (storage.Location, error)
}

// ImageHandler serves uploaded product images
type ImageHandler struct {
	BaseHandler
	images ImageLocator
}

// NewImageHandler creates a new ImageHandler
func NewImageHandler(images ImageLocator) *ImageHandler {
	return &ImageHandler{images: images}
}

// Serve godoc
// @Summary      Serve an image
// @Description  Streams a locally stored image or redirects to a presigned object URL
// @Tags         images
// @Produce      image/png
// @Produce      image/jpeg
// @Param        filename path string true "Image name"
// @Success      200 {file} binary
// @Success      302
// @Failure      404 {object} ErrorResponse
// @Router       /images/{filename} [get]
func (h *ImageHandler) Serve(c *gin.Context) {
	loc, err := h.images.Locate(c.Request.Context(), c.Param("filename"))
	switch {
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, storage.ErrInvalidName):
		h.NotFound(c, "Image not found")
		return
	case err != nil:
		h.HandleError(c, err)
		return
	}

	if loc.RedirectURL != "" {
		c.Redirect(http.StatusFound, loc.RedirectURL)
		return
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.File(loc.Path)
}

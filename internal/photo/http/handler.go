package http

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/avdeyev/shareit-backend/internal/photo"
	"github.com/avdeyev/shareit-backend/internal/pkg/response"
	"github.com/avdeyev/shareit-backend/internal/sharer"
)

type Handler struct {
	service photo.Service
}

func NewHandler(service photo.Service) *Handler {
	return &Handler{service: service}
}

// Upload attaches a photo to an item. Multipart field name: "file".
func (h *Handler) Upload(c *gin.Context) {
	itemID := c.Param("id")
	if _, err := uuid.Parse(itemID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	p, err := h.service.Upload(c.Request.Context(), sharer.GetUserID(c), itemID, header)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewPhotoResponse(p))
}

// ListByItem returns the photos attached to an item.
func (h *Handler) ListByItem(c *gin.Context) {
	itemID := c.Param("id")
	if _, err := uuid.Parse(itemID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	photos, err := h.service.ListByItem(c.Request.Context(), itemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]PhotoResponse, len(photos))
	for i, p := range photos {
		items[i] = NewPhotoResponse(p)
	}

	c.JSON(http.StatusOK, items)
}

func (h *Handler) Download(c *gin.Context) {
	h.download(c, h.service.Download, func(p *photo.Photo) string { return p.ContentType })
}

func (h *Handler) DownloadThumbnail(c *gin.Context) {
	h.download(c, h.service.DownloadThumbnail, func(*photo.Photo) string { return "image/jpeg" })
}

func (h *Handler) download(
	c *gin.Context,
	fn func(ctx context.Context, id string) (io.ReadCloser, *photo.Photo, error),
	contentType func(*photo.Photo) string,
) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	rc, p, err := fn(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer rc.Close()

	c.Header("Content-Disposition", `inline; filename="`+p.FileName+`"`)
	c.DataFromReader(http.StatusOK, -1, contentType(p), rc, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), sharer.GetUserID(c), id); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

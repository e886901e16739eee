package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/avdeyev/shareit-backend/internal/itemrequest"
	"github.com/avdeyev/shareit-backend/internal/pkg/request"
	"github.com/avdeyev/shareit-backend/internal/pkg/response"
	"github.com/avdeyev/shareit-backend/internal/sharer"
)

type Handler struct {
	service itemrequest.Service
}

func NewHandler(service itemrequest.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	r, err := h.service.Create(c.Request.Context(), sharer.GetUserID(c), body.Description)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewRequestResponse(r))
}

// ListOwn returns the sharer's requests with the items answering them.
func (h *Handler) ListOwn(c *gin.Context) {
	details, err := h.service.ListOwn(c.Request.Context(), sharer.GetUserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, detailsList(details))
}

// ListOthers returns other users' requests, paged.
func (h *Handler) ListOthers(c *gin.Context) {
	var req ListRequestsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	details, err := h.service.ListOthers(c.Request.Context(), sharer.GetUserID(c), req.PageParams)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, detailsList(details))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	d, err := h.service.GetByID(c.Request.Context(), sharer.GetUserID(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRequestDetailsResponse(d))
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, itemrequest.ErrNotFound), errors.Is(err, itemrequest.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, itemrequest.ErrDescriptionRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, request.ErrInvalidPage):
		response.Error(c, err)
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process item request"})
	}
}

func detailsList(details []*itemrequest.Details) []RequestDetailsResponse {
	out := make([]RequestDetailsResponse, len(details))
	for i, d := range details {
		out[i] = NewRequestDetailsResponse(d)
	}
	return out
}

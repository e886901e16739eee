package http

import (
	"time"

	"github.com/avdeyev/shareit-backend/internal/itemrequest"
	"github.com/avdeyev/shareit-backend/internal/pkg/request"
)

type CreateRequestBody struct {
	Description string `json:"description" binding:"required"`
}

// ListRequestsRequest defines query parameters for listing other users'
// requests.
type ListRequestsRequest struct {
	request.PageParams
}

type RequestResponse struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewRequestResponse(r *itemrequest.ItemRequest) RequestResponse {
	return RequestResponse{
		ID:          r.ID,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
	}
}

type AnswerResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     string `json:"owner_id"`
}

// RequestDetailsResponse is a request with the items answering it.
type RequestDetailsResponse struct {
	RequestResponse
	Items []AnswerResponse `json:"items"`
}

func NewRequestDetailsResponse(d *itemrequest.Details) RequestDetailsResponse {
	resp := RequestDetailsResponse{
		RequestResponse: NewRequestResponse(&d.ItemRequest),
		Items:           make([]AnswerResponse, len(d.Items)),
	}
	for i, a := range d.Items {
		resp.Items[i] = AnswerResponse{
			ID:          a.ID,
			Name:        a.Name,
			Description: a.Description,
			Available:   a.Available,
			OwnerID:     a.OwnerID,
		}
	}
	return resp
}

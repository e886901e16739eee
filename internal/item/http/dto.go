package http

import (
	"time"

	"github.com/avdeyev/shareit-backend/internal/item"
	"github.com/avdeyev/shareit-backend/internal/pkg/request"
)

type CreateItemBody struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Available   *bool   `json:"available" binding:"required"`
	RequestID   *string `json:"request_id" binding:"omitempty,uuid"`
}

type UpdateItemBody struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type CreateCommentBody struct {
	Text string `json:"text" binding:"required"`
}

// SearchItemsRequest defines query parameters for the text search endpoint.
type SearchItemsRequest struct {
	request.PageParams
	Text string `form:"text"`
}

// ListItemsRequest defines query parameters for the owner listing endpoint.
type ListItemsRequest struct {
	request.PageParams
}

type ItemResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Available   bool      `json:"available"`
	OwnerID     string    `json:"owner_id"`
	RequestID   *string   `json:"request_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewItemResponse(it *item.Item) ItemResponse {
	return ItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		OwnerID:     it.OwnerID,
		RequestID:   it.RequestID,
		CreatedAt:   it.CreatedAt,
	}
}

// BookingRefResponse is the brief booking view embedded in item details.
type BookingRefResponse struct {
	ID       string `json:"id"`
	BookerID string `json:"booker_id"`
}

type CommentResponse struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewCommentResponse(c item.Comment) CommentResponse {
	return CommentResponse{
		ID:         c.ID,
		Text:       c.Text,
		AuthorName: c.AuthorName,
		CreatedAt:  c.CreatedAt,
	}
}

// ItemDetailsResponse is an item with comments and, for the owner, the
// bookings closest to now.
type ItemDetailsResponse struct {
	ItemResponse
	LastBooking *BookingRefResponse `json:"last_booking"`
	NextBooking *BookingRefResponse `json:"next_booking"`
	Comments    []CommentResponse   `json:"comments"`
}

func NewItemDetailsResponse(d *item.Details) ItemDetailsResponse {
	resp := ItemDetailsResponse{
		ItemResponse: NewItemResponse(&d.Item),
		Comments:     make([]CommentResponse, len(d.Comments)),
	}
	for i, c := range d.Comments {
		resp.Comments[i] = NewCommentResponse(c)
	}
	if d.LastBooking != nil {
		resp.LastBooking = &BookingRefResponse{ID: d.LastBooking.ID, BookerID: d.LastBooking.BookerID}
	}
	if d.NextBooking != nil {
		resp.NextBooking = &BookingRefResponse{ID: d.NextBooking.ID, BookerID: d.NextBooking.BookerID}
	}
	return resp
}

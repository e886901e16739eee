package http

import (
	"time"

	"github.com/avdeyev/shareit-backend/internal/booking"
	"github.com/avdeyev/shareit-backend/internal/pkg/request"
	userHttp "github.com/avdeyev/shareit-backend/internal/user/http"
)

type CreateBookingBody struct {
	ItemID string    `json:"item_id" binding:"required,uuid"`
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
}

// ListBookingsRequest defines query parameters for the booker and owner
// listing endpoints.
type ListBookingsRequest struct {
	request.PageParams
	State string `form:"state"`
}

// ItemTag is a brief representation of the booked item.
type ItemTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type BookingResponse struct {
	ID        string           `json:"id"`
	Item      ItemTag          `json:"item"`
	Booker    userHttp.UserTag `json:"booker"`
	Start     time.Time        `json:"start"`
	End       time.Time        `json:"end"`
	Status    string           `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:        b.ID,
		Item:      ItemTag{ID: b.ItemID, Name: b.ItemName},
		Booker:    userHttp.UserTag{ID: b.BookerID, Name: b.BookerName},
		Start:     b.Start,
		End:       b.End,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
	}
}

package item

import (
	"net/http"
	"time"

	"github.com/avdeyev/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "item not found")
	ErrUserNotFound        = apperror.New(http.StatusNotFound, "user not found")
	ErrRequestNotFound     = apperror.New(http.StatusNotFound, "item request not found")
	ErrNotOwner            = apperror.New(http.StatusNotFound, "item not found for this user")
	ErrNameRequired        = apperror.New(http.StatusBadRequest, "name is required")
	ErrDescriptionRequired = apperror.New(http.StatusBadRequest, "description is required")
	ErrCommentForbidden    = apperror.New(http.StatusBadRequest, "user has no finished booking on this item")
	ErrCommentTextRequired = apperror.New(http.StatusBadRequest, "comment text is required")
)

// Item is something a user shares with others. Available controls whether
// new bookings are accepted; RequestID links the item to the item request
// it answers, when there is one.
type Item struct {
	ID          string
	Name        string
	Description string
	Available   bool
	OwnerID     string
	RequestID   *string
	CreatedAt   time.Time
}

// Comment is feedback left by a booker after a finished booking.
type Comment struct {
	ID         string
	Text       string
	ItemID     string
	AuthorID   string
	AuthorName string
	CreatedAt  time.Time
}

// BookingRef is the minimal view of a booking embedded in item responses.
type BookingRef struct {
	ID       string
	BookerID string
}

// Details is an item enriched with its comments and, for the owner only,
// the closest bookings around now.
type Details struct {
	Item
	LastBooking *BookingRef
	NextBooking *BookingRef
	Comments    []Comment
}

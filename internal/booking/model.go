package booking

import (
	"net/http"
	"time"

	"github.com/avdeyev/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking not found")
	ErrUserNotFound     = apperror.New(http.StatusNotFound, "user not found")
	ErrItemNotFound     = apperror.New(http.StatusNotFound, "item not found")
	ErrInvalidTimeRange = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrSelfBooking      = apperror.New(http.StatusNotFound, "owner cannot book own item")
	ErrItemUnavailable  = apperror.New(http.StatusBadRequest, "item is not available")
	ErrNotOwner         = apperror.New(http.StatusForbidden, "only the item owner can decide on a booking")
	ErrAccessDenied     = apperror.New(http.StatusForbidden, "not the booker or the item owner")
	ErrSameStatus       = apperror.New(http.StatusBadRequest, "new status equals the current status")
	ErrAlreadyDecided   = apperror.New(http.StatusBadRequest, "booking has already been decided")
	ErrUnknownState     = apperror.New(http.StatusBadRequest, "unknown state")
)

// Status is the lifecycle status of a booking. A booking is created WAITING
// and transitions exactly once to APPROVED or REJECTED; both are terminal.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Booking is a time-bound request by a booker on another user's item.
// ItemName, BookerName and OwnerID are denormalized from the joined rows;
// OwnerID backs the ownership checks without a second lookup.
type Booking struct {
	ID         string
	ItemID     string
	ItemName   string
	BookerID   string
	BookerName string
	OwnerID    string
	Start      time.Time
	End        time.Time
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

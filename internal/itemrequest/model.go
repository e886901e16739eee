package itemrequest

import (
	"errors"
	"time"
)

var (
	ErrNotFound            = errors.New("item request not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrDescriptionRequired = errors.New("description is required")
)

// ItemRequest is a user's declared interest in an item type ("I want an item
// like this"), independent of any specific booking. Owners answer a request
// by creating items that reference it.
type ItemRequest struct {
	ID          string
	Description string
	RequesterID string
	CreatedAt   time.Time
}

// ItemAnswer is an item created in response to a request.
type ItemAnswer struct {
	ID          string
	Name        string
	Description string
	Available   bool
	OwnerID     string
}

// Details is a request together with the items answering it.
type Details struct {
	ItemRequest
	Items []ItemAnswer
}

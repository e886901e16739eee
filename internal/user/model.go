package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("user not found")
	ErrEmailAlreadyUsed = errors.New("email already used")
	ErrEmailRequired    = errors.New("email is required")
	ErrNameRequired     = errors.New("name is required")
)

// User represents a registered participant of the sharing service.
// A user can own items, book other users' items, or both.
type User struct {
	ID        string // UUID
	Name      string
	Email     string
	CreatedAt time.Time
}

// Filter defines filter options for listing users.
type Filter struct {
	Email string
	Name  string

	Page     int
	PageSize int
}

package booking

import (
	"context"
	"errors"
	"time"

	"github.com/avdeyev/shareit-backend/internal/item"
	"github.com/avdeyev/shareit-backend/internal/pkg/clock"
	"github.com/avdeyev/shareit-backend/internal/pkg/request"
)

// CreateRequest carries the fields of a new booking request.
type CreateRequest struct {
	UserID string
	ItemID string
	Start  time.Time
	End    time.Time
}

// ItemLookup provides the item fields the booking rules need.
type ItemLookup interface {
	GetByID(ctx context.Context, id string) (*item.Item, error)
}

// UserLookup answers whether a user id is known.
type UserLookup interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	Decide(ctx context.Context, bookingID, actorID string, approve bool) (*Booking, error)
	GetByID(ctx context.Context, bookingID, actorID string) (*Booking, error)
	ListByBooker(ctx context.Context, userID string, state State, page request.PageParams) ([]*Booking, error)
	ListByOwner(ctx context.Context, ownerID string, state State, page request.PageParams) ([]*Booking, error)
}

type service struct {
	repo  Repository
	items ItemLookup
	users UserLookup
	clk   clock.Clock
}

func NewService(repo Repository, items ItemLookup, users UserLookup, clk clock.Clock) Service {
	return &service{
		repo:  repo,
		items: items,
		users: users,
		clk:   clk,
	}
}

// Create validates a booking request and persists it in WAITING status.
func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	// 1. Validate time range: start must strictly precede end.
	if !req.Start.Before(req.End) {
		return nil, ErrInvalidTimeRange
	}

	// 2. Requester must be a known user.
	exists, err := s.users.Exists(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	// 3. Item must exist.
	it, err := s.items.GetByID(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, item.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	// 4. Owners do not book their own items.
	if it.OwnerID == req.UserID {
		return nil, ErrSelfBooking
	}

	// 5. Item must be open for booking.
	if !it.Available {
		return nil, ErrItemUnavailable
	}

	b := &Booking{
		ItemID:   req.ItemID,
		BookerID: req.UserID,
		Start:    req.Start,
		End:      req.End,
		Status:   StatusWaiting,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	b.ItemName = it.Name
	b.OwnerID = it.OwnerID

	return b, nil
}

// Decide applies the owner's approve/reject decision. The status flip is a
// conditional update keyed on the WAITING status, so two concurrent decisions
// on the same booking cannot both succeed.
func (s *service) Decide(ctx context.Context, bookingID, actorID string, approve bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	exists, err := s.users.Exists(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	if b.OwnerID != actorID {
		return nil, ErrNotOwner
	}

	target := StatusRejected
	if approve {
		target = StatusApproved
	}

	if b.Status == target {
		return nil, ErrSameStatus
	}
	if b.Status != StatusWaiting {
		// APPROVED and REJECTED are terminal.
		return nil, ErrAlreadyDecided
	}

	updated, err := s.repo.UpdateStatus(ctx, b.ID, StatusWaiting, target)
	if err != nil {
		return nil, err
	}
	if !updated {
		// Lost the race to a concurrent decision.
		return nil, ErrAlreadyDecided
	}

	b.Status = target
	return b, nil
}

// GetByID returns the booking when the actor is its booker or the item owner.
func (s *service) GetByID(ctx context.Context, bookingID, actorID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	exists, err := s.users.Exists(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	if b.BookerID != actorID && b.OwnerID != actorID {
		return nil, ErrAccessDenied
	}

	return b, nil
}

func (s *service) ListByBooker(ctx context.Context, userID string, state State, page request.PageParams) ([]*Booking, error) {
	if err := s.checkSubject(ctx, userID, page); err != nil {
		return nil, err
	}
	return s.repo.ListByBooker(ctx, userID, state, s.clk.Now(), page.Size, page.Offset())
}

func (s *service) ListByOwner(ctx context.Context, ownerID string, state State, page request.PageParams) ([]*Booking, error) {
	if err := s.checkSubject(ctx, ownerID, page); err != nil {
		return nil, err
	}
	return s.repo.ListByOwner(ctx, ownerID, state, s.clk.Now(), page.Size, page.Offset())
}

// checkSubject validates the listing subject before any pagination check.
func (s *service) checkSubject(ctx context.Context, userID string, page request.PageParams) error {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUserNotFound
	}
	return page.Validate()
}

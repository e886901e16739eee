package item

import (
	"context"
	"strings"
	"time"

	"github.com/avdeyev/shareit-backend/internal/pkg/clock"
	"github.com/avdeyev/shareit-backend/internal/pkg/request"
)

// CreateRequest carries the fields for a new item.
type CreateRequest struct {
	Name        string
	Description string
	Available   bool
	RequestID   *string
}

// UpdateRequest carries the partial-update fields; nil means "leave as is".
type UpdateRequest struct {
	Name        *string
	Description *string
	Available   *bool
}

// UserLookup answers whether a user id is known.
type UserLookup interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// RequestLookup answers whether an item request id is known.
type RequestLookup interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// BookingLookup provides the booking views item responses embed. All methods
// classify against the instant passed by the caller.
type BookingLookup interface {
	Last(ctx context.Context, itemID string, now time.Time) (*BookingRef, error)
	Next(ctx context.Context, itemID string, now time.Time) (*BookingRef, error)
	HasFinished(ctx context.Context, bookerID, itemID string, before time.Time) (bool, error)
}

type Service interface {
	Create(ctx context.Context, ownerID string, req CreateRequest) (*Item, error)
	Update(ctx context.Context, callerID, id string, req UpdateRequest) (*Item, error)
	GetByID(ctx context.Context, callerID, id string) (*Details, error)
	ListByOwner(ctx context.Context, ownerID string, page request.PageParams) ([]*Details, error)
	Search(ctx context.Context, text string, page request.PageParams) ([]*Item, error)
	Delete(ctx context.Context, callerID, id string) error
	AddComment(ctx context.Context, authorID, itemID, text string) (*Comment, error)
}

type service struct {
	repo     Repository
	users    UserLookup
	requests RequestLookup
	bookings BookingLookup
	clk      clock.Clock
}

func NewService(repo Repository, users UserLookup, requests RequestLookup, bookings BookingLookup, clk clock.Clock) Service {
	return &service{
		repo:     repo,
		users:    users,
		requests: requests,
		bookings: bookings,
		clk:      clk,
	}
}

func (s *service) Create(ctx context.Context, ownerID string, req CreateRequest) (*Item, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, ErrDescriptionRequired
	}

	if err := s.checkUser(ctx, ownerID); err != nil {
		return nil, err
	}

	if req.RequestID != nil {
		exists, err := s.requests.Exists(ctx, *req.RequestID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrRequestNotFound
		}
	}

	it := &Item{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Available:   req.Available,
		OwnerID:     ownerID,
		RequestID:   req.RequestID,
	}

	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}

	return it, nil
}

func (s *service) Update(ctx context.Context, callerID, id string, req UpdateRequest) (*Item, error) {
	if err := s.checkUser(ctx, callerID); err != nil {
		return nil, err
	}

	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// A non-owner is told the item does not exist for them.
	if it.OwnerID != callerID {
		return nil, ErrNotOwner
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		it.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil && strings.TrimSpace(*req.Description) != "" {
		it.Description = *req.Description
	}
	if req.Available != nil {
		it.Available = *req.Available
	}

	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}

	return it, nil
}

func (s *service) GetByID(ctx context.Context, callerID, id string) (*Details, error) {
	if err := s.checkUser(ctx, callerID); err != nil {
		return nil, err
	}

	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	comments, err := s.repo.ListCommentsByItem(ctx, id)
	if err != nil {
		return nil, err
	}

	d := &Details{Item: *it, Comments: comments}

	// Last/next bookings are owner-only: bookers should not see each
	// other's schedule through the item view.
	if it.OwnerID == callerID {
		now := s.clk.Now()
		if d.LastBooking, err = s.bookings.Last(ctx, id, now); err != nil {
			return nil, err
		}
		if d.NextBooking, err = s.bookings.Next(ctx, id, now); err != nil {
			return nil, err
		}
	}

	return d, nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID string, page request.PageParams) ([]*Details, error) {
	if err := s.checkUser(ctx, ownerID); err != nil {
		return nil, err
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}

	items, err := s.repo.ListByOwner(ctx, ownerID, page.Size, page.Offset())
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}

	commentsByItem, err := s.repo.ListCommentsByItems(ctx, ids)
	if err != nil {
		return nil, err
	}

	now := s.clk.Now()
	details := make([]*Details, len(items))
	for i, it := range items {
		d := &Details{Item: *it, Comments: commentsByItem[it.ID]}
		if d.LastBooking, err = s.bookings.Last(ctx, it.ID, now); err != nil {
			return nil, err
		}
		if d.NextBooking, err = s.bookings.Next(ctx, it.ID, now); err != nil {
			return nil, err
		}
		details[i] = d
	}

	return details, nil
}

func (s *service) Search(ctx context.Context, text string, page request.PageParams) ([]*Item, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}

	// Blank search matches nothing; skip the store entirely.
	if strings.TrimSpace(text) == "" {
		return []*Item{}, nil
	}

	return s.repo.Search(ctx, strings.TrimSpace(text), page.Size, page.Offset())
}

func (s *service) Delete(ctx context.Context, callerID, id string) error {
	if err := s.checkUser(ctx, callerID); err != nil {
		return err
	}

	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if it.OwnerID != callerID {
		return ErrNotOwner
	}

	return s.repo.Delete(ctx, id)
}

// AddComment records feedback on an item. Only a booker whose booking on the
// item already ended may comment; the check is a hard precondition.
func (s *service) AddComment(ctx context.Context, authorID, itemID, text string) (*Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrCommentTextRequired
	}

	if err := s.checkUser(ctx, authorID); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByID(ctx, itemID); err != nil {
		return nil, err
	}

	ok, err := s.bookings.HasFinished(ctx, authorID, itemID, s.clk.Now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCommentForbidden
	}

	c := &Comment{
		Text:     text,
		ItemID:   itemID,
		AuthorID: authorID,
	}

	if err := s.repo.CreateComment(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *service) checkUser(ctx context.Context, id string) error {
	exists, err := s.users.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUserNotFound
	}
	return nil
}

package itemrequest

import (
	"context"
	"strings"

	"github.com/avdeyev/shareit-backend/internal/pkg/request"
)

// UserLookup answers whether a user id is known.
type UserLookup interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type Service interface {
	Create(ctx context.Context, requesterID, description string) (*ItemRequest, error)
	// ListOwn returns the caller's requests with answers, newest first.
	ListOwn(ctx context.Context, requesterID string) ([]*Details, error)
	// ListOthers returns other users' requests with answers, newest first,
	// paged with the from/size window.
	ListOthers(ctx context.Context, callerID string, page request.PageParams) ([]*Details, error)
	GetByID(ctx context.Context, callerID, id string) (*Details, error)
}

type service struct {
	repo  Repository
	users UserLookup
}

func NewService(repo Repository, users UserLookup) Service {
	return &service{repo: repo, users: users}
}

func (s *service) Create(ctx context.Context, requesterID, description string) (*ItemRequest, error) {
	if strings.TrimSpace(description) == "" {
		return nil, ErrDescriptionRequired
	}
	if err := s.checkUser(ctx, requesterID); err != nil {
		return nil, err
	}

	req := &ItemRequest{
		Description: description,
		RequesterID: requesterID,
	}

	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}

	return req, nil
}

func (s *service) ListOwn(ctx context.Context, requesterID string) ([]*Details, error) {
	if err := s.checkUser(ctx, requesterID); err != nil {
		return nil, err
	}

	requests, err := s.repo.ListByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	return s.withAnswers(ctx, requests)
}

func (s *service) ListOthers(ctx context.Context, callerID string, page request.PageParams) ([]*Details, error) {
	if err := s.checkUser(ctx, callerID); err != nil {
		return nil, err
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}

	requests, err := s.repo.ListOthers(ctx, callerID, page.Size, page.Offset())
	if err != nil {
		return nil, err
	}

	return s.withAnswers(ctx, requests)
}

func (s *service) GetByID(ctx context.Context, callerID, id string) (*Details, error) {
	if err := s.checkUser(ctx, callerID); err != nil {
		return nil, err
	}

	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	details, err := s.withAnswers(ctx, []*ItemRequest{req})
	if err != nil {
		return nil, err
	}
	return details[0], nil
}

func (s *service) withAnswers(ctx context.Context, requests []*ItemRequest) ([]*Details, error) {
	ids := make([]string, len(requests))
	for i, req := range requests {
		ids[i] = req.ID
	}

	answers, err := s.repo.ListAnswers(ctx, ids)
	if err != nil {
		return nil, err
	}

	details := make([]*Details, len(requests))
	for i, req := range requests {
		items := answers[req.ID]
		if items == nil {
			items = []ItemAnswer{}
		}
		details[i] = &Details{ItemRequest: *req, Items: items}
	}

	return details, nil
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

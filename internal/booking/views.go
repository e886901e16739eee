package booking

import (
	"context"
	"time"

	"github.com/avdeyev/shareit-backend/internal/item"
)

// ItemViews exposes the booking store through the narrow lookups the item
// module declares for its enriched responses.
type ItemViews struct {
	repo Repository
}

func NewItemViews(repo Repository) *ItemViews {
	return &ItemViews{repo: repo}
}

func (v *ItemViews) Last(ctx context.Context, itemID string, now time.Time) (*item.BookingRef, error) {
	b, err := v.repo.LastForItem(ctx, itemID, now)
	if err != nil || b == nil {
		return nil, err
	}
	return &item.BookingRef{ID: b.ID, BookerID: b.BookerID}, nil
}

func (v *ItemViews) Next(ctx context.Context, itemID string, now time.Time) (*item.BookingRef, error) {
	b, err := v.repo.NextForItem(ctx, itemID, now)
	if err != nil || b == nil {
		return nil, err
	}
	return &item.BookingRef{ID: b.ID, BookerID: b.BookerID}, nil
}

func (v *ItemViews) HasFinished(ctx context.Context, bookerID, itemID string, before time.Time) (bool, error) {
	return v.repo.ExistsFinished(ctx, bookerID, itemID, before)
}

package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)

	// UpdateStatus flips the booking status only when the current status
	// still equals from. It reports whether a row was updated; false means
	// a concurrent decision got there first.
	UpdateStatus(ctx context.Context, id string, from, to Status) (bool, error)

	ListByBooker(ctx context.Context, bookerID string, state State, now time.Time, limit, offset int) ([]*Booking, error)
	ListByOwner(ctx context.Context, ownerID string, state State, now time.Time, limit, offset int) ([]*Booking, error)

	// ExistsFinished reports whether the booker has at least one booking on
	// the item that ended before the given instant.
	ExistsFinished(ctx context.Context, bookerID, itemID string, before time.Time) (bool, error)

	// LastForItem returns the latest non-rejected booking started before now,
	// NextForItem the earliest one starting after now. Both return nil when
	// there is none.
	LastForItem(ctx context.Context, itemID string, now time.Time) (*Booking, error)
	NextForItem(ctx context.Context, itemID string, now time.Time) (*Booking, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("item_id", "booker_id", "start_time", "end_time", "status").
		Values(b.ItemID, b.BookerID, b.Start, b.End, b.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func bookingSelect() squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return psql.Select(
		"b.id", "b.item_id", "i.name", "b.booker_id", "u.name", "i.owner_id",
		"b.start_time", "b.end_time", "b.status", "b.created_at", "b.updated_at",
	).
		From("public.bookings b").
		Join("public.items i ON b.item_id = i.id").
		Join("public.users u ON b.booker_id = u.id")
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	err := row.Scan(
		&b.ID, &b.ItemID, &b.ItemName, &b.BookerID, &b.BookerName, &b.OwnerID,
		&b.Start, &b.End, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query, args, err := bookingSelect().
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, from, to Status) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", to).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build update booking status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update booking status failed: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}

// applyState translates a State bucket into SQL conditions. The conditions
// mirror State.Matches and must use the same now for the whole query.
func applyState(q squirrel.SelectBuilder, state State, now time.Time) squirrel.SelectBuilder {
	switch state {
	case StateCurrent:
		q = q.Where(squirrel.Lt{"b.start_time": now}).Where(squirrel.Gt{"b.end_time": now})
	case StatePast:
		q = q.Where(squirrel.Lt{"b.end_time": now})
	case StateFuture:
		q = q.Where(squirrel.Gt{"b.start_time": now})
	case StateWaiting:
		q = q.Where(squirrel.Eq{"b.status": StatusWaiting})
	case StateRejected:
		q = q.Where(squirrel.Eq{"b.status": StatusRejected})
	}
	return q
}

func (r *pgxRepository) list(ctx context.Context, q squirrel.SelectBuilder, state State, now time.Time, limit, offset int) ([]*Booking, error) {
	q = applyState(q, state, now).
		OrderBy("b.start_time DESC", "b.id ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, rows.Err()
}

func (r *pgxRepository) ListByBooker(ctx context.Context, bookerID string, state State, now time.Time, limit, offset int) ([]*Booking, error) {
	return r.list(ctx, bookingSelect().Where(squirrel.Eq{"b.booker_id": bookerID}), state, now, limit, offset)
}

func (r *pgxRepository) ListByOwner(ctx context.Context, ownerID string, state State, now time.Time, limit, offset int) ([]*Booking, error) {
	return r.list(ctx, bookingSelect().Where(squirrel.Eq{"i.owner_id": ownerID}), state, now, limit, offset)
}

func (r *pgxRepository) ExistsFinished(ctx context.Context, bookerID, itemID string, before time.Time) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sub, args, err := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"booker_id": bookerID, "item_id": itemID}).
		Where(squirrel.Lt{"end_time": before}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build finished booking query failed: %w", err)
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, "SELECT EXISTS ("+sub+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check finished booking failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) LastForItem(ctx context.Context, itemID string, now time.Time) (*Booking, error) {
	q := bookingSelect().
		Where(squirrel.Eq{"b.item_id": itemID}).
		Where(squirrel.NotEq{"b.status": StatusRejected}).
		Where(squirrel.Lt{"b.start_time": now}).
		OrderBy("b.start_time DESC").
		Limit(1)
	return r.one(ctx, q)
}

func (r *pgxRepository) NextForItem(ctx context.Context, itemID string, now time.Time) (*Booking, error) {
	q := bookingSelect().
		Where(squirrel.Eq{"b.item_id": itemID}).
		Where(squirrel.NotEq{"b.status": StatusRejected}).
		Where(squirrel.Gt{"b.start_time": now}).
		OrderBy("b.start_time ASC").
		Limit(1)
	return r.one(ctx, q)
}

func (r *pgxRepository) one(ctx context.Context, q squirrel.SelectBuilder) (*Booking, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

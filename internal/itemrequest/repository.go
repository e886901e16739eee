package itemrequest

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, req *ItemRequest) error
	GetByID(ctx context.Context, id string) (*ItemRequest, error)
	Exists(ctx context.Context, id string) (bool, error)
	ListByRequester(ctx context.Context, requesterID string) ([]*ItemRequest, error)
	ListOthers(ctx context.Context, excludeUserID string, limit, offset int) ([]*ItemRequest, error)

	// ListAnswers returns the items referencing each of the given requests,
	// grouped by request id.
	ListAnswers(ctx context.Context, requestIDs []string) (map[string][]ItemAnswer, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func (r *pgxRepository) Create(ctx context.Context, req *ItemRequest) error {
	query, args, err := psql.Insert("public.requests").
		Columns("description", "requester_id").
		Values(req.Description, req.RequesterID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create request query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&req.ID, &req.CreatedAt); err != nil {
		return fmt.Errorf("create request failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*ItemRequest, error) {
	query, args, err := psql.Select("id", "description", "requester_id", "created_at").
		From("public.requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get request query failed: %w", err)
	}

	var req ItemRequest
	err = r.pool.QueryRow(ctx, query, args...).
		Scan(&req.ID, &req.Description, &req.RequesterID, &req.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get request failed: %w", err)
	}
	return &req, nil
}

func (r *pgxRepository) Exists(ctx context.Context, id string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM public.requests WHERE id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check request exists failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) ListByRequester(ctx context.Context, requesterID string) ([]*ItemRequest, error) {
	q := psql.Select("id", "description", "requester_id", "created_at").
		From("public.requests").
		Where(squirrel.Eq{"requester_id": requesterID}).
		OrderBy("created_at DESC")
	return r.queryRequests(ctx, q)
}

func (r *pgxRepository) ListOthers(ctx context.Context, excludeUserID string, limit, offset int) ([]*ItemRequest, error) {
	q := psql.Select("id", "description", "requester_id", "created_at").
		From("public.requests").
		Where(squirrel.NotEq{"requester_id": excludeUserID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))
	return r.queryRequests(ctx, q)
}

func (r *pgxRepository) queryRequests(ctx context.Context, q squirrel.SelectBuilder) ([]*ItemRequest, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list requests query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list requests failed: %w", err)
	}
	defer rows.Close()

	var requests []*ItemRequest
	for rows.Next() {
		var req ItemRequest
		if err := rows.Scan(&req.ID, &req.Description, &req.RequesterID, &req.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan request failed: %w", err)
		}
		requests = append(requests, &req)
	}

	return requests, rows.Err()
}

func (r *pgxRepository) ListAnswers(ctx context.Context, requestIDs []string) (map[string][]ItemAnswer, error) {
	if len(requestIDs) == 0 {
		return map[string][]ItemAnswer{}, nil
	}

	query, args, err := psql.Select("id", "name", "description", "available", "owner_id", "request_id").
		From("public.items").
		Where(squirrel.Eq{"request_id": requestIDs}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list answers query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list answers failed: %w", err)
	}
	defer rows.Close()

	answers := make(map[string][]ItemAnswer, len(requestIDs))
	for rows.Next() {
		var a ItemAnswer
		var requestID string
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.Available, &a.OwnerID, &requestID); err != nil {
			return nil, fmt.Errorf("scan answer failed: %w", err)
		}
		answers[requestID] = append(answers[requestID], a)
	}

	return answers, rows.Err()
}

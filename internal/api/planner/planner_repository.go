package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/jiamizhongshifu/xiaozhou/app/observability/metrics"
	"github.com/jiamizhongshifu/xiaozhou/internal/types"
)

var _ Repository = (*RepositoryImpl)(nil)

// Repository keeps the history of generated itineraries.
type Repository interface {
	SaveItinerary(ctx context.Context, it types.StoredItinerary) error
	GetItinerary(ctx context.Context, id uuid.UUID) (*types.StoredItinerary, error)
	ListItineraries(ctx context.Context, sessionID *uuid.UUID, limit, offset int) ([]types.StoredItinerary, int, error)
}

// DB is the subset of pgxpool.Pool the repository needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type RepositoryImpl struct {
	logger *slog.Logger
	db     DB
}

func NewRepository(db DB, logger *slog.Logger) *RepositoryImpl {
	return &RepositoryImpl{
		logger: logger,
		db:     db,
	}
}

func observeQuery(ctx context.Context, op string, start time.Time, err error) {
	attrs := metric.WithAttributes(attribute.String("db.operation", op))
	m := metrics.Get()
	m.DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds(), attrs)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		m.DbQueryErrorsTotal.Add(ctx, 1, attrs)
	}
}

func (r *RepositoryImpl) SaveItinerary(ctx context.Context, it types.StoredItinerary) (err error) {
	defer func(start time.Time) { observeQuery(ctx, "insert_itinerary", start, err) }(time.Now())

	params, err := json.Marshal(it.Params)
	if err != nil {
		return fmt.Errorf("failed to encode trip parameters: %w", err)
	}
	issues, err := json.Marshal(nonNil(it.Issues))
	if err != nil {
		return fmt.Errorf("failed to encode issues: %w", err)
	}
	days, err := json.Marshal(nonNil(it.Days))
	if err != nil {
		return fmt.Errorf("failed to encode days: %w", err)
	}

	query := `
        INSERT INTO itineraries (
            id, session_id, destination, duration, trip_parameters, source,
            content, was_completed, issues, days, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
    `
	if _, err = r.db.Exec(ctx, query,
		it.ID, it.SessionID, it.Destination, it.Duration, params, it.Source,
		it.Content, it.WasCompleted, issues, days, it.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert itinerary: %w", err)
	}
	return nil
}

const selectItinerary = `
        SELECT id, session_id, destination, duration, trip_parameters, source,
               content, was_completed, issues, days, created_at
        FROM itineraries
    `

func (r *RepositoryImpl) GetItinerary(ctx context.Context, id uuid.UUID) (_ *types.StoredItinerary, err error) {
	defer func(start time.Time) { observeQuery(ctx, "get_itinerary", start, err) }(time.Now())

	it, err := scanItinerary(r.db.QueryRow(ctx, selectItinerary+" WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("itinerary %s: %w", id, types.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get itinerary: %w", err)
	}
	return it, nil
}

func (r *RepositoryImpl) ListItineraries(ctx context.Context, sessionID *uuid.UUID, limit, offset int) (_ []types.StoredItinerary, total int, err error) {
	defer func(start time.Time) { observeQuery(ctx, "list_itineraries", start, err) }(time.Now())

	filter := " WHERE ($1::uuid IS NULL OR session_id = $1)"
	if err = r.db.QueryRow(ctx, "SELECT COUNT(*) FROM itineraries"+filter, sessionID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count itineraries: %w", err)
	}

	rows, err := r.db.Query(ctx, selectItinerary+filter+" ORDER BY created_at DESC LIMIT $2 OFFSET $3", sessionID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list itineraries: %w", err)
	}
	defer rows.Close()

	items := make([]types.StoredItinerary, 0, limit)
	for rows.Next() {
		it, err := scanItinerary(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan itinerary: %w", err)
		}
		items = append(items, *it)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating itineraries: %w", err)
	}
	return items, total, nil
}

func scanItinerary(row pgx.Row) (*types.StoredItinerary, error) {
	var (
		it                   types.StoredItinerary
		params, issues, days []byte
	)
	if err := row.Scan(
		&it.ID, &it.SessionID, &it.Destination, &it.Duration, &params, &it.Source,
		&it.Content, &it.WasCompleted, &issues, &days, &it.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(params, &it.Params); err != nil {
		return nil, fmt.Errorf("failed to decode trip parameters: %w", err)
	}
	if err := json.Unmarshal(issues, &it.Issues); err != nil {
		return nil, fmt.Errorf("failed to decode issues: %w", err)
	}
	if err := json.Unmarshal(days, &it.Days); err != nil {
		return nil, fmt.Errorf("failed to decode days: %w", err)
	}
	return &it, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

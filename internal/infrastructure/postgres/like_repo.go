package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/max3tmk/ImageGallery/activity/internal/domain/activity"
)

type LikeEventRepository struct {
	db      DBTX
	timeout time.Duration
}

func NewLikeEventRepository(db DBTX, timeout time.Duration) *LikeEventRepository {
	return &LikeEventRepository{db: db, timeout: timeout}
}

func (r *LikeEventRepository) Save(ctx context.Context, e activity.LikeEvent) (activity.LikeEvent, error) {
	const sql = `
		INSERT INTO like_events (id, user_id, image_id, is_added, occurred_at, event_type)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	e = e.WithDefaults()
	e.Timestamp = e.Timestamp.UTC().Truncate(time.Microsecond)

	if _, err := r.db.Exec(ctx, sql, e.ID, e.UserID, e.ImageID, e.IsAdded, e.Timestamp, e.EventType); err != nil {
		return activity.LikeEvent{}, fmt.Errorf("insert like event: %w", err)
	}
	return e, nil
}

func (r *LikeEventRepository) FindByID(ctx context.Context, id uuid.UUID) (activity.LikeEvent, error) {
	const sql = `
		SELECT id, user_id, image_id, is_added, occurred_at, event_type
		FROM like_events
		WHERE id = $1
	`

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	e, err := scanLike(r.db.QueryRow(ctx, sql, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return activity.LikeEvent{}, activity.ErrNotFound
	}
	if err != nil {
		return activity.LikeEvent{}, fmt.Errorf("get like event by id: %w", err)
	}
	return e, nil
}

func (r *LikeEventRepository) FindAll(ctx context.Context) ([]activity.LikeEvent, error) {
	const sql = `
		SELECT id, user_id, image_id, is_added, occurred_at, event_type
		FROM like_events
	`

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("query like events: %w", err)
	}
	defer rows.Close()

	var events []activity.LikeEvent
	for rows.Next() {
		e, err := scanLike(rows)
		if err != nil {
			return nil, fmt.Errorf("scan like event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate like events: %w", err)
	}
	return events, nil
}

func scanLike(row pgx.Row) (activity.LikeEvent, error) {
	var e activity.LikeEvent
	if err := row.Scan(&e.ID, &e.UserID, &e.ImageID, &e.IsAdded, &e.Timestamp, &e.EventType); err != nil {
		return activity.LikeEvent{}, err
	}
	e.Timestamp = e.Timestamp.UTC()
	return e, nil
}

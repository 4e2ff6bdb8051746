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

type CommentEventRepository struct {
	db      DBTX
	timeout time.Duration
}

func NewCommentEventRepository(db DBTX, timeout time.Duration) *CommentEventRepository {
	return &CommentEventRepository{db: db, timeout: timeout}
}

func (r *CommentEventRepository) Save(ctx context.Context, e activity.CommentEvent) (activity.CommentEvent, error) {
	const sql = `
		INSERT INTO comment_events (id, user_id, image_id, comment_id, is_created, content, occurred_at, event_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	e = e.WithDefaults()
	e.Timestamp = e.Timestamp.UTC().Truncate(time.Microsecond)

	_, err := r.db.Exec(ctx, sql,
		e.ID, e.UserID, e.ImageID, e.CommentID,
		e.IsCreated, e.Content, e.Timestamp, e.EventType)
	if err != nil {
		return activity.CommentEvent{}, fmt.Errorf("insert comment event: %w", err)
	}
	return e, nil
}

func (r *CommentEventRepository) FindByID(ctx context.Context, id uuid.UUID) (activity.CommentEvent, error) {
	const sql = `
		SELECT id, user_id, image_id, comment_id, is_created, content, occurred_at, event_type
		FROM comment_events
		WHERE id = $1
	`

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	e, err := scanComment(r.db.QueryRow(ctx, sql, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return activity.CommentEvent{}, activity.ErrNotFound
	}
	if err != nil {
		return activity.CommentEvent{}, fmt.Errorf("get comment event by id: %w", err)
	}
	return e, nil
}

func (r *CommentEventRepository) FindAll(ctx context.Context) ([]activity.CommentEvent, error) {
	const sql = `
		SELECT id, user_id, image_id, comment_id, is_created, content, occurred_at, event_type
		FROM comment_events
	`

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("query comment events: %w", err)
	}
	defer rows.Close()

	var events []activity.CommentEvent
	for rows.Next() {
		e, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comment events: %w", err)
	}
	return events, nil
}

func scanComment(row pgx.Row) (activity.CommentEvent, error) {
	var e activity.CommentEvent
	err := row.Scan(&e.ID, &e.UserID, &e.ImageID, &e.CommentID, &e.IsCreated, &e.Content, &e.Timestamp, &e.EventType)
	if err != nil {
		return activity.CommentEvent{}, err
	}
	e.Timestamp = e.Timestamp.UTC()
	return e, nil
}

package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/turfvote/internal/core/domain"
	"github.com/vncsmyrnk/turfvote/internal/core/ports"
)

type eventRepository struct {
	db *sql.DB
}

// NewEventRepository stores each event as a JSONB document. Name, date and
// status are copied into columns for listing and retention queries.
func NewEventRepository(db *sql.DB) ports.EventRepository {
	return &eventRepository{
		db: db,
	}
}

func (r *eventRepository) Save(ctx context.Context, event *domain.Event) error {
	document, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	query := `
		INSERT INTO events (id, name, event_date, status, document, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
			event_date = EXCLUDED.event_date,
			status = EXCLUDED.status,
			document = EXCLUDED.document,
			updated_at = NOW()
	`
	_, err = r.db.ExecContext(ctx, query,
		event.ID, event.Name, event.Date, event.Status, string(document), event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save event: %w", err)
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	query := `SELECT document FROM events WHERE id = $1`

	var document []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(&document)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return decodeEvent(document)
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	query := `SELECT document FROM events ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		var document []byte
		if err := rows.Scan(&document); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		event, err := decodeEvent(document)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}
	return events, nil
}

func (r *eventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if n == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func decodeEvent(document []byte) (*domain.Event, error) {
	var event domain.Event
	if err := json.Unmarshal(document, &event); err != nil {
		return nil, fmt.Errorf("failed to decode event: %w", err)
	}
	if event.Votes == nil {
		event.Votes = []domain.Vote{}
	}
	return &event, nil
}

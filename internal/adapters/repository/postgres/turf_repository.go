package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/turfvote/internal/core/domain"
	"github.com/vncsmyrnk/turfvote/internal/core/ports"
)

type turfRepository struct {
	db *sql.DB
}

func NewTurfRepository(db *sql.DB) ports.TurfRepository {
	return &turfRepository{db: db}
}

func (r *turfRepository) Save(ctx context.Context, turf *domain.Turf) error {
	query := `
		INSERT INTO turfs (id, name, default_min_players, default_max_players, default_price, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
			default_min_players = EXCLUDED.default_min_players,
			default_max_players = EXCLUDED.default_max_players,
			default_price = EXCLUDED.default_price,
			active = EXCLUDED.active
	`
	_, err := r.db.ExecContext(ctx, query,
		turf.ID, turf.Name, turf.DefaultMinPlayers, turf.DefaultMaxPlayers, turf.DefaultPrice, turf.Active, turf.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save turf: %w", err)
	}
	return nil
}

func (r *turfRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Turf, error) {
	query := `
		SELECT id, name, default_min_players, default_max_players, default_price, active, created_at
		FROM turfs
		WHERE id = $1
	`
	turf, err := scanTurf(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTurfNotFound
		}
		return nil, fmt.Errorf("failed to get turf: %w", err)
	}
	return turf, nil
}

func (r *turfRepository) List(ctx context.Context) ([]*domain.Turf, error) {
	query := `
		SELECT id, name, default_min_players, default_max_players, default_price, active, created_at
		FROM turfs
		ORDER BY created_at ASC, name ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list turfs: %w", err)
	}
	defer rows.Close()

	turfs := []*domain.Turf{}
	for rows.Next() {
		turf, err := scanTurf(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan turf: %w", err)
		}
		turfs = append(turfs, turf)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating turfs: %w", err)
	}
	return turfs, nil
}

func (r *turfRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM turfs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete turf: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrTurfNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTurf(row rowScanner) (*domain.Turf, error) {
	var turf domain.Turf
	err := row.Scan(
		&turf.ID, &turf.Name, &turf.DefaultMinPlayers, &turf.DefaultMaxPlayers,
		&turf.DefaultPrice, &turf.Active, &turf.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &turf, nil
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vncsmyrnk/turfvote/internal/core/domain"
	"github.com/vncsmyrnk/turfvote/internal/core/ports"
)

type bindingRepository struct {
	db *sql.DB
}

func NewBindingRepository(db *sql.DB) ports.BindingRepository {
	return &bindingRepository{db: db}
}

func (r *bindingRepository) Bind(ctx context.Context, binding domain.PhoneBinding) error {
	query := `
		INSERT INTO phone_bindings (phone, event_id, bound_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (phone) DO UPDATE
		SET event_id = EXCLUDED.event_id, bound_at = EXCLUDED.bound_at
	`
	_, err := r.db.ExecContext(ctx, query, binding.Phone, binding.EventID, binding.BoundAt)
	if err != nil {
		return fmt.Errorf("failed to bind phone: %w", err)
	}
	return nil
}

func (r *bindingRepository) Lookup(ctx context.Context, phone string) (*domain.PhoneBinding, error) {
	query := `SELECT phone, event_id, bound_at FROM phone_bindings WHERE phone = $1`

	var binding domain.PhoneBinding
	err := r.db.QueryRowContext(ctx, query, phone).Scan(&binding.Phone, &binding.EventID, &binding.BoundAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBindingNotFound
		}
		return nil, fmt.Errorf("failed to look up phone binding: %w", err)
	}
	return &binding, nil
}

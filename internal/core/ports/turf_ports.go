package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vncsmyrnk/turfvote/internal/core/domain"
)

type TurfRepository interface {
	Save(ctx context.Context, turf *domain.Turf) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Turf, error)
	List(ctx context.Context) ([]*domain.Turf, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type UpdateTurfInput struct {
	Name              *string
	DefaultMinPlayers *int
	DefaultMaxPlayers *int
	DefaultPrice      *decimal.Decimal
	Active            *bool
}

type TurfService interface {
	List(ctx context.Context) ([]*domain.Turf, error)
	Add(ctx context.Context, name string) (*domain.Turf, error)
	BulkAdd(ctx context.Context, count int, prefix string) ([]*domain.Turf, error)
	Update(ctx context.Context, id string, input UpdateTurfInput) (*domain.Turf, error)
	Delete(ctx context.Context, id string, confirm bool) error
}

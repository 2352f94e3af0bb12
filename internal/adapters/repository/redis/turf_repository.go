package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/vncsmyrnk/turfvote/internal/core/domain"
	"github.com/vncsmyrnk/turfvote/internal/core/ports"
)

type turfRepository struct {
	client redis.Cmdable
}

// NewTurfRepository keeps the whole catalog in a single hash keyed by turf id.
func NewTurfRepository(client redis.Cmdable) ports.TurfRepository {
	return &turfRepository{client: client}
}

func (r *turfRepository) Save(ctx context.Context, turf *domain.Turf) error {
	doc, err := json.Marshal(turf)
	if err != nil {
		return fmt.Errorf("failed to encode turf: %w", err)
	}
	if err := r.client.HSet(ctx, turfsHashKey, turf.ID.String(), string(doc)).Err(); err != nil {
		return fmt.Errorf("failed to save turf: %w", err)
	}
	return nil
}

func (r *turfRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Turf, error) {
	doc, err := r.client.HGet(ctx, turfsHashKey, id.String()).Result()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrTurfNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get turf: %w", err)
	}
	return decodeTurf(doc)
}

func (r *turfRepository) List(ctx context.Context) ([]*domain.Turf, error) {
	docs, err := r.client.HVals(ctx, turfsHashKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list turfs: %w", err)
	}

	turfs := make([]*domain.Turf, 0, len(docs))
	for _, doc := range docs {
		turf, err := decodeTurf(doc)
		if err != nil {
			return nil, err
		}
		turfs = append(turfs, turf)
	}
	sort.Slice(turfs, func(i, j int) bool {
		if !turfs[i].CreatedAt.Equal(turfs[j].CreatedAt) {
			return turfs[i].CreatedAt.Before(turfs[j].CreatedAt)
		}
		return turfs[i].Name < turfs[j].Name
	})
	return turfs, nil
}

func (r *turfRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.client.HDel(ctx, turfsHashKey, id.String()).Result()
	if err != nil {
		return fmt.Errorf("failed to delete turf: %w", err)
	}
	if n == 0 {
		return domain.ErrTurfNotFound
	}
	return nil
}

func decodeTurf(doc string) (*domain.Turf, error) {
	var turf domain.Turf
	if err := json.Unmarshal([]byte(doc), &turf); err != nil {
		return nil, fmt.Errorf("failed to decode turf: %w", err)
	}
	return &turf, nil
}

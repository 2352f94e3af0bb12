package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/turfvote/internal/core/domain"
	"github.com/vncsmyrnk/turfvote/internal/core/ports"
)

type turfRepository struct {
	mu   sync.RWMutex
	docs map[uuid.UUID][]byte
}

func NewTurfRepository() ports.TurfRepository {
	return &turfRepository{docs: make(map[uuid.UUID][]byte)}
}

func (r *turfRepository) Save(ctx context.Context, turf *domain.Turf) error {
	doc, err := json.Marshal(turf)
	if err != nil {
		return fmt.Errorf("failed to encode turf: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[turf.ID] = doc
	return nil
}

func (r *turfRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Turf, error) {
	r.mu.RLock()
	doc, ok := r.docs[id]
	r.mu.RUnlock()
	if !ok {
		return nil, domain.ErrTurfNotFound
	}
	var turf domain.Turf
	if err := json.Unmarshal(doc, &turf); err != nil {
		return nil, fmt.Errorf("failed to decode turf: %w", err)
	}
	return &turf, nil
}

// List returns turfs oldest first, by name within the same instant.
func (r *turfRepository) List(ctx context.Context) ([]*domain.Turf, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	turfs := make([]*domain.Turf, 0, len(r.docs))
	for _, doc := range r.docs {
		var turf domain.Turf
		if err := json.Unmarshal(doc, &turf); err != nil {
			return nil, fmt.Errorf("failed to decode turf: %w", err)
		}
		turfs = append(turfs, &turf)
	}
	sort.Slice(turfs, func(i, j int) bool {
		if turfs[i].CreatedAt.Equal(turfs[j].CreatedAt) {
			return turfs[i].Name < turfs[j].Name
		}
		return turfs[i].CreatedAt.Before(turfs[j].CreatedAt)
	})
	return turfs, nil
}

func (r *turfRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return domain.ErrTurfNotFound
	}
	delete(r.docs, id)
	return nil
}

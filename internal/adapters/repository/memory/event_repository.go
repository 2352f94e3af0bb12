// Package memory keeps JSON documents in process memory. It backs local
// development and service tests; every read decodes a fresh copy so callers
// never share state with the store.
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

type eventRepository struct {
	mu   sync.RWMutex
	docs map[uuid.UUID][]byte
}

func NewEventRepository() ports.EventRepository {
	return &eventRepository{docs: make(map[uuid.UUID][]byte)}
}

func (r *eventRepository) Save(ctx context.Context, event *domain.Event) error {
	doc, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[event.ID] = doc
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	r.mu.RLock()
	doc, ok := r.docs[id]
	r.mu.RUnlock()
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	return decodeEvent(doc)
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := make([]*domain.Event, 0, len(r.docs))
	for _, doc := range r.docs {
		event, err := decodeEvent(doc)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].CreatedAt.Before(events[j].CreatedAt)
	})
	return events, nil
}

func (r *eventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return domain.ErrEventNotFound
	}
	delete(r.docs, id)
	return nil
}

func decodeEvent(doc []byte) (*domain.Event, error) {
	var event domain.Event
	if err := json.Unmarshal(doc, &event); err != nil {
		return nil, fmt.Errorf("failed to decode event: %w", err)
	}
	return &event, nil
}

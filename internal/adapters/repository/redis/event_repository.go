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

type eventRepository struct {
	client redis.Cmdable
}

// NewEventRepository keeps one JSON value per event plus a set of all event
// ids for listing.
func NewEventRepository(client redis.Cmdable) ports.EventRepository {
	return &eventRepository{client: client}
}

func (r *eventRepository) Save(ctx context.Context, event *domain.Event) error {
	doc, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	id := event.ID.String()

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, eventKey(id), string(doc), 0)
		pipe.SAdd(ctx, eventsSetKey, id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save event: %w", err)
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	doc, err := r.client.Get(ctx, eventKey(id.String())).Result()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return decodeEvent(doc)
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	ids, err := r.client.SMembers(ctx, eventsSetKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list event ids: %w", err)
	}
	events := make([]*domain.Event, 0, len(ids))
	if len(ids) == 0 {
		return events, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = eventKey(id)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}

	for _, value := range values {
		// Set members can outlive their value if a delete was interrupted.
		doc, ok := value.(string)
		if !ok {
			continue
		}
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
	var del *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, eventKey(id.String()))
		pipe.SRem(ctx, eventsSetKey, id.String())
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if del.Val() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func decodeEvent(doc string) (*domain.Event, error) {
	var event domain.Event
	if err := json.Unmarshal([]byte(doc), &event); err != nil {
		return nil, fmt.Errorf("failed to decode event: %w", err)
	}
	if event.Votes == nil {
		event.Votes = []domain.Vote{}
	}
	return &event, nil
}

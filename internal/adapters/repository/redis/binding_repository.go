package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vncsmyrnk/turfvote/internal/core/domain"
	"github.com/vncsmyrnk/turfvote/internal/core/ports"
)

type bindingRepository struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewBindingRepository stores each binding under its own key so it expires
// after ttl; zero keeps bindings forever.
func NewBindingRepository(client redis.Cmdable, ttl time.Duration) ports.BindingRepository {
	return &bindingRepository{client: client, ttl: ttl}
}

func (r *bindingRepository) Bind(ctx context.Context, binding domain.PhoneBinding) error {
	doc, err := json.Marshal(binding)
	if err != nil {
		return fmt.Errorf("failed to encode binding: %w", err)
	}
	if err := r.client.Set(ctx, bindingKey(binding.Phone), string(doc), r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to bind phone: %w", err)
	}
	return nil
}

func (r *bindingRepository) Lookup(ctx context.Context, phone string) (*domain.PhoneBinding, error) {
	doc, err := r.client.Get(ctx, bindingKey(phone)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrBindingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up phone binding: %w", err)
	}

	var binding domain.PhoneBinding
	if err := json.Unmarshal([]byte(doc), &binding); err != nil {
		return nil, fmt.Errorf("failed to decode binding: %w", err)
	}
	return &binding, nil
}

package memory

import (
	"context"
	"sync"

	"github.com/vncsmyrnk/turfvote/internal/core/domain"
	"github.com/vncsmyrnk/turfvote/internal/core/ports"
)

type bindingRepository struct {
	mu       sync.RWMutex
	bindings map[string]domain.PhoneBinding
}

func NewBindingRepository() ports.BindingRepository {
	return &bindingRepository{bindings: make(map[string]domain.PhoneBinding)}
}

func (r *bindingRepository) Bind(ctx context.Context, binding domain.PhoneBinding) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings[binding.Phone] = binding
	return nil
}

func (r *bindingRepository) Lookup(ctx context.Context, phone string) (*domain.PhoneBinding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	binding, ok := r.bindings[phone]
	if !ok {
		return nil, domain.ErrBindingNotFound
	}
	return &binding, nil
}

// Package repository opens the storage backend selected in the configuration.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/vncsmyrnk/turfvote/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/turfvote/internal/adapters/repository/postgres"
	redisstore "github.com/vncsmyrnk/turfvote/internal/adapters/repository/redis"
	"github.com/vncsmyrnk/turfvote/internal/config"
	"github.com/vncsmyrnk/turfvote/internal/core/ports"
)

type Stores struct {
	Events   ports.EventRepository
	Turfs    ports.TurfRepository
	Bindings ports.BindingRepository

	close func() error
}

// Close releases the underlying connection, if any.
func (s *Stores) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

func Open(ctx context.Context, cfg *config.Config) (*Stores, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		db, err := sql.Open("postgres", cfg.Postgres.ConnString())
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		return &Stores{
			Events:   postgres.NewEventRepository(db),
			Turfs:    postgres.NewTurfRepository(db),
			Bindings: postgres.NewBindingRepository(db),
			close:    db.Close,
		}, nil

	case config.DriverRedis:
		client, err := redisstore.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return &Stores{
			Events:   redisstore.NewEventRepository(client),
			Turfs:    redisstore.NewTurfRepository(client),
			Bindings: redisstore.NewBindingRepository(client, redisstore.BindingTTL),
			close:    client.Close,
		}, nil

	case config.DriverMemory:
		return &Stores{
			Events:   memory.NewEventRepository(),
			Turfs:    memory.NewTurfRepository(),
			Bindings: memory.NewBindingRepository(),
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

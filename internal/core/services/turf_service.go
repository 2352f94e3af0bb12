package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/turfvote/internal/core/domain"
	"github.com/vncsmyrnk/turfvote/internal/core/ports"
)

type turfService struct {
	repo   ports.TurfRepository
	logger *slog.Logger
	now    func() time.Time
}

func NewTurfService(repo ports.TurfRepository, logger *slog.Logger) ports.TurfService {
	return &turfService{
		repo:   repo,
		logger: resolveLogger(logger),
		now:    time.Now,
	}
}

func (s *turfService) List(ctx context.Context) ([]*domain.Turf, error) {
	return s.repo.List(ctx)
}

func (s *turfService) Add(ctx context.Context, name string) (*domain.Turf, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: turf name is required", domain.ErrInvalidInput)
	}
	turf := s.newTurf(name)
	if err := s.repo.Save(ctx, turf); err != nil {
		return nil, fmt.Errorf("failed to save turf: %w", err)
	}
	return turf, nil
}

// BulkAdd creates count turfs named "<prefix> 1" to "<prefix> <count>".
func (s *turfService) BulkAdd(ctx context.Context, count int, prefix string) ([]*domain.Turf, error) {
	if count < 1 || count > domain.MaxBulkTurfs {
		return nil, fmt.Errorf("%w: count must be between 1 and %d", domain.ErrInvalidInput, domain.MaxBulkTurfs)
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil, fmt.Errorf("%w: prefix is required", domain.ErrInvalidInput)
	}

	turfs := make([]*domain.Turf, 0, count)
	for i := 1; i <= count; i++ {
		turf := s.newTurf(fmt.Sprintf("%s %d", prefix, i))
		if err := s.repo.Save(ctx, turf); err != nil {
			return turfs, fmt.Errorf("failed to save turf %q: %w", turf.Name, err)
		}
		turfs = append(turfs, turf)
	}

	s.logger.Info("turfs added", "count", count, "prefix", prefix)
	return turfs, nil
}

func (s *turfService) Update(ctx context.Context, id string, input ports.UpdateTurfInput) (*domain.Turf, error) {
	turfID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: turf id", domain.ErrInvalidInput)
	}
	turf, err := s.repo.GetByID(ctx, turfID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: turf name is required", domain.ErrInvalidInput)
		}
		turf.Name = name
	}
	if input.DefaultMinPlayers != nil {
		turf.DefaultMinPlayers = *input.DefaultMinPlayers
	}
	if input.DefaultMaxPlayers != nil {
		turf.DefaultMaxPlayers = *input.DefaultMaxPlayers
	}
	if input.DefaultPrice != nil {
		if input.DefaultPrice.IsNegative() {
			return nil, fmt.Errorf("%w: price cannot be negative", domain.ErrInvalidInput)
		}
		turf.DefaultPrice = *input.DefaultPrice
	}
	if input.Active != nil {
		turf.Active = *input.Active
	}
	if turf.DefaultMinPlayers < 1 || turf.DefaultMaxPlayers < turf.DefaultMinPlayers {
		return nil, fmt.Errorf("%w: players must satisfy 1 <= min <= max", domain.ErrInvalidInput)
	}

	if err := s.repo.Save(ctx, turf); err != nil {
		return nil, fmt.Errorf("failed to save turf: %w", err)
	}
	return turf, nil
}

func (s *turfService) Delete(ctx context.Context, id string, confirm bool) error {
	turfID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: turf id", domain.ErrInvalidInput)
	}
	if _, err := s.repo.GetByID(ctx, turfID); err != nil {
		return err
	}
	if !confirm {
		return fmt.Errorf("%w: deleting a turf removes it from event creation", domain.ErrConfirmationRequired)
	}
	return s.repo.Delete(ctx, turfID)
}

func (s *turfService) newTurf(name string) *domain.Turf {
	return &domain.Turf{
		ID:                uuid.New(),
		Name:              name,
		DefaultMinPlayers: domain.DefaultMinPlayers,
		DefaultMaxPlayers: domain.DefaultMaxPlayers,
		DefaultPrice:      domain.DefaultTurfPrice,
		Active:            true,
		CreatedAt:         s.now(),
	}
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/turfvote/internal/core/ports"
	"github.com/vncsmyrnk/turfvote/internal/metrics"
)

type retentionService struct {
	repo   ports.EventRepository
	period time.Duration
	logger *slog.Logger
	now    func() time.Time
}

// NewRetentionService deletes events once period has passed since the
// event date.
func NewRetentionService(repo ports.EventRepository, period time.Duration, logger *slog.Logger) ports.RetentionService {
	return &retentionService{
		repo:   repo,
		period: period,
		logger: resolveLogger(logger),
		now:    time.Now,
	}
}

func (s *retentionService) PurgeExpired(ctx context.Context) (int, error) {
	events, err := s.repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch all events: %w", err)
	}

	cutoff := s.now().Add(-s.period)
	var expired []uuid.UUID
	for _, event := range events {
		day, err := event.Day()
		if err != nil {
			s.logger.Warn("skipping event with unreadable date", "event_id", event.ID, "date", event.Date)
			continue
		}
		if day.Before(cutoff) {
			expired = append(expired, event.ID)
		}
	}

	var wg sync.WaitGroup
	errChan := make(chan error, len(expired))

	for _, id := range expired {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.repo.Delete(ctx, id); err != nil {
				errChan <- fmt.Errorf("failed to delete event %s: %w", id, err)
			}
		}()
	}

	wg.Wait()
	close(errChan)

	failed := 0
	var firstErr error
	for err := range errChan {
		failed++
		if firstErr == nil {
			firstErr = err
		}
	}

	purged := len(expired) - failed
	metrics.ObservePurged(purged)
	s.logger.Info("retention pass complete", "purged", purged, "failed", failed)
	return purged, firstErr
}

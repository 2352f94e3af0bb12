package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/vncsmyrnk/turfvote/internal/core/domain"
	"github.com/vncsmyrnk/turfvote/internal/core/ports"
	"github.com/vncsmyrnk/turfvote/internal/metrics"
)

type notificationService struct {
	events      ports.EventRepository
	bindings    ports.BindingRepository
	notifier    ports.Notifier
	limiter     *rate.Limiter
	countryCode string
	logger      *slog.Logger
	now         func() time.Time
}

// NewNotificationService sends at most one message per interval; a zero
// interval disables pacing.
func NewNotificationService(
	events ports.EventRepository,
	bindings ports.BindingRepository,
	notifier ports.Notifier,
	interval time.Duration,
	countryCode string,
	logger *slog.Logger,
) ports.NotificationService {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &notificationService{
		events:      events,
		bindings:    bindings,
		notifier:    notifier,
		limiter:     rate.NewLimiter(limit, 1),
		countryCode: countryCode,
		logger:      resolveLogger(logger),
		now:         time.Now,
	}
}

type recipient struct {
	name   string
	phone  string
	kind   domain.DeliveryKind
	reason domain.DeclineReason
}

func (s *notificationService) NotifyResolution(ctx context.Context, eventID string) (*domain.DeliveryReport, error) {
	event, err := s.load(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.Status != domain.StatusClosed || event.Resolution == nil {
		return nil, domain.ErrEventNotClosed
	}
	res := event.Resolution
	chosen, ok := event.Option(res.OptionID)
	if !ok {
		return nil, domain.ErrOptionNotFound
	}

	phones := make(map[string]string, len(event.Votes))
	for _, v := range event.Votes {
		phones[v.VoterID] = v.Phone
	}

	report := &domain.DeliveryReport{Skipped: []string{}, Results: []domain.DeliveryResult{}}
	var recipients []recipient
	add := func(ps []domain.Placement, kind domain.DeliveryKind, reason domain.DeclineReason) {
		for _, p := range ps {
			phone := phones[p.VoterID]
			if phone == "" {
				report.Skipped = append(report.Skipped, p.Name)
				continue
			}
			recipients = append(recipients, recipient{name: p.Name, phone: phone, kind: kind, reason: reason})
		}
	}
	add(res.Confirmed, domain.DeliveryConfirmation, "")
	add(res.Waitlisted, domain.DeliveryDecline, domain.DeclineFull)
	add(res.Declined, domain.DeliveryDecline, domain.DeclineDifferentTime)

	confirmation := domain.Confirmation{
		EventName:      event.Name,
		EventDate:      event.Date,
		TurfName:       chosen.TurfName,
		StartTime:      chosen.StartTime,
		EndTime:        chosen.EndTime,
		PricePerPlayer: event.PricePerPlayer,
		Notes:          event.Notes,
	}

	s.deliver(ctx, report, recipients, func(ctx context.Context, r recipient) (string, error) {
		if r.kind == domain.DeliveryConfirmation {
			return s.notifier.NotifySuccess(ctx, r.phone, confirmation)
		}
		return s.notifier.NotifyDecline(ctx, r.phone, event.Name, r.reason)
	}, nil)

	s.logger.Info("resolution notifications sent",
		"event_id", event.ID,
		"sent", report.Sent,
		"failed", report.Failed,
		"skipped", len(report.Skipped),
	)
	return report, nil
}

func (s *notificationService) Invite(ctx context.Context, eventID string, phones []string) (*domain.DeliveryReport, error) {
	if len(phones) == 0 {
		return nil, fmt.Errorf("%w: at least one phone number is required", domain.ErrInvalidInput)
	}
	event, err := s.load(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.Status != domain.StatusActive {
		return nil, domain.ErrEventClosed
	}
	if len(event.Options) > domain.MaxSimpleOptions {
		return nil, fmt.Errorf("%w: reply voting supports at most %d options", domain.ErrInvalidInput, domain.MaxSimpleOptions)
	}

	report := &domain.DeliveryReport{Skipped: []string{}, Results: []domain.DeliveryResult{}}
	var recipients []recipient
	seen := make(map[string]struct{}, len(phones))
	for _, raw := range phones {
		phone, err := domain.FormatPhoneNumber(raw, s.countryCode)
		if err != nil {
			report.Skipped = append(report.Skipped, raw)
			continue
		}
		if _, dup := seen[phone]; dup {
			continue
		}
		seen[phone] = struct{}{}
		recipients = append(recipients, recipient{phone: phone, kind: domain.DeliveryInvitation})
	}

	invitation := domain.Invitation{
		EventName:      event.Name,
		EventDate:      event.Date,
		Sport:          event.Sport,
		Options:        event.Options,
		PricePerPlayer: event.PricePerPlayer,
		Notes:          event.Notes,
	}

	send := func(ctx context.Context, r recipient) (string, error) {
		return s.notifier.SendInvitation(ctx, r.phone, invitation)
	}
	bind := func(ctx context.Context, r recipient) error {
		return s.bindings.Bind(ctx, domain.PhoneBinding{Phone: r.phone, EventID: event.ID, BoundAt: s.now()})
	}
	s.deliver(ctx, report, recipients, send, bind)

	s.logger.Info("invitations sent",
		"event_id", event.ID,
		"sent", report.Sent,
		"failed", report.Failed,
		"skipped", len(report.Skipped),
	)
	return report, nil
}

// deliver sends to each recipient in order. A failed send is recorded and
// the batch continues; once ctx is done the rest are recorded as failed.
// after, when set, runs for every delivered message and its error is
// reported without undoing the delivery.
func (s *notificationService) deliver(
	ctx context.Context,
	report *domain.DeliveryReport,
	recipients []recipient,
	send func(context.Context, recipient) (string, error),
	after func(context.Context, recipient) error,
) {
	for _, r := range recipients {
		result := domain.DeliveryResult{Name: r.name, Phone: r.phone, Kind: r.kind, Reason: r.reason}

		ref, err := s.sendPaced(ctx, r, send)
		if err != nil {
			err = fmt.Errorf("%w: %w", domain.ErrDeliveryFailure, err)
			result.Error = err.Error()
			s.logger.Warn("delivery failed", "phone", r.phone, "kind", r.kind, "error", err)
		} else {
			result.Delivered = true
			result.Reference = ref
			if after != nil {
				if err := after(ctx, r); err != nil {
					result.BindingError = err.Error()
					s.logger.Error("failed to bind invited phone", "phone", r.phone, "reference", ref, "error", err)
				}
			}
		}
		metrics.ObserveDelivery(string(r.kind), result.Delivered)
		report.Add(result)
	}
}

func (s *notificationService) sendPaced(
	ctx context.Context,
	r recipient,
	send func(context.Context, recipient) (string, error),
) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return send(ctx, r)
}

func (s *notificationService) load(ctx context.Context, id string) (*domain.Event, error) {
	eventID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidEventID
	}
	return s.events.GetByID(ctx, eventID)
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/turfvote/internal/core/domain"
	"github.com/vncsmyrnk/turfvote/internal/core/ports"
	"github.com/vncsmyrnk/turfvote/internal/metrics"
)

type eventService struct {
	repo        ports.EventRepository
	countryCode string
	logger      *slog.Logger
	now         func() time.Time

	// mu serializes load-modify-save cycles within this process.
	mu sync.Mutex
}

// NewEventService builds the event service. countryCode is used to
// normalize phone numbers given without one.
func NewEventService(repo ports.EventRepository, countryCode string, logger *slog.Logger) ports.EventService {
	return &eventService{
		repo:        repo,
		countryCode: countryCode,
		logger:      resolveLogger(logger),
		now:         time.Now,
	}
}

func (s *eventService) Create(ctx context.Context, input ports.CreateEventInput) (*domain.Event, error) {
	if input.Generate != nil && len(input.Options) > 0 {
		return nil, fmt.Errorf("%w: give either options or a generate request", domain.ErrInvalidInput)
	}

	event := &domain.Event{
		ID:             uuid.New(),
		Name:           strings.TrimSpace(input.Name),
		Sport:          input.Sport,
		Date:           input.Date,
		PricePerPlayer: input.PricePerPlayer,
		Notes:          strings.TrimSpace(input.Notes),
		Votes:          []domain.Vote{},
		Status:         domain.StatusActive,
		CreatedAt:      s.now(),
	}
	if event.Sport == "" {
		event.Sport = domain.SportFootball
	}

	maxOptions := domain.MaxSimpleOptions
	if input.Generate != nil {
		options, err := domain.GenerateOptions(*input.Generate)
		if err != nil {
			return nil, err
		}
		event.Options = options
		maxOptions = domain.MaxGeneratedOptions
	} else {
		for _, opt := range input.Options {
			event.Options = append(event.Options, domain.Option{
				ID:         uuid.New(),
				TurfName:   strings.TrimSpace(opt.TurfName),
				StartTime:  opt.StartTime,
				EndTime:    opt.EndTime,
				MinPlayers: opt.MinPlayers,
				MaxPlayers: opt.MaxPlayers,
			})
		}
	}

	if err := event.Validate(maxOptions); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to save event: %w", err)
	}

	s.logger.Info("event created", "event_id", event.ID, "options", len(event.Options))
	return event, nil
}

// List summarizes every event, newest first.
func (s *eventService) List(ctx context.Context) ([]ports.EventSummary, error) {
	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch all events: %w", err)
	}

	summaries := make([]ports.EventSummary, 0, len(events))
	for _, event := range events {
		summaries = append(summaries, ports.EventSummary{
			ID:         event.ID,
			Name:       event.Name,
			Sport:      event.Sport,
			Date:       event.Date,
			Status:     event.Status,
			TotalVotes: len(event.Votes),
			CreatedAt:  event.CreatedAt,
		})
	}
	slices.SortStableFunc(summaries, func(a, b ports.EventSummary) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return summaries, nil
}

func (s *eventService) Get(ctx context.Context, id string) (*ports.EventView, error) {
	event, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	view := &ports.EventView{
		Event: event,
		Tally: domain.Tally(event.Options, event.Votes),
		Total: len(event.Votes),
	}
	if event.Status == domain.StatusActive {
		if preview, ok := domain.Leading(view.Tally); ok {
			view.Leading = &preview
		}
	}
	return view, nil
}

func (s *eventService) Vote(ctx context.Context, input ports.VoteInput) (*domain.Vote, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	optionID, err := uuid.Parse(input.OptionID)
	if err != nil {
		return nil, fmt.Errorf("%w: option id", domain.ErrInvalidInput)
	}

	vote := domain.Vote{
		VoterID:  strings.TrimSpace(input.VoterID),
		Name:     name,
		OptionID: optionID,
		Channel:  input.Channel,
	}
	if vote.Channel == "" {
		vote.Channel = domain.ChannelWeb
	}
	if vote.VoterID == "" {
		vote.VoterID = "voter_" + uuid.NewString()
	}
	if strings.TrimSpace(input.Phone) != "" {
		phone, err := domain.FormatPhoneNumber(input.Phone, s.countryCode)
		if err != nil {
			return nil, err
		}
		vote.Phone = phone
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	event, err := s.load(ctx, input.EventID)
	if err != nil {
		return nil, err
	}

	vote.VotedAt = s.now()
	replaced, err := event.CastVote(vote)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to save vote: %w", err)
	}

	metrics.ObserveVote(string(vote.Channel), replaced)
	s.logger.Info("vote recorded",
		"event_id", event.ID,
		"voter_id", vote.VoterID,
		"channel", vote.Channel,
		"replaced", replaced,
	)
	return &vote, nil
}

func (s *eventService) MyVote(ctx context.Context, eventID, voterID string) (*domain.Vote, error) {
	event, err := s.load(ctx, eventID)
	if err != nil {
		return nil, err
	}
	vote, ok := event.VoteOf(voterID)
	if !ok {
		return nil, nil
	}
	return &vote, nil
}

func (s *eventService) Close(ctx context.Context, id string) (*domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	res, err := event.Close(s.now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to save resolution: %w", err)
	}

	metrics.ObservePollClosed(len(res.Confirmed))
	s.logger.Info("poll closed",
		"event_id", event.ID,
		"option_id", res.OptionID,
		"confirmed", len(res.Confirmed),
		"waitlisted", len(res.Waitlisted),
		"declined", len(res.Declined),
	)
	return event, nil
}

func (s *eventService) Reopen(ctx context.Context, id string) (*domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := event.Reopen(); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to save event: %w", err)
	}

	metrics.ObservePollReopened()
	s.logger.Info("poll reopened", "event_id", event.ID)
	return event, nil
}

func (s *eventService) ConfirmedNames(ctx context.Context, id string) ([]string, error) {
	event, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.Status != domain.StatusClosed || event.Resolution == nil {
		return nil, domain.ErrEventNotClosed
	}
	return event.Resolution.ConfirmedNames(), nil
}

func (s *eventService) load(ctx context.Context, id string) (*domain.Event, error) {
	eventID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidEventID
	}
	return s.repo.GetByID(ctx, eventID)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/vncsmyrnk/turfvote/internal/core/domain"
	"github.com/vncsmyrnk/turfvote/internal/core/ports"
)

const (
	replyHelp = "❓ To vote, reply with the option number (1, 2, 3, or 4).\n\n" +
		"Example: Reply \"2\" to vote for option 2."
	replyNoPoll = "We couldn't find an open poll for this number. " +
		"Ask the organizer to send you the voting message again."
	replyClosed = "🔒 Voting for %s has closed. You'll hear from the organizer soon."
	replyFailed = "Sorry, there was an error processing your vote. Please try again."
	replyVoted  = "✅ Vote recorded for option %d: %s · %s–%s\n\n" +
		"You'll get a confirmation message when the organizer closes the poll.\n\n" +
		"🔒 Your vote is private and will be deleted 7 days after the event."
)

type inboundVoteService struct {
	events      ports.EventService
	eventRepo   ports.EventRepository
	bindings    ports.BindingRepository
	countryCode string
	appURL      string
	logger      *slog.Logger
}

func NewInboundVoteService(
	events ports.EventService,
	eventRepo ports.EventRepository,
	bindings ports.BindingRepository,
	countryCode string,
	appURL string,
	logger *slog.Logger,
) ports.InboundVoteService {
	return &inboundVoteService{
		events:      events,
		eventRepo:   eventRepo,
		bindings:    bindings,
		countryCode: countryCode,
		appURL:      appURL,
		logger:      resolveLogger(logger),
	}
}

// HandleReply maps a numeric reply to the option at that position in the
// event the sender was last invited to. The sender's number is the voter
// identity, so replying again changes the vote.
func (s *inboundVoteService) HandleReply(ctx context.Context, reply ports.InboundReply) (string, error) {
	phone, err := domain.FormatPhoneNumber(reply.From, s.countryCode)
	if err != nil {
		return s.help(), nil
	}

	position, ok := leadingNumber(reply.Body)
	if !ok || position < 1 || position > domain.MaxSimpleOptions {
		return s.help(), nil
	}

	binding, err := s.bindings.Lookup(ctx, phone)
	if errors.Is(err, domain.ErrBindingNotFound) {
		return replyNoPoll, nil
	}
	if err != nil {
		return replyFailed, fmt.Errorf("failed to look up binding: %w", err)
	}

	event, err := s.eventRepo.GetByID(ctx, binding.EventID)
	if errors.Is(err, domain.ErrEventNotFound) {
		return replyNoPoll, nil
	}
	if err != nil {
		return replyFailed, fmt.Errorf("failed to load event: %w", err)
	}
	if event.Status != domain.StatusActive {
		return fmt.Sprintf(replyClosed, event.Name), nil
	}
	opt, err := event.OptionAt(position)
	if err != nil {
		return s.help(), nil
	}

	name := strings.TrimSpace(reply.ProfileName)
	if name == "" {
		name = phone
	}
	_, err = s.events.Vote(ctx, ports.VoteInput{
		EventID:  event.ID.String(),
		OptionID: opt.ID.String(),
		VoterID:  domain.WhatsAppAddress(phone),
		Name:     name,
		Phone:    phone,
		Channel:  domain.ChannelWhatsApp,
	})
	switch {
	case errors.Is(err, domain.ErrEventClosed):
		return fmt.Sprintf(replyClosed, event.Name), nil
	case err != nil:
		return replyFailed, err
	}

	s.logger.Info("whatsapp vote received", "event_id", event.ID, "phone", phone, "position", position)
	return fmt.Sprintf(replyVoted, position, opt.TurfName, opt.StartTime, opt.EndTime), nil
}

func (s *inboundVoteService) help() string {
	if s.appURL == "" {
		return replyHelp
	}
	return replyHelp + "\n\nNeed help? Visit " + s.appURL + " to see all events."
}

// leadingNumber reads the digits a reply starts with, so "2", "2." and
// "2 please" all mean option 2.
func leadingNumber(body string) (int, bool) {
	body = strings.TrimSpace(body)
	end := strings.IndexFunc(body, func(r rune) bool { return r < '0' || r > '9' })
	if end == -1 {
		end = len(body)
	}
	n, err := strconv.Atoi(body[:end])
	return n, err == nil
}

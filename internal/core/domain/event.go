package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// DateLayout is the calendar date format of Event.Date.
	DateLayout = "2006-01-02"
	// ClockLayout is the time-of-day format of option start and end times.
	ClockLayout = "15:04"

	MaxSimpleOptions    = 4
	MaxGeneratedOptions = 200
)

type Status string

const (
	StatusActive Status = "active"
	StatusClosed Status = "closed"
)

type Sport string

const (
	SportFootball  Sport = "football"
	SportCricket   Sport = "cricket"
	SportBadminton Sport = "badminton"
	SportBowling   Sport = "bowling"
	SportOther     Sport = "other"
)

func (s Sport) Valid() bool {
	switch s {
	case SportFootball, SportCricket, SportBadminton, SportBowling, SportOther:
		return true
	}
	return false
}

type Event struct {
	ID             uuid.UUID           `json:"id"`
	Name           string              `json:"name"`
	Sport          Sport               `json:"sport"`
	Date           string              `json:"date"`
	PricePerPlayer decimal.NullDecimal `json:"price_per_player"`
	Notes          string              `json:"notes,omitempty"`
	Options        []Option            `json:"options"`
	Votes          []Vote              `json:"votes"`
	Status         Status              `json:"status"`
	Resolution     *Resolution         `json:"resolution,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
}

type Option struct {
	ID         uuid.UUID `json:"id"`
	TurfName   string    `json:"turf_name"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	MinPlayers int       `json:"min_players"`
	MaxPlayers int       `json:"max_players"`
}

// Validate checks the option's own invariants.
func (o Option) Validate() error {
	if strings.TrimSpace(o.TurfName) == "" {
		return fmt.Errorf("%w: turf name is required", ErrInvalidInput)
	}
	start, err := time.Parse(ClockLayout, o.StartTime)
	if err != nil {
		return fmt.Errorf("%w: start time %q must be HH:MM", ErrInvalidInput, o.StartTime)
	}
	end, err := time.Parse(ClockLayout, o.EndTime)
	if err != nil {
		return fmt.Errorf("%w: end time %q must be HH:MM", ErrInvalidInput, o.EndTime)
	}
	if !end.After(start) {
		return fmt.Errorf("%w: option %q ends before it starts", ErrInvalidInput, o.TurfName)
	}
	if o.MinPlayers < 1 {
		return fmt.Errorf("%w: min players must be positive", ErrInvalidInput)
	}
	if o.MaxPlayers < o.MinPlayers {
		return fmt.Errorf("%w: max players must be at least min players", ErrInvalidInput)
	}
	return nil
}

// Validate checks everything an event needs before it is first stored.
// maxOptions bounds the option list; callers pick MaxSimpleOptions or
// MaxGeneratedOptions depending on how the options were produced.
func (e *Event) Validate(maxOptions int) error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("%w: event name is required", ErrInvalidInput)
	}
	if !e.Sport.Valid() {
		return fmt.Errorf("%w: unknown sport %q", ErrInvalidInput, e.Sport)
	}
	if _, err := e.Day(); err != nil {
		return fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidInput, e.Date)
	}
	if e.PricePerPlayer.Valid && e.PricePerPlayer.Decimal.IsNegative() {
		return fmt.Errorf("%w: price per player cannot be negative", ErrInvalidInput)
	}
	if len(e.Options) < 1 || len(e.Options) > maxOptions {
		return fmt.Errorf("%w: between 1 and %d options are required, got %d", ErrInvalidInput, maxOptions, len(e.Options))
	}

	seen := make(map[uuid.UUID]struct{}, len(e.Options))
	for _, opt := range e.Options {
		if err := opt.Validate(); err != nil {
			return err
		}
		if _, dup := seen[opt.ID]; dup {
			return fmt.Errorf("%w: duplicate option id %s", ErrInvalidInput, opt.ID)
		}
		seen[opt.ID] = struct{}{}
	}
	return nil
}

// Day returns the event date at midnight UTC.
func (e *Event) Day() (time.Time, error) {
	return time.Parse(DateLayout, e.Date)
}

func (e *Event) Option(id uuid.UUID) (Option, bool) {
	for _, opt := range e.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return Option{}, false
}

// OptionAt maps a 1-based position, as shown in invitations, to an option.
func (e *Event) OptionAt(position int) (Option, error) {
	if position < 1 || position > len(e.Options) {
		return Option{}, fmt.Errorf("%w: position %d", ErrOptionNotFound, position)
	}
	return e.Options[position-1], nil
}

func (e *Event) VoteOf(voterID string) (Vote, bool) {
	for _, v := range e.Votes {
		if v.VoterID == voterID {
			return v, true
		}
	}
	return Vote{}, false
}

// CastVote records v, replacing any earlier vote by the same voter.
// It reports whether an earlier vote was replaced.
func (e *Event) CastVote(v Vote) (bool, error) {
	if e.Status != StatusActive {
		return false, ErrEventClosed
	}
	if _, ok := e.Option(v.OptionID); !ok {
		return false, ErrOptionNotFound
	}

	replaced := false
	kept := make([]Vote, 0, len(e.Votes)+1)
	for _, existing := range e.Votes {
		if existing.VoterID == v.VoterID {
			replaced = true
			continue
		}
		kept = append(kept, existing)
	}
	e.Votes = append(kept, v)
	return replaced, nil
}

// Close resolves the poll and moves the event to closed.
func (e *Event) Close(now time.Time) (*Resolution, error) {
	if e.Status == StatusClosed {
		return nil, ErrEventClosed
	}
	res, err := Resolve(e.Options, e.Votes)
	if err != nil {
		return nil, err
	}
	res.ClosedAt = now
	e.Status = StatusClosed
	e.Resolution = &res
	return e.Resolution, nil
}

// Reopen moves the event back to active and discards the resolution.
func (e *Event) Reopen() error {
	if e.Status != StatusClosed {
		return ErrEventNotClosed
	}
	e.Status = StatusActive
	e.Resolution = nil
	return nil
}

package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vncsmyrnk/turfvote/internal/core/domain"
)

type EventRepository interface {
	Save(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	List(ctx context.Context) ([]*domain.Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type OptionInput struct {
	TurfName   string
	StartTime  string
	EndTime    string
	MinPlayers int
	MaxPlayers int
}

// CreateEventInput carries either explicit Options or a Generate request,
// never both.
type CreateEventInput struct {
	Name           string
	Sport          domain.Sport
	Date           string
	PricePerPlayer decimal.NullDecimal
	Notes          string
	Options        []OptionInput
	Generate       *domain.GenerateOptionsInput
}

type VoteInput struct {
	EventID  string
	OptionID string
	VoterID  string
	Name     string
	Phone    string
	Channel  domain.Channel
}

// EventView is the live dashboard of one event. Leading is set while the
// poll is open and has votes.
type EventView struct {
	Event   *domain.Event        `json:"event"`
	Tally   []domain.OptionTally `json:"tally"`
	Total   int                  `json:"total_votes"`
	Leading *domain.ClosePreview `json:"leading,omitempty"`
}

type EventSummary struct {
	ID         uuid.UUID     `json:"id"`
	Name       string        `json:"name"`
	Sport      domain.Sport  `json:"sport"`
	Date       string        `json:"date"`
	Status     domain.Status `json:"status"`
	TotalVotes int           `json:"total_votes"`
	CreatedAt  time.Time     `json:"created_at"`
}

type EventService interface {
	Create(ctx context.Context, input CreateEventInput) (*domain.Event, error)
	List(ctx context.Context) ([]EventSummary, error)
	Get(ctx context.Context, id string) (*EventView, error)
	Vote(ctx context.Context, input VoteInput) (*domain.Vote, error)
	MyVote(ctx context.Context, eventID, voterID string) (*domain.Vote, error)
	Close(ctx context.Context, id string) (*domain.Event, error)
	Reopen(ctx context.Context, id string) (*domain.Event, error)
	ConfirmedNames(ctx context.Context, id string) ([]string, error)
}

type RetentionService interface {
	PurgeExpired(ctx context.Context) (int, error)
}

package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DefaultMinPlayers = 6
	DefaultMaxPlayers = 10
	MaxBulkTurfs      = 50
)

var DefaultTurfPrice = decimal.NewFromInt(25)

// Turf is an organizer's saved venue with the defaults used when building
// event options for it.
type Turf struct {
	ID                uuid.UUID       `json:"id"`
	Name              string          `json:"name"`
	DefaultMinPlayers int             `json:"default_min_players"`
	DefaultMaxPlayers int             `json:"default_max_players"`
	DefaultPrice      decimal.Decimal `json:"default_price"`
	Active            bool            `json:"active"`
	CreatedAt         time.Time       `json:"created_at"`
}

// PhoneBinding records which event a phone number was last invited to, so
// that numeric WhatsApp replies can be attributed to it.
type PhoneBinding struct {
	Phone   string    `json:"phone"`
	EventID uuid.UUID `json:"event_id"`
	BoundAt time.Time `json:"bound_at"`
}

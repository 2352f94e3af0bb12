package domain

import (
	"time"

	"github.com/google/uuid"
)

type Channel string

const (
	ChannelWeb      Channel = "web"
	ChannelWhatsApp Channel = "whatsapp"
)

type Vote struct {
	VoterID  string    `json:"voter_id"`
	Name     string    `json:"name"`
	OptionID uuid.UUID `json:"option_id"`
	VotedAt  time.Time `json:"voted_at"`
	Channel  Channel   `json:"channel"`
	Phone    string    `json:"phone,omitempty"`
}

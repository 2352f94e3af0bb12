package domain

import "github.com/shopspring/decimal"

// Confirmation is the content of a message sent to a confirmed player.
type Confirmation struct {
	EventName      string
	EventDate      string
	TurfName       string
	StartTime      string
	EndTime        string
	PricePerPlayer decimal.NullDecimal
	Notes          string
}

// Invitation is the content of a voting-instructions message. Options are
// numbered by their position, starting at 1.
type Invitation struct {
	EventName      string
	EventDate      string
	Sport          Sport
	Options        []Option
	PricePerPlayer decimal.NullDecimal
	Notes          string
}

type DeliveryKind string

const (
	DeliveryConfirmation DeliveryKind = "confirmation"
	DeliveryDecline      DeliveryKind = "decline"
	DeliveryInvitation   DeliveryKind = "invitation"
)

type DeliveryResult struct {
	Name      string        `json:"name,omitempty"`
	Phone     string        `json:"phone,omitempty"`
	Kind      DeliveryKind  `json:"kind"`
	Reason    DeclineReason `json:"reason,omitempty"`
	Delivered bool          `json:"delivered"`
	Reference string        `json:"reference,omitempty"`
	Error     string        `json:"error,omitempty"`

	// BindingError is set when an invitation went out but replies from
	// the number cannot be matched to the event.
	BindingError string `json:"binding_error,omitempty"`
}

// DeliveryReport aggregates a batch of best-effort sends.
type DeliveryReport struct {
	Sent    int              `json:"sent"`
	Failed  int              `json:"failed"`
	Skipped []string         `json:"skipped"`
	Results []DeliveryResult `json:"results"`
}

func (r *DeliveryReport) Add(result DeliveryResult) {
	if result.Delivered {
		r.Sent++
	} else {
		r.Failed++
	}
	r.Results = append(r.Results, result)
}

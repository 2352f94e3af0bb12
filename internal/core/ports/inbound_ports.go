package ports

import (
	"context"

	"github.com/vncsmyrnk/turfvote/internal/core/domain"
)

type BindingRepository interface {
	Bind(ctx context.Context, binding domain.PhoneBinding) error
	Lookup(ctx context.Context, phone string) (*domain.PhoneBinding, error)
}

type InboundReply struct {
	From        string
	ProfileName string
	Body        string
}

type InboundVoteService interface {
	// HandleReply records a vote when possible and always returns the text
	// to send back to the sender.
	HandleReply(ctx context.Context, reply InboundReply) (string, error)
}

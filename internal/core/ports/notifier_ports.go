package ports

import (
	"context"

	"github.com/vncsmyrnk/turfvote/internal/core/domain"
)

// Notifier delivers messages to a phone number. Each call returns the
// provider's message reference on success.
type Notifier interface {
	NotifySuccess(ctx context.Context, to string, msg domain.Confirmation) (string, error)
	NotifyDecline(ctx context.Context, to, eventName string, reason domain.DeclineReason) (string, error)
	SendInvitation(ctx context.Context, to string, msg domain.Invitation) (string, error)
}

type NotificationService interface {
	NotifyResolution(ctx context.Context, eventID string) (*domain.DeliveryReport, error)
	Invite(ctx context.Context, eventID string, phones []string) (*domain.DeliveryReport, error)
}

// Package twilio delivers WhatsApp messages through the Twilio REST API and
// provides the helpers the inbound webhook needs.
package twilio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/twilio/twilio-go"
	twclient "github.com/twilio/twilio-go/client"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
	"github.com/twilio/twilio-go/twiml"

	"github.com/vncsmyrnk/turfvote/internal/core/domain"
	"github.com/vncsmyrnk/turfvote/internal/core/ports"
)

var ErrNotConfigured = errors.New("twilio is not configured")

type Config struct {
	AccountSID     string
	AuthToken      string
	WhatsAppNumber string
	CurrencySymbol string
}

// messageSender is the slice of the Twilio client the notifier uses.
type messageSender interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

type notifier struct {
	api       messageSender
	from      string
	formatter Formatter
	logger    *slog.Logger
}

// NewNotifier returns a notifier whose every send fails with
// ErrNotConfigured when credentials or the sender number are missing.
func NewNotifier(cfg Config, logger *slog.Logger) ports.Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	n := &notifier{
		from:      domain.WhatsAppAddress(cfg.WhatsAppNumber),
		formatter: Formatter{Currency: cfg.CurrencySymbol},
		logger:    logger,
	}
	if cfg.AccountSID == "" || cfg.AuthToken == "" || cfg.WhatsAppNumber == "" {
		logger.Warn("twilio credentials not configured, whatsapp messaging disabled")
		return n
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	n.api = client.Api
	return n
}

func (n *notifier) NotifySuccess(ctx context.Context, to string, msg domain.Confirmation) (string, error) {
	return n.send(ctx, to, n.formatter.Confirmation(msg))
}

func (n *notifier) NotifyDecline(ctx context.Context, to, eventName string, reason domain.DeclineReason) (string, error) {
	return n.send(ctx, to, n.formatter.Decline(eventName, reason))
}

func (n *notifier) SendInvitation(ctx context.Context, to string, msg domain.Invitation) (string, error) {
	return n.send(ctx, to, n.formatter.Invitation(msg))
}

func (n *notifier) send(ctx context.Context, to, body string) (string, error) {
	if n.api == nil {
		return "", ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(domain.WhatsAppAddress(to))
	params.SetFrom(n.from)
	params.SetBody(body)

	resp, err := n.api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("failed to send whatsapp message: %w", err)
	}

	sid := ""
	if resp != nil && resp.Sid != nil {
		sid = *resp.Sid
	}
	n.logger.Info("whatsapp message sent", "sid", sid)
	return sid, nil
}

// SignatureValidator checks the X-Twilio-Signature header of webhook calls.
type SignatureValidator struct {
	validator twclient.RequestValidator
}

func NewSignatureValidator(authToken string) *SignatureValidator {
	return &SignatureValidator{validator: twclient.NewRequestValidator(authToken)}
}

func (v *SignatureValidator) Validate(url string, params map[string]string, signature string) bool {
	if strings.TrimSpace(signature) == "" {
		return false
	}
	return v.validator.Validate(url, params, signature)
}

// Reply renders a TwiML response carrying a single message.
func Reply(text string) (string, error) {
	return twiml.Messages([]twiml.Element{
		&twiml.MessagingMessage{Body: text},
	})
}

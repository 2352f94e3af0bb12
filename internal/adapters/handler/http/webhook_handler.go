package http

import (
	"log/slog"
	"net/http"

	"github.com/vncsmyrnk/turfvote/internal/adapters/notifier/twilio"
	"github.com/vncsmyrnk/turfvote/internal/core/ports"
)

const replyError = "Sorry, there was an error processing your vote. Please try again."

// SignatureValidator verifies that a webhook call came from the provider.
type SignatureValidator interface {
	Validate(url string, params map[string]string, signature string) bool
}

type WebhookHandler struct {
	inbound    ports.InboundVoteService
	validator  SignatureValidator
	webhookURL string
	logger     *slog.Logger
}

// NewWebhookHandler skips signature checks when validator is nil.
func NewWebhookHandler(inbound ports.InboundVoteService, validator SignatureValidator, webhookURL string, logger *slog.Logger) *WebhookHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebhookHandler{
		inbound:    inbound,
		validator:  validator,
		webhookURL: webhookURL,
		logger:     logger,
	}
}

func (h *WebhookHandler) Verify(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("WhatsApp webhook is active"))
}

// Receive handles an inbound WhatsApp message and answers with TwiML.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	if h.validator != nil {
		params := make(map[string]string, len(r.PostForm))
		for key := range r.PostForm {
			params[key] = r.PostForm.Get(key)
		}
		if !h.validator.Validate(h.webhookURL, params, r.Header.Get("X-Twilio-Signature")) {
			h.logger.Warn("rejected webhook call with invalid signature", "remote", r.RemoteAddr)
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
	}

	reply := ports.InboundReply{
		From:        r.PostForm.Get("From"),
		ProfileName: r.PostForm.Get("ProfileName"),
		Body:        r.PostForm.Get("Body"),
	}
	h.logger.Info("whatsapp message received", "from", reply.From, "message_sid", r.PostForm.Get("MessageSid"))

	text, err := h.inbound.HandleReply(r.Context(), reply)
	if err != nil {
		h.logger.Error("failed to handle whatsapp reply", "from", reply.From, "error", err)
		if text == "" {
			text = replyError
		}
	}

	body, err := twilio.Reply(text)
	if err != nil {
		h.logger.Error("failed to render twiml", "error", err)
		http.Error(w, "failed to render response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

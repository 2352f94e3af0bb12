package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/vncsmyrnk/turfvote/internal/metrics"
)

type RouterConfig struct {
	AllowedOrigins []string
	Logger         *slog.Logger
}

func NewHandler(
	cfg RouterConfig,
	eventHandler *EventHandler,
	turfHandler *TurfHandler,
	webhookHandler *WebhookHandler,
) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", metrics.Handler())

	r.Route("/webhooks/whatsapp", func(r chi.Router) {
		r.Get("/", webhookHandler.Verify)
		r.Post("/", webhookHandler.Receive)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))

		r.Route("/events", func(r chi.Router) {
			r.Get("/", eventHandler.ListEvents)
			r.Post("/", eventHandler.CreateEvent)
			r.Post("/options/generate", eventHandler.PreviewOptions)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", eventHandler.GetEvent)
				r.Post("/votes", eventHandler.Vote)
				r.Get("/votes/{voterID}", eventHandler.MyVote)
				r.Post("/close", eventHandler.ClosePoll)
				r.Post("/reopen", eventHandler.ReopenPoll)
				r.Post("/notifications", eventHandler.SendNotifications)
				r.Post("/invitations", eventHandler.SendInvitations)
				r.Get("/confirmed.txt", eventHandler.ConfirmedList)
			})
		})

		r.Route("/turfs", func(r chi.Router) {
			r.Get("/", turfHandler.ListTurfs)
			r.Post("/", turfHandler.AddTurf)
			r.Post("/bulk", turfHandler.BulkAddTurfs)
			r.Patch("/{id}", turfHandler.UpdateTurf)
			r.Delete("/{id}", turfHandler.DeleteTurf)
		})
	})

	return r
}

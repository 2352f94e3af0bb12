package main

import (
	"context"
	"errors"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vncsmyrnk/turfvote/internal/adapters/handler/http"
	"github.com/vncsmyrnk/turfvote/internal/adapters/notifier/twilio"
	"github.com/vncsmyrnk/turfvote/internal/adapters/repository"
	"github.com/vncsmyrnk/turfvote/internal/config"
	"github.com/vncsmyrnk/turfvote/internal/core/services"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stores, err := repository.Open(ctx, cfg)
	if err != nil {
		logger.Error("failed to open store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer stores.Close()

	notifier := twilio.NewNotifier(twilio.Config{
		AccountSID:     cfg.Twilio.AccountSID,
		AuthToken:      cfg.Twilio.AuthToken,
		WhatsAppNumber: cfg.Twilio.WhatsAppNumber,
		CurrencySymbol: cfg.CurrencySymbol,
	}, logger)

	eventService := services.NewEventService(stores.Events, cfg.DefaultCountryCode, logger)
	notificationService := services.NewNotificationService(stores.Events, stores.Bindings, notifier, cfg.NotifyInterval, cfg.DefaultCountryCode, logger)
	inboundService := services.NewInboundVoteService(eventService, stores.Events, stores.Bindings, cfg.DefaultCountryCode, cfg.AppURL, logger)
	turfService := services.NewTurfService(stores.Turfs, logger)

	var validator http.SignatureValidator
	if cfg.Twilio.ValidateSignature {
		validator = twilio.NewSignatureValidator(cfg.Twilio.AuthToken)
	}

	handler := http.NewHandler(
		http.RouterConfig{AllowedOrigins: cfg.AllowOrigins, Logger: logger},
		http.NewEventHandler(eventService, notificationService),
		http.NewTurfHandler(turfService),
		http.NewWebhookHandler(inboundService, validator, cfg.Twilio.WebhookURL, logger),
	)
	server := &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", cfg.Addr, "store", cfg.StoreDriver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
		os.Exit(1)
	}
}

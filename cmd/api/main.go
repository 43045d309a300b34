package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/invoicely/internal/backend"
	"github.com/MrJamesThe3rd/invoicely/internal/client"
	"github.com/MrJamesThe3rd/invoicely/internal/config"
	"github.com/MrJamesThe3rd/invoicely/internal/events"
	"github.com/MrJamesThe3rd/invoicely/internal/export"
	invoicelyHttp "github.com/MrJamesThe3rd/invoicely/internal/http"
	clientHandler "github.com/MrJamesThe3rd/invoicely/internal/http/client"
	dashboardHandler "github.com/MrJamesThe3rd/invoicely/internal/http/dashboard"
	invoiceHandler "github.com/MrJamesThe3rd/invoicely/internal/http/invoice"
	timeEntryHandler "github.com/MrJamesThe3rd/invoicely/internal/http/timeentry"
	"github.com/MrJamesThe3rd/invoicely/internal/identity"
	"github.com/MrJamesThe3rd/invoicely/internal/importer"
	"github.com/MrJamesThe3rd/invoicely/internal/invoice"
	"github.com/MrJamesThe3rd/invoicely/internal/timeentry"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(cfg.NewLogger(os.Stdout))

	store, err := backend.Open(cfg)
	if err != nil {
		slog.Error("failed to open backend", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	publisher := newPublisher(cfg)

	devUser, _ := cfg.DevUser() // validated by config.Load

	var verifier *identity.Verifier
	if cfg.Auth.JWTSecret != "" {
		verifier = identity.NewVerifier(cfg.Auth.JWTSecret)
	} else {
		slog.Warn("AUTH_JWT_SECRET not set, every request acts as the dev user", "user_id", devUser)
	}

	var (
		clientService    = client.NewService(store.Clients)
		invoiceService   = invoice.NewService(store.Invoices)
		timeEntryService = timeentry.NewService(store.TimeEntries)
		importService    = importer.NewService(time.Local)
		exportService    = export.NewService(timeEntryService, clientService, time.Local)
	)

	var (
		clientH    = clientHandler.NewHandler(clientService, publisher)
		invoiceH   = invoiceHandler.NewHandler(invoiceService, clientService, publisher)
		timeEntryH = timeEntryHandler.NewHandler(timeEntryService, clientService, importService, exportService, publisher)
		dashboardH = dashboardHandler.NewHandler(clientService, invoiceService, timeEntryService)
	)

	router := invoicelyHttp.New(invoicelyHttp.Options{
		Auth:        identity.Middleware(verifier, devUser),
		CORSOrigins: cfg.Server.CORSOrigins,
	}, clientH, invoiceH, timeEntryH, dashboardH)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           http.TimeoutHandler(router, cfg.Server.Timeout, `{"error":"Request timed out"}`),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		slog.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "addr", srv.Addr, "driver", cfg.DB.Driver)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}

	if closer, ok := publisher.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			slog.Error("failed to close event publisher", "error", err)
		}
	}

	slog.Info("server stopped")
}

// newPublisher connects to AMQP_URL when set. A broker that cannot be reached
// does not stop the API; changes are then simply not announced.
func newPublisher(cfg *config.Config) events.Publisher {
	if cfg.AMQP.URL == "" {
		return events.Nop{}
	}

	p, err := events.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
	if err != nil {
		slog.Error("failed to connect to message broker, change events disabled", "error", err)
		return events.Nop{}
	}

	slog.Info("publishing change events", "exchange", cfg.AMQP.Exchange)

	return p
}

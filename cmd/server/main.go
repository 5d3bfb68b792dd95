package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "time/tzdata"

	"karting/internal/adapters/api"
	"karting/internal/adapters/email"
	web "karting/internal/adapters/http"
	"karting/internal/adapters/metrics"
	"karting/internal/adapters/storage"
	auditStore "karting/internal/adapters/storage/audit"
	"karting/internal/application/orchestrators"
	"karting/internal/config"
	"karting/internal/platform/logger"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

// shutdownTimeout bounds how long in-flight requests may finish on exit.
const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		log.Printf("karting console: %v", err)
		os.Exit(1)
	}
}

// run wires and serves the console until SIGINT/SIGTERM. Every deferred
// cleanup runs before it returns, including on startup errors.
func run() error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	zl, err := logger.New("karting-console", cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()
	logger.Install(zl)

	m := metrics.New()

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		slog.Error("audit_db_open_failed", "path", cfg.DBPath, "error", err)
		return err
	}
	defer db.Close()
	timedDB := storage.NewTimedDB(db, m, storage.DefaultSlowQuery)
	audit := auditStore.NewSQLiteStore(timedDB)

	csrfKey := []byte(cfg.CSRFKey)
	if len(csrfKey) != 32 {
		// Development only; config.Load rejects this in production.
		csrfKey = make([]byte, 32)
		if _, err := rand.Read(csrfKey); err != nil {
			slog.Error("csrf_key_generation_failed", "error", err)
			return fmt.Errorf("generate csrf key: %w", err)
		}
		slog.Warn("csrf_key_ephemeral", "reason", "KARTING_CSRF_KEY is not 32 bytes")
	}

	client := api.New(cfg.APIURL, cfg.APITimeout, m)
	sender := email.NewSender(cfg.ResendKey, cfg.SendGridKey, cfg.EmailFrom)

	services := &web.Services{
		API:              client,
		AuditStore:       audit,
		DB:               timedDB,
		Email:            sender,
		EmailFrom:        cfg.EmailFrom,
		ReplyTo:          cfg.ReplyTo,
		ReportRecipients: cfg.ReportRecipients,
		Metrics:          m,
		Location:         cfg.Timezone,
	}
	handler := web.NewMux(services, web.Options{
		CSRFKey:     csrfKey,
		Secure:      cfg.IsProduction(),
		RateLimit:   cfg.RateLimit,
		SlowRequest: cfg.SlowRequest,
		CORSOrigins: cfg.CORSOrigins,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	web.StartSessionSweeper(ctx)

	scheduler, err := orchestrators.StartReportSchedule(cfg.ReportCron, cfg.Timezone, orchestrators.EmailRevenueReportDeps{
		Reports:    client,
		Sender:     sender,
		Emails:     m,
		From:       cfg.EmailFrom,
		ReplyTo:    cfg.ReplyTo,
		Recipients: cfg.ReportRecipients,
		Audit:      orchestrators.RecordAuditDeps{AuditStore: audit, Now: time.Now},
	})
	if err != nil {
		slog.Error("report_schedule_invalid", "spec", cfg.ReportCron, "error", err)
		return fmt.Errorf("report schedule: %w", err)
	}
	if scheduler != nil {
		defer func() { <-scheduler.Stop().Done() }()
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server_starting",
			"version", version,
			"addr", cfg.Addr,
			"env", cfg.Env,
			"api_url", cfg.APIURL,
			"timezone", cfg.Timezone.String(),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server_failed", "error", err)
			serveErr <- err
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("server_stopping")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server_shutdown_failed", "error", err)
		return err
	}
	select {
	case err := <-serveErr:
		return err
	default:
		return nil
	}
}

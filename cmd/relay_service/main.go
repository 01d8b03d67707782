package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/healthsms/relay/internal/platform/config"
	"github.com/healthsms/relay/internal/platform/logger"
	"github.com/healthsms/relay/internal/relay_service/adapters/notifier"
	"github.com/healthsms/relay/internal/relay_service/app"
	"github.com/healthsms/relay/internal/relay_service/repository/gsheets"
	transport "github.com/healthsms/relay/internal/relay_service/transport/http"
)

const serviceName = "relay_service"

func main() {
	cfg, err := config.Load(serviceName)
	if err != nil {
		slog.Error("Failed to load configuration", "service", serviceName, "error", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.LogLevel)
	appLogger.Info("Relay service starting...", "port", cfg.ServerPort)

	if cfg.GoogleSheetID == "" {
		appLogger.Error("APP_GOOGLE_SHEET_ID is required")
		os.Exit(1)
	}
	if cfg.GoogleCredentialsJSON == "" {
		appLogger.Error("APP_GOOGLE_CREDENTIALS is required")
		os.Exit(1)
	}
	if cfg.CronSecret == "" {
		appLogger.Warn("APP_CRON_SECRET not set; /trigger-daily-checkin will respond 500 until configured")
	}

	ctx := context.Background()

	sheetsSvc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON([]byte(cfg.GoogleCredentialsJSON)),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		appLogger.Error("Failed to create Google Sheets client", "error", err)
		os.Exit(1)
	}
	logRepo := gsheets.NewSymptomLogRepository(sheetsSvc, cfg.GoogleSheetID, cfg.SheetName, appLogger)
	appLogger.Info("Symptom log store ready", "sheet_id", cfg.GoogleSheetID, "sheet_name", cfg.SheetName)

	var smsNotifier notifier.Notifier
	if cfg.AndroidSendURL != "" {
		httpClient := &http.Client{Timeout: time.Duration(cfg.NotifierTimeoutSeconds) * time.Second}
		smsNotifier = notifier.NewJoinNotifier(appLogger, cfg.AndroidSendURL, httpClient)
	} else {
		appLogger.Warn("APP_ANDROID_SEND_URL not set; using mock notifier (no SMS will be sent)")
		smsNotifier = notifier.NewMockNotifier(appLogger, "")
	}

	relayService := app.NewRelayService(logRepo, smsNotifier, appLogger)

	validate := validator.New()
	webhookHandler := transport.NewWebhookHandler(relayService, appLogger, validate)
	cronHandler := transport.NewCronHandler(relayService, cfg.CronSecret, appLogger)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(transport.PrometheusMetricsMiddleware)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "ok",
			"service": "health-sms-relay",
			"endpoints": []string{
				"GET /trigger-daily-checkin?secret=YOUR_SECRET",
				"POST /android-webhook",
			},
		})
	})
	r.Handle("/metrics", promhttp.Handler())

	webhookHandler.RegisterRoutes(r)
	cronHandler.RegisterRoutes(r)

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		appLogger.Info("Shutting down relay service...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			appLogger.Error("Server shutdown error", "error", err)
		}
	}()

	appLogger.Info("Relay service listening", "addr", addr, "notifier", smsNotifier.GetName())
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		appLogger.Error("Server error", "error", err)
		os.Exit(1)
	}

	appLogger.Info("Relay service stopped")
}

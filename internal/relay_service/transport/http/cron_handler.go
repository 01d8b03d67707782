package http

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chi_middleware "github.com/go-chi/chi/v5/middleware" // For GetReqID
)

// CheckInTrigger defines the interface required by the CronHandler for
// sending the daily check-in prompt.
type CheckInTrigger interface {
	TriggerDailyCheckIn(ctx context.Context) error
}

// CronHandler authenticates an external scheduler (cron-job.org or similar)
// by a shared secret and fires the daily check-in. The service runs no
// scheduler of its own.
type CronHandler struct {
	appService CheckInTrigger
	cronSecret string
	logger     *slog.Logger
}

// NewCronHandler creates a new CronHandler. cronSecret may be empty, in
// which case the endpoint always responds 500 until one is configured.
func NewCronHandler(appService CheckInTrigger, cronSecret string, logger *slog.Logger) *CronHandler {
	return &CronHandler{
		appService: appService,
		cronSecret: cronSecret,
		logger:     logger.With("handler", "cron"),
	}
}

// RegisterRoutes registers the cron trigger route with the given router.
func (h *CronHandler) RegisterRoutes(r chi.Router) {
	r.Get("/trigger-daily-checkin", h.handleTriggerDailyCheckIn)
}

func (h *CronHandler) handleTriggerDailyCheckIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := chi_middleware.GetReqID(ctx)
	logger := h.logger.With("request_id", requestID)

	if h.cronSecret == "" {
		logger.ErrorContext(ctx, "Cron secret not configured")
		writeJSON(w, http.StatusInternalServerError, GenericErrorResponse{Error: "cron secret not configured on server"})
		return
	}

	provided := r.URL.Query().Get("secret")
	if subtle.ConstantTimeCompare([]byte(provided), []byte(h.cronSecret)) != 1 {
		logger.WarnContext(ctx, "Cron trigger with invalid or missing secret", "remote_addr", r.RemoteAddr)
		writeJSON(w, http.StatusForbidden, GenericErrorResponse{Error: "invalid or missing secret"})
		return
	}

	if err := h.appService.TriggerDailyCheckIn(ctx); err != nil {
		logger.ErrorContext(ctx, "Failed to send daily check-in", "error", err)
		writeJSON(w, http.StatusInternalServerError, CronResponse{Status: "error", Message: "failed to send SMS"})
		return
	}

	logger.InfoContext(ctx, "Daily check-in triggered")
	writeJSON(w, http.StatusOK, CronResponse{Status: "success", Message: "daily check-in sent"})
}

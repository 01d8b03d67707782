package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chi_middleware "github.com/go-chi/chi/v5/middleware" // For GetReqID
	"github.com/go-playground/validator/v10"

	"github.com/healthsms/relay/internal/relay_service/domain"
)

// InboundProcessor defines the interface required by the WebhookHandler for
// dispatching forwarded SMS messages. This makes testing easier by allowing
// mocks.
type InboundProcessor interface {
	ProcessInbound(ctx context.Context, msg domain.InboundMessage) (*domain.DispatchOutcome, error)
}

type WebhookHandler struct {
	appService InboundProcessor
	logger     *slog.Logger
	validate   *validator.Validate
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(appService InboundProcessor, logger *slog.Logger, validate *validator.Validate) *WebhookHandler {
	return &WebhookHandler{
		appService: appService,
		logger:     logger.With("handler", "webhook"),
		validate:   validate,
	}
}

// RegisterRoutes registers the webhook route with the given router.
func (h *WebhookHandler) RegisterRoutes(r chi.Router) {
	r.Post("/android-webhook", h.handleAndroidWebhook)
}

// handleAndroidWebhook receives an SMS forwarded from the paired Android
// phone, dispatches it, and reports the action taken.
func (h *WebhookHandler) handleAndroidWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := chi_middleware.GetReqID(ctx)
	logger := h.logger.With("request_id", requestID)

	var req AndroidWebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "Failed to decode webhook request", "error", err)
		writeJSON(w, http.StatusBadRequest, GenericErrorResponse{Error: "invalid JSON payload"})
		return
	}

	if err := h.validate.StructCtx(ctx, req); err != nil {
		logger.WarnContext(ctx, "Webhook request failed validation", "error", err)
		writeJSON(w, http.StatusBadRequest, GenericErrorResponse{Error: "invalid request", Details: err.Error()})
		return
	}

	outcome, err := h.appService.ProcessInbound(ctx, domain.InboundMessage{
		Sender: req.Sender,
		Body:   req.Body,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmptyBody) {
			logger.WarnContext(ctx, "Rejected empty message body")
			writeJSON(w, http.StatusBadRequest, GenericErrorResponse{Error: "empty message body"})
			return
		}
		logger.ErrorContext(ctx, "Failed to process inbound message", "error", err)
		writeJSON(w, http.StatusInternalServerError, GenericErrorResponse{Error: err.Error()})
		return
	}

	resp := AndroidWebhookResponse{
		Status: "success",
		Action: string(outcome.Action),
	}
	switch outcome.Action {
	case domain.ActionSentSummary:
		count := outcome.EntriesCount
		resp.EntriesCount = &count
	case domain.ActionLoggedSymptom:
		urgency := outcome.Urgency
		resp.Urgency = &urgency
	}

	logger.InfoContext(ctx, "Inbound message processed", "action", outcome.Action)
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

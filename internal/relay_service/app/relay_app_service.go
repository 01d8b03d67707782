package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/healthsms/relay/internal/relay_service/adapters/notifier"
	"github.com/healthsms/relay/internal/relay_service/domain"
	"github.com/healthsms/relay/internal/relay_service/repository"
)

const (
	logAckMessage    = "Logged."
	noEntriesMessage = "No symptom entries recorded yet."
	checkInMessage   = "How were your symptoms today? Rate urgency (1-10) and describe."

	helpMessage = "I didn't understand that. Send:\n" +
		"- Symptoms with urgency 1-10 to log\n" +
		"- 'Link' for spreadsheet URL\n" +
		"- 'Summary' for recent entries"

	summaryBodyMaxLen = 30
)

// RelayService orchestrates the relay: classify an inbound message, perform
// at most one store operation, then exactly one notifier push. All state
// lives in the external symptom log; the service itself is stateless
// per-request.
type RelayService struct {
	logRepo  repository.SymptomLogRepository
	notifier notifier.Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// NewRelayService creates a RelayService.
func NewRelayService(logRepo repository.SymptomLogRepository, n notifier.Notifier, logger *slog.Logger) *RelayService {
	return &RelayService{
		logRepo:  logRepo,
		notifier: n,
		logger:   logger.With("component", "relay_service"),
		now:      time.Now,
	}
}

// ProcessInbound classifies and dispatches one forwarded SMS. Store failures
// propagate to the caller; notifier failures are swallowed after logging, so
// an action still reports success even if the outbound SMS was not delivered.
func (s *RelayService) ProcessInbound(ctx context.Context, msg domain.InboundMessage) (*domain.DispatchOutcome, error) {
	body := strings.TrimSpace(msg.Body)
	if body == "" {
		return nil, domain.ErrEmptyBody
	}

	sender := msg.Sender
	if sender == "" {
		sender = "unknown"
	}
	logger := s.logger.With("sender", sender)
	logger.InfoContext(ctx, "Processing inbound message", "body_len", len(body))

	intent := domain.ClassifyMessage(body)

	switch intent.Kind {
	case domain.IntentLinkRequest:
		s.push(ctx, logger, "Your symptom log: "+s.logRepo.SheetURL())
		return s.outcome(domain.DispatchOutcome{Action: domain.ActionSentLink}), nil

	case domain.IntentSummaryRequest:
		start := time.Now()
		entries, err := s.logRepo.LastEntries(ctx, intent.Count)
		sheetOpDurationHist.WithLabelValues("read").Observe(time.Since(start).Seconds())
		if err != nil {
			return nil, fmt.Errorf("read symptom log: %w", err)
		}
		if len(entries) == 0 {
			s.push(ctx, logger, noEntriesMessage)
		} else {
			s.push(ctx, logger, formatSummary(entries))
		}
		return s.outcome(domain.DispatchOutcome{Action: domain.ActionSentSummary, EntriesCount: len(entries)}), nil

	case domain.IntentLogEntry:
		entry := domain.NewSymptomEntry(s.now(), body, intent.Urgency)
		start := time.Now()
		err := s.logRepo.Append(ctx, entry)
		sheetOpDurationHist.WithLabelValues("append").Observe(time.Since(start).Seconds())
		if err != nil {
			return nil, fmt.Errorf("append symptom log: %w", err)
		}
		s.push(ctx, logger, logAckMessage)
		return s.outcome(domain.DispatchOutcome{Action: domain.ActionLoggedSymptom, Urgency: intent.Urgency}), nil

	default:
		s.push(ctx, logger, helpMessage)
		return s.outcome(domain.DispatchOutcome{Action: domain.ActionSentHelp}), nil
	}
}

// TriggerDailyCheckIn sends the fixed daily check-in prompt. Unlike webhook
// actions, a failed push is surfaced to the caller.
func (s *RelayService) TriggerDailyCheckIn(ctx context.Context) error {
	res, err := s.notifier.Send(ctx, checkInMessage)
	if err != nil {
		notifierPushesCounter.WithLabelValues(s.notifier.GetName(), "failed").Inc()
		return fmt.Errorf("send check-in prompt: %w", err)
	}
	if !res.Success {
		notifierPushesCounter.WithLabelValues(s.notifier.GetName(), "failed").Inc()
		return fmt.Errorf("%w: %s", domain.ErrNotifierFailed, res.ErrorMessage)
	}
	notifierPushesCounter.WithLabelValues(s.notifier.GetName(), "success").Inc()
	s.logger.InfoContext(ctx, "Daily check-in sent", "push_id", res.PushID)
	return nil
}

// push performs the single best-effort notifier send for an inbound message.
// Failures are logged and counted, never returned.
func (s *RelayService) push(ctx context.Context, logger *slog.Logger, text string) {
	res, err := s.notifier.Send(ctx, text)
	if err != nil {
		notifierPushesCounter.WithLabelValues(s.notifier.GetName(), "failed").Inc()
		logger.WarnContext(ctx, "Notifier push failed", "error", err)
		return
	}
	if !res.Success {
		notifierPushesCounter.WithLabelValues(s.notifier.GetName(), "failed").Inc()
		logger.WarnContext(ctx, "Notifier rejected push", "push_id", res.PushID, "status_code", res.StatusCode, "error_message", res.ErrorMessage)
		return
	}
	notifierPushesCounter.WithLabelValues(s.notifier.GetName(), "success").Inc()
	logger.InfoContext(ctx, "Notifier push accepted", "push_id", res.PushID, "text_len", len(text))
}

func (s *RelayService) outcome(o domain.DispatchOutcome) *domain.DispatchOutcome {
	inboundMessagesCounter.WithLabelValues(string(o.Action)).Inc()
	return &o
}

// formatSummary renders entries as one bullet line each: date, body trimmed
// to 30 characters, urgency.
func formatSummary(entries []domain.SymptomEntry) string {
	lines := make([]string, 0, len(entries)+1)
	lines = append(lines, fmt.Sprintf("Last %d entries:", len(entries)))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("- %s: %s (urgency %d)", e.Date, truncateBody(e.Body), e.Urgency))
	}
	return strings.Join(lines, "\n")
}

func truncateBody(body string) string {
	// Cut on runes, not bytes, so multi-byte text survives truncation.
	r := []rune(body)
	if len(r) <= summaryBodyMaxLen {
		return body
	}
	return string(r[:summaryBodyMaxLen]) + "..."
}

package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/healthsms/relay/internal/relay_service/adapters/notifier"
	"github.com/healthsms/relay/internal/relay_service/domain"
)

// --- Mocks ---

type MockSymptomLogRepository struct {
	mock.Mock
}

func (m *MockSymptomLogRepository) Append(ctx context.Context, entry domain.SymptomEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockSymptomLogRepository) LastEntries(ctx context.Context, n int) ([]domain.SymptomEntry, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SymptomEntry), args.Error(1)
}

func (m *MockSymptomLogRepository) SheetURL() string {
	args := m.Called()
	return args.String(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, text string) (*notifier.PushResult, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notifier.PushResult), args.Error(1)
}

func (m *MockNotifier) GetName() string {
	return "mock"
}

func okPush() *notifier.PushResult {
	return &notifier.PushResult{PushID: "push-1", Success: true, StatusCode: 200}
}

func newTestService(repo *MockSymptomLogRepository, n *MockNotifier) *RelayService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewRelayService(repo, n, logger)
	svc.now = func() time.Time {
		return time.Date(2026, 8, 27, 14, 30, 5, 0, time.UTC)
	}
	return svc
}

// --- ProcessInbound ---

func TestProcessInbound_EmptyBody_NoSideEffects(t *testing.T) {
	repo := new(MockSymptomLogRepository)
	notif := new(MockNotifier)
	svc := newTestService(repo, notif)

	for _, body := range []string{"", "   ", "\n\t "} {
		outcome, err := svc.ProcessInbound(context.Background(), domain.InboundMessage{Sender: "+15551234567", Body: body})
		assert.ErrorIs(t, err, domain.ErrEmptyBody)
		assert.Nil(t, outcome)
	}

	repo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "LastEntries", mock.Anything, mock.Anything)
	notif.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestProcessInbound_LinkRequest(t *testing.T) {
	repo := new(MockSymptomLogRepository)
	notif := new(MockNotifier)
	svc := newTestService(repo, notif)

	repo.On("SheetURL").Return("https://docs.google.com/spreadsheets/d/sheet-abc")
	notif.On("Send", mock.Anything, "Your symptom log: https://docs.google.com/spreadsheets/d/sheet-abc").
		Return(okPush(), nil).Once()

	outcome, err := svc.ProcessInbound(context.Background(), domain.InboundMessage{Sender: "+15551234567", Body: "link please"})

	require.NoError(t, err)
	assert.Equal(t, domain.ActionSentLink, outcome.Action)
	notif.AssertExpectations(t)
}

func TestProcessInbound_LogEntry_RoundTrip(t *testing.T) {
	repo := new(MockSymptomLogRepository)
	notif := new(MockNotifier)
	svc := newTestService(repo, notif)

	var appended domain.SymptomEntry
	repo.On("Append", mock.Anything, mock.AnythingOfType("domain.SymptomEntry")).
		Run(func(args mock.Arguments) {
			appended = args.Get(1).(domain.SymptomEntry)
		}).
		Return(nil).Once()
	notif.On("Send", mock.Anything, "Logged.").Return(okPush(), nil).Once()

	outcome, err := svc.ProcessInbound(context.Background(), domain.InboundMessage{
		Sender: "+15551234567",
		Body:   "  Headache today, urgency 7  ",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ActionLoggedSymptom, outcome.Action)
	assert.Equal(t, 7, outcome.Urgency)

	// The stored row carries the trimmed body and the extracted urgency.
	assert.Equal(t, "Headache today, urgency 7", appended.Body)
	assert.Equal(t, 7, appended.Urgency)
	assert.Equal(t, "2026-08-27", appended.Date)
	assert.Equal(t, "14:30:05", appended.Time)

	repo.AssertExpectations(t)
	notif.AssertExpectations(t)
}

func TestProcessInbound_LogEntry_StoreFailurePropagates(t *testing.T) {
	repo := new(MockSymptomLogRepository)
	notif := new(MockNotifier)
	svc := newTestService(repo, notif)

	repo.On("Append", mock.Anything, mock.Anything).Return(errors.New("sheets API unavailable")).Once()

	outcome, err := svc.ProcessInbound(context.Background(), domain.InboundMessage{Body: "urgency 5"})

	assert.Nil(t, outcome)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sheets API unavailable")
	// No push after a failed append.
	notif.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestProcessInbound_Summary(t *testing.T) {
	repo := new(MockSymptomLogRepository)
	notif := new(MockNotifier)
	svc := newTestService(repo, notif)

	entries := []domain.SymptomEntry{
		{Date: "2026-08-24", Time: "08:00:00", Body: "neck pain", Urgency: 4},
		{Date: "2026-08-25", Time: "09:00:00", Body: "a migraine that lasted the whole afternoon", Urgency: 8},
		{Date: "2026-08-26", Time: "10:00:00", Body: "better today", Urgency: 1},
	}
	repo.On("LastEntries", mock.Anything, 3).Return(entries, nil).Once()

	expected := "Last 3 entries:\n" +
		"- 2026-08-24: neck pain (urgency 4)\n" +
		"- 2026-08-25: a migraine that lasted the who... (urgency 8)\n" +
		"- 2026-08-26: better today (urgency 1)"
	notif.On("Send", mock.Anything, expected).Return(okPush(), nil).Once()

	outcome, err := svc.ProcessInbound(context.Background(), domain.InboundMessage{Body: "Summary"})

	require.NoError(t, err)
	assert.Equal(t, domain.ActionSentSummary, outcome.Action)
	assert.Equal(t, 3, outcome.EntriesCount)
	repo.AssertExpectations(t)
	notif.AssertExpectations(t)
}

func TestFormatSummary_MultibyteBodyTruncatesOnRunes(t *testing.T) {
	// 28 ASCII runes + 3 multi-byte runes = 31 runes, so the body is cut
	// at 30 runes. A byte-based cut would split the 29th rune mid-sequence.
	body := strings.Repeat("a", 28) + "痛い痛"
	entry := domain.SymptomEntry{Date: "2026-08-27", Time: "10:00:00", Body: body, Urgency: 5}

	got := formatSummary([]domain.SymptomEntry{entry})

	want := "Last 1 entries:\n- 2026-08-27: " + strings.Repeat("a", 28) + "痛い... (urgency 5)"
	assert.Equal(t, want, got)
	assert.True(t, utf8.ValidString(got))
}

func TestProcessInbound_Summary_NoEntries(t *testing.T) {
	repo := new(MockSymptomLogRepository)
	notif := new(MockNotifier)
	svc := newTestService(repo, notif)

	repo.On("LastEntries", mock.Anything, 3).Return([]domain.SymptomEntry{}, nil).Once()
	notif.On("Send", mock.Anything, "No symptom entries recorded yet.").Return(okPush(), nil).Once()

	outcome, err := svc.ProcessInbound(context.Background(), domain.InboundMessage{Body: "summary"})

	require.NoError(t, err)
	assert.Equal(t, domain.ActionSentSummary, outcome.Action)
	assert.Equal(t, 0, outcome.EntriesCount)
	notif.AssertExpectations(t)
}

func TestProcessInbound_Summary_StoreFailurePropagates(t *testing.T) {
	repo := new(MockSymptomLogRepository)
	notif := new(MockNotifier)
	svc := newTestService(repo, notif)

	repo.On("LastEntries", mock.Anything, 3).Return(nil, errors.New("read timeout")).Once()

	outcome, err := svc.ProcessInbound(context.Background(), domain.InboundMessage{Body: "summary"})

	assert.Nil(t, outcome)
	require.Error(t, err)
	notif.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestProcessInbound_Unrecognized_SendsHelp(t *testing.T) {
	repo := new(MockSymptomLogRepository)
	notif := new(MockNotifier)
	svc := newTestService(repo, notif)

	notif.On("Send", mock.Anything, mock.MatchedBy(func(text string) bool {
		return strings.HasPrefix(text, "I didn't understand")
	})).Return(okPush(), nil).Once()

	outcome, err := svc.ProcessInbound(context.Background(), domain.InboundMessage{Body: "hello"})

	require.NoError(t, err)
	assert.Equal(t, domain.ActionSentHelp, outcome.Action)
	repo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "LastEntries", mock.Anything, mock.Anything)
	notif.AssertExpectations(t)
}

func TestProcessInbound_NotifierFailureStillReportsSuccess(t *testing.T) {
	repo := new(MockSymptomLogRepository)
	notif := new(MockNotifier)
	svc := newTestService(repo, notif)

	repo.On("Append", mock.Anything, mock.Anything).Return(nil).Once()
	notif.On("Send", mock.Anything, "Logged.").
		Return(&notifier.PushResult{PushID: "push-2", Success: false, StatusCode: 502, ErrorMessage: "push gateway returned status 502"}, nil).
		Once()

	outcome, err := svc.ProcessInbound(context.Background(), domain.InboundMessage{Body: "urgency 3"})

	// The action still succeeds; delivery failure is only logged.
	require.NoError(t, err)
	assert.Equal(t, domain.ActionLoggedSymptom, outcome.Action)
	assert.Equal(t, 3, outcome.Urgency)
}

func TestProcessInbound_ExactlyOnePushPerMessage(t *testing.T) {
	repo := new(MockSymptomLogRepository)
	notif := new(MockNotifier)
	svc := newTestService(repo, notif)

	repo.On("Append", mock.Anything, mock.Anything).Return(nil).Once()
	notif.On("Send", mock.Anything, mock.Anything).Return(okPush(), nil)

	_, err := svc.ProcessInbound(context.Background(), domain.InboundMessage{Body: "urgency 6"})

	require.NoError(t, err)
	notif.AssertNumberOfCalls(t, "Send", 1)
	repo.AssertNumberOfCalls(t, "Append", 1)
}

// --- TriggerDailyCheckIn ---

func TestTriggerDailyCheckIn_Success(t *testing.T) {
	repo := new(MockSymptomLogRepository)
	notif := new(MockNotifier)
	svc := newTestService(repo, notif)

	notif.On("Send", mock.Anything, "How were your symptoms today? Rate urgency (1-10) and describe.").
		Return(okPush(), nil).Once()

	err := svc.TriggerDailyCheckIn(context.Background())

	require.NoError(t, err)
	notif.AssertExpectations(t)
}

func TestTriggerDailyCheckIn_PushRejected(t *testing.T) {
	repo := new(MockSymptomLogRepository)
	notif := new(MockNotifier)
	svc := newTestService(repo, notif)

	notif.On("Send", mock.Anything, mock.Anything).
		Return(&notifier.PushResult{Success: false, StatusCode: 500, ErrorMessage: "push gateway returned status 500"}, nil).
		Once()

	err := svc.TriggerDailyCheckIn(context.Background())

	assert.ErrorIs(t, err, domain.ErrNotifierFailed)
}

func TestTriggerDailyCheckIn_TransportError(t *testing.T) {
	repo := new(MockSymptomLogRepository)
	notif := new(MockNotifier)
	svc := newTestService(repo, notif)

	notif.On("Send", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused")).Once()

	err := svc.TriggerDailyCheckIn(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

package notifier

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// MockNotifier is a simulated push backend for development. It logs the
// message instead of sending it and always reports success. main wires it in
// when no push URL is configured so the relay can run without a paired phone.
type MockNotifier struct {
	logger *slog.Logger
	name   string
}

// NewMockNotifier creates a new MockNotifier.
func NewMockNotifier(logger *slog.Logger, name string) Notifier {
	if name == "" {
		name = "mock-notifier"
	}
	return &MockNotifier{
		logger: logger.With("notifier", name),
		name:   name,
	}
}

func (n *MockNotifier) GetName() string {
	return n.name
}

func (n *MockNotifier) Send(ctx context.Context, text string) (*PushResult, error) {
	pushID := uuid.NewString()
	n.logger.InfoContext(ctx, "MockNotifier: push (simulated)", "push_id", pushID, "text", text)
	return &PushResult{
		PushID:     pushID,
		Success:    true,
		StatusCode: 200,
	}, nil
}

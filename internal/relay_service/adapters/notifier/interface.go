package notifier

import "context"

// PushResult holds the outcome of one push attempt.
type PushResult struct {
	// PushID is a client-generated UUID logged alongside the attempt so a
	// delivery can be correlated with gateway logs.
	PushID string
	// Success is true if the gateway accepted the push (HTTP 2xx). Accepted
	// means handed to the phone, not delivered to the recipient.
	Success bool
	// StatusCode is the HTTP status returned by the gateway, when one was
	// received.
	StatusCode int
	// ErrorMessage describes the failure when Success is false.
	ErrorMessage string
}

// Notifier is the interface for a push-to-phone SMS backend. Sends are
// best-effort: no retry, one attempt per call.
type Notifier interface {
	Send(ctx context.Context, text string) (*PushResult, error)
	GetName() string
}

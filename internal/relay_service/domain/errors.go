package domain

import "errors"

var (
	// ErrEmptyBody is returned when an inbound message body is empty after
	// trimming. No side effects are performed for such messages.
	ErrEmptyBody = errors.New("empty message body")

	// ErrNotifierFailed is returned when the push notifier reports a
	// non-success result for a send that must be surfaced to the caller.
	ErrNotifierFailed = errors.New("notifier push failed")
)

package repository

import (
	"context"

	"github.com/healthsms/relay/internal/relay_service/domain"
)

// SymptomLogRepository is the append-only tabular store backing the symptom
// log. The production implementation is a Google Sheet; tests substitute
// mocks.
type SymptomLogRepository interface {
	// Append adds one entry at the end of the log.
	Append(ctx context.Context, entry domain.SymptomEntry) error

	// LastEntries returns up to n of the most recent entries in
	// chronological order, fewer if the log holds fewer rows.
	LastEntries(ctx context.Context, n int) ([]domain.SymptomEntry, error)

	// SheetURL returns the public URL of the backing store. Pure string
	// construction, no network call.
	SheetURL() string
}

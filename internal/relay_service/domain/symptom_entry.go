package domain

import "time"

// Layouts for the date and time columns of the symptom log.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// SymptomEntry is one row of the symptom log. Entries are append-only:
// once written they are never updated or deleted, and row order is
// chronological order.
type SymptomEntry struct {
	Date    string `json:"date"`
	Time    string `json:"time"`
	Body    string `json:"body"`
	Urgency int    `json:"urgency"`
}

// NewSymptomEntry builds an entry for the given moment. Body is stored as
// received (already trimmed by the caller); Urgency is the 1-10 rating
// extracted from the message.
func NewSymptomEntry(now time.Time, body string, urgency int) SymptomEntry {
	return SymptomEntry{
		Date:    now.Format(DateLayout),
		Time:    now.Format(TimeLayout),
		Body:    body,
		Urgency: urgency,
	}
}

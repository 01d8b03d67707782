package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyMessage_LinkRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"lowercase", "link please"},
		{"uppercase", "LINK"},
		{"mixed case", "Send me the Link"},
		{"link beats number", "link, urgency 7"},
		{"link beats summary", "link and summary"},
		{"embedded", "hyperlink"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := ClassifyMessage(tt.body)
			assert.Equal(t, IntentLinkRequest, intent.Kind)
		})
	}
}

func TestClassifyMessage_SummaryRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"lowercase", "summary"},
		{"capitalized", "Summary"},
		{"summary beats number", "summary of the last 5 days"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := ClassifyMessage(tt.body)
			assert.Equal(t, IntentSummaryRequest, intent.Kind)
			assert.Equal(t, DefaultSummaryCount, intent.Count)
		})
	}
}

func TestClassifyMessage_LogEntry(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		urgency int
	}{
		{"single digit", "Headache today, urgency 7", 7},
		{"ten", "pain level 10 right now", 10},
		{"one", "mild, 1", 1},
		{"first standalone token wins", "slept 8 hours, urgency 3", 8},
		{"number with punctuation", "urgency: 9.", 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := ClassifyMessage(tt.body)
			assert.Equal(t, IntentLogEntry, intent.Kind)
			assert.Equal(t, tt.urgency, intent.Urgency)
		})
	}
}

func TestClassifyMessage_Unrecognized(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no keyword no number", "hello"},
		{"zero", "feeling a 0 today"},
		{"eleven", "pain is 11"},
		{"hundred", "took 100 steps"},
		{"digits inside token", "took 100mg of ibuprofen"},
		{"year", "since 2024 this has been going on"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := ClassifyMessage(tt.body)
			assert.Equal(t, IntentUnrecognized, intent.Kind)
		})
	}
}

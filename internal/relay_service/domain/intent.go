package domain

import (
	"regexp"
	"strconv"
	"strings"
)

// IntentKind classifies what an inbound message is asking for.
type IntentKind string

const (
	// IntentLinkRequest asks for the public URL of the symptom log.
	IntentLinkRequest IntentKind = "link_request"
	// IntentSummaryRequest asks for the most recent log entries.
	IntentSummaryRequest IntentKind = "summary_request"
	// IntentLogEntry reports a symptom with an urgency rating to record.
	IntentLogEntry IntentKind = "log_entry"
	// IntentUnrecognized is anything the relay does not understand.
	IntentUnrecognized IntentKind = "unrecognized"
)

// DefaultSummaryCount is the fixed number of entries returned for a
// summary request.
const DefaultSummaryCount = 3

// Intent is the classified purpose of an inbound message. Count is set for
// summary requests, Urgency for log entries.
type Intent struct {
	Kind    IntentKind
	Count   int
	Urgency int
}

// urgencyPattern matches the first standalone 1-10 token: "10", or a single
// digit 1-9, bounded by word boundaries. "0", "11" and digits embedded in
// larger tokens ("100mg") do not match.
var urgencyPattern = regexp.MustCompile(`\b(10|[1-9])\b`)

// ClassifyMessage maps raw message text to an Intent. Matching is
// case-insensitive and checked in fixed priority order: "link" wins over
// "summary", which wins over urgency extraction. Callers are expected to
// reject empty bodies before classification.
func ClassifyMessage(body string) Intent {
	lower := strings.ToLower(body)

	if strings.Contains(lower, "link") {
		return Intent{Kind: IntentLinkRequest}
	}

	if strings.Contains(lower, "summary") {
		return Intent{Kind: IntentSummaryRequest, Count: DefaultSummaryCount}
	}

	if m := urgencyPattern.FindString(body); m != "" {
		urgency, err := strconv.Atoi(m)
		if err == nil {
			return Intent{Kind: IntentLogEntry, Urgency: urgency}
		}
	}

	return Intent{Kind: IntentUnrecognized}
}

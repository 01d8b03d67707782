package domain

// InboundMessage is an SMS forwarded from the paired Android phone.
// It only lives for the duration of one webhook request.
type InboundMessage struct {
	Sender string
	Body   string
}

// Action tags the side effect performed for an inbound message. The values
// are surfaced verbatim in the webhook response.
type Action string

const (
	ActionSentLink      Action = "sent_link"
	ActionSentSummary   Action = "sent_summary"
	ActionLoggedSymptom Action = "logged_symptom"
	ActionSentHelp      Action = "sent_help"
)

// DispatchOutcome reports what the relay did with an inbound message.
// EntriesCount is set for sent_summary, Urgency for logged_symptom.
type DispatchOutcome struct {
	Action       Action
	EntriesCount int
	Urgency      int
}

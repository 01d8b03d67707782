package http

// AndroidWebhookRequest is the payload Tasker posts for each forwarded SMS.
type AndroidWebhookRequest struct {
	// Sender is the phone number the SMS came from. Optional; "unknown"
	// is assumed when absent.
	Sender string `json:"sender" validate:"omitempty,max=32"`

	// Body is the SMS text. Emptiness after trimming is checked by the
	// app service so that whitespace-only bodies are rejected too.
	Body string `json:"body" validate:"required"`
}

// AndroidWebhookResponse reports the action taken for an inbound SMS.
type AndroidWebhookResponse struct {
	Status       string `json:"status"`
	Action       string `json:"action"`
	EntriesCount *int   `json:"entries_count,omitempty"`
	Urgency      *int   `json:"urgency,omitempty"`
}

// CronResponse is returned by the daily check-in trigger endpoint.
type CronResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// GenericErrorResponse for API errors
type GenericErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

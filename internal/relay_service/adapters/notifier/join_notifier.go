package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// JoinNotifier triggers an outbound SMS through a Join/AutoRemote push URL.
// The push wakes a Tasker task on the paired Android phone, which sends the
// actual SMS. The message rides in a url-encoded "text" query parameter on a
// plain GET request.
type JoinNotifier struct {
	logger     *slog.Logger
	httpClient *http.Client
	pushURL    string
}

// NewJoinNotifier creates a JoinNotifier for the given push URL. If
// httpClient is nil a client with a 10 second timeout is used.
func NewJoinNotifier(logger *slog.Logger, pushURL string, httpClient *http.Client) *JoinNotifier {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &JoinNotifier{
		logger:     logger.With("notifier", "join"),
		httpClient: httpClient,
		pushURL:    pushURL,
	}
}

func (n *JoinNotifier) GetName() string {
	return "join"
}

// Send pushes text to the phone. One attempt, bounded by the client timeout;
// a non-2xx gateway response is reported as an unsuccessful PushResult rather
// than an error.
func (n *JoinNotifier) Send(ctx context.Context, text string) (*PushResult, error) {
	pushID := uuid.NewString()
	logger := n.logger.With("push_id", pushID)

	// The configured push URL may already carry query parameters.
	separator := "?"
	if strings.Contains(n.pushURL, "?") {
		separator = "&"
	}
	q := url.Values{}
	q.Set("text", text)
	fullURL := n.pushURL + separator + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to build push request", "error", err)
		return nil, fmt.Errorf("build push request: %w", err)
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		logger.ErrorContext(ctx, "Push request failed", "error", err)
		return nil, fmt.Errorf("push request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errMsg := fmt.Sprintf("push gateway returned status %d", resp.StatusCode)
		logger.WarnContext(ctx, "Push rejected by gateway", "status_code", resp.StatusCode)
		return &PushResult{
			PushID:       pushID,
			Success:      false,
			StatusCode:   resp.StatusCode,
			ErrorMessage: errMsg,
		}, nil
	}

	logger.InfoContext(ctx, "Push accepted by gateway", "status_code", resp.StatusCode, "text_len", len(text))
	return &PushResult{
		PushID:     pushID,
		Success:    true,
		StatusCode: resp.StatusCode,
	}, nil
}

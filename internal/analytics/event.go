package analytics

import (
	"context"
	"fmt"

	"github.com/theopenlane/httpsling"
)

// Event is one analysis outcome reported to the analytics webhook. The
// payload never carries the keyphrase or page content, only metadata
// about the run.
type Event struct {
	// Event is the event name, e.g. analysis_completed or analysis_failed
	Event string `json:"event"`
	// URL is the analyzed page URL
	URL string `json:"url"`
	// Success reports whether the analysis produced a report
	Success bool `json:"success"`
	// DurationMS is the analysis wall time in milliseconds
	DurationMS int64 `json:"duration_ms"`
	// Score is the overall score when the analysis succeeded
	Score int `json:"score,omitempty"`
	// Timestamp is the event time in RFC3339
	Timestamp string `json:"timestamp"`
}

// Emit posts an event to the configured analytics webhook
func (c *Client) Emit(ctx context.Context, event Event) error {
	requester := httpsling.MustNew(
		httpsling.URL(c.webhookURL),
		httpsling.Post(),
		httpsling.JSONBody(event),
		httpsling.WithHTTPClient(c.httpClient),
	)

	resp, err := requester.SendWithContext(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close error is non-critical

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	return nil
}

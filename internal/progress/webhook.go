package progress

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"
)

// WebhookNotifier pushes review events to an external progress-tracking
// service. Delivery is retried on transient failures; the scheduling core
// never retries, so the policy lives here.
type WebhookNotifier struct {
	httpClient       *resty.Client
	maxRetryAttempts uint
}

// NewWebhookNotifier creates a notifier posting to baseURL.
func NewWebhookNotifier(baseURL string, retryAttempts uint) *WebhookNotifier {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Content-Type", "application/json")

	return &WebhookNotifier{
		httpClient:       client,
		maxRetryAttempts: retryAttempts,
	}
}

// Close releases the underlying HTTP client.
func (n *WebhookNotifier) Close() error {
	return n.httpClient.Close()
}

type eventPayload struct {
	LearnerID    string   `json:"learner_id"`
	Topic        string   `json:"topic"`
	ActivityType string   `json:"activity_type"`
	Performance  float64  `json:"performance"`
	Confidence   *float64 `json:"confidence,omitempty"`
}

// ReviewRecorded delivers the event to the webhook endpoint.
func (n *WebhookNotifier) ReviewRecorded(ctx context.Context, event Event) error {
	return retry.Do(
		func() error {
			err := n.post(ctx, event)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(n.maxRetryAttempts+1),
		retry.DelayType(func(attempt uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(attempt, err, config)
		}),
	)
}

func (n *WebhookNotifier) post(ctx context.Context, event Event) error {
	response, err := n.httpClient.R().
		SetContext(ctx).
		SetBody(eventPayload{
			LearnerID:    event.LearnerID,
			Topic:        event.Topic,
			ActivityType: event.ActivityType,
			Performance:  event.Performance,
			Confidence:   event.Confidence,
		}).
		Post("/events")
	if err != nil {
		return fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}
	return nil
}

// isRetryableError determines if a delivery failure should trigger a retry.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()

	// Retry on network-related errors
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout") {
		return true
	}

	// Retry on 5xx errors (server errors)
	if strings.Contains(errStr, "response error 5") {
		return true
	}

	// Retry on rate limiting (429)
	if strings.Contains(errStr, "response error 429") {
		return true
	}

	return false
}

package alert

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type webhookSink struct {
	client *http.Client
	url    string
}

// NewWebhookSink POSTs the notification as JSON to an operator-provided URL.
func NewWebhookSink(url string) Sink {
	return &webhookSink{
		client: &http.Client{Timeout: 5 * time.Second},
		url:    url,
	}
}

func (w *webhookSink) Name() string {
	return "webhook"
}

func (w *webhookSink) Dispatch(ctx context.Context, notification Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("webhookSink.Dispatch encoding payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("webhookSink.Dispatch creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhookSink.Dispatch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhookSink.Dispatch: webhook returned status %d", resp.StatusCode)
	}
	return nil
}

package alert

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const spryngEndpoint = "https://rest.spryngsms.com/v1/messages"

type spryngSink struct {
	client     *http.Client
	token      string
	recipients []string
}

// NewSpryngSink sends notifications as SMS through the Spryng gateway.
func NewSpryngSink(token string, recipients []string) Sink {
	return &spryngSink{
		client:     &http.Client{Timeout: 5 * time.Second},
		token:      token,
		recipients: recipients,
	}
}

func (s *spryngSink) Name() string {
	return "spryng"
}

func (s *spryngSink) Dispatch(ctx context.Context, notification Notification) error {
	payload, err := json.Marshal(map[string]interface{}{
		"body":       notification.Message,
		"encoding":   "auto",
		"originator": "watchdog",
		"recipients": s.recipients,
		"route":      "business",
	})
	if err != nil {
		return fmt.Errorf("spryngSink.Dispatch encoding payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, spryngEndpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("spryngSink.Dispatch creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("spryngSink.Dispatch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("spryngSink.Dispatch: gateway returned status %d", resp.StatusCode)
	}
	return nil
}

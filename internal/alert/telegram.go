package alert

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

type telegramSink struct {
	client *http.Client
	token  string
	chat   string
}

// NewTelegramSink sends notifications through the Telegram bot API.
func NewTelegramSink(token string, chat string) Sink {
	return &telegramSink{
		client: &http.Client{Timeout: 5 * time.Second},
		token:  token,
		chat:   chat,
	}
}

func (t *telegramSink) Name() string {
	return "telegram"
}

func (t *telegramSink) Dispatch(ctx context.Context, notification Notification) error {
	query := url.Values{}
	query.Set("chat_id", t.chat)
	query.Set("text", notification.Message)
	endpoint := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage?%s", t.token, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("telegramSink.Dispatch creating request: %w", err)
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("telegramSink.Dispatch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("telegramSink.Dispatch: telegram API returned status %d", resp.StatusCode)
	}
	return nil
}

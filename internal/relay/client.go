package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"watchdog/internal/config"
)

var ErrUnauthorized = errors.New("server rejected the API token")

// GroupStatus is one group cycle outcome on the wire, status "ok" or "fail".
type GroupStatus struct {
	Group  string `json:"group"`
	Status string `json:"status"`
}

const (
	StatusOK   = "ok"
	StatusFail = "fail"
)

// ServerClient is the relay's view of the watchdog server API.
type ServerClient interface {
	FetchConfig(ctx context.Context) (*config.Config, error)
	PushResults(ctx context.Context, region string, results []GroupStatus) error
}

type serverClient struct {
	client  *http.Client
	baseURL string
	token   string
}

func NewServerClient(baseURL string, token string, requestTimeout time.Duration) ServerClient {
	return &serverClient{
		client: &http.Client{
			Timeout: requestTimeout,
		},
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
	}
}

func (s *serverClient) FetchConfig(ctx context.Context) (*config.Config, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/v1/config", nil)
	if err != nil {
		return nil, fmt.Errorf("ServerClient.FetchConfig creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ServerClient.FetchConfig: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ServerClient.FetchConfig: unexpected status %d", resp.StatusCode)
	}

	var cfg config.Config
	if err = json.NewDecoder(resp.Body).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("ServerClient.FetchConfig decoding body: %w", err)
	}
	return &cfg, nil
}

func (s *serverClient) PushResults(ctx context.Context, region string, results []GroupStatus) error {
	payload, err := json.Marshal(struct {
		Results []GroupStatus `json:"results"`
	}{Results: results})
	if err != nil {
		return fmt.Errorf("ServerClient.PushResults encoding body: %w", err)
	}

	endpoint := s.baseURL + "/api/v1/relay/" + url.PathEscape(region)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("ServerClient.PushResults creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("ServerClient.PushResults: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("ServerClient.PushResults: unexpected status %d", resp.StatusCode)
	}
	return nil
}

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"watchdog/internal/server/api/dto/response"
)

var ErrUnauthorized = errors.New("server rejected the API token")

// ServerClient is the operator's view of the watchdog server API.
type ServerClient interface {
	Status(ctx context.Context) (response.StatusResponse, error)
	Incidents(ctx context.Context) (response.IncidentsResponse, error)
	TestAlerting(ctx context.Context) error
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

func (s *serverClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("ServerClient.get creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("ServerClient.get: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ServerClient.get %s: unexpected status %d", path, resp.StatusCode)
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("ServerClient.get %s decoding body: %w", path, err)
	}
	return nil
}

func (s *serverClient) Status(ctx context.Context) (response.StatusResponse, error) {
	var status response.StatusResponse
	err := s.get(ctx, "/api/v1/status", &status)
	return status, err
}

func (s *serverClient) Incidents(ctx context.Context) (response.IncidentsResponse, error) {
	var incidents response.IncidentsResponse
	err := s.get(ctx, "/api/v1/incidents", &incidents)
	return incidents, err
}

func (s *serverClient) TestAlerting(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/v1/alerting/test", nil)
	if err != nil {
		return fmt.Errorf("ServerClient.TestAlerting creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("ServerClient.TestAlerting: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("ServerClient.TestAlerting: unexpected status %d", resp.StatusCode)
	}
	return nil
}

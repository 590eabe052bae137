package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type httpProber struct {
	client *http.Client
}

// NewHTTPProber issues a GET against the target and succeeds on any 2xx or
// 3xx status. A bare host is probed over plain HTTP, matching the relay
// config format ("http example.org").
func NewHTTPProber(timeout time.Duration) Prober {
	return &httpProber{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (p *httpProber) Check(ctx context.Context, target string) error {
	url := target
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "http://" + url
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("httpProber.Check creating request: %w", err)
	}
	req.Header.Set("User-Agent", "watchdog-relay")
	req.Header.Set("Cache-Control", "no-store")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("httpProber.Check: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		return nil
	}
	return fmt.Errorf("httpProber.Check: unexpected status %d from %s", resp.StatusCode, target)
}

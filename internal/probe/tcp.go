package probe

import (
	"context"
	"fmt"
	"net"
	"time"
)

type tcpProber struct {
	dialer *net.Dialer
}

// NewTCPProber succeeds when a TCP connection to "host:port" is established
// within the timeout.
func NewTCPProber(timeout time.Duration) Prober {
	return &tcpProber{
		dialer: &net.Dialer{Timeout: timeout},
	}
}

func (p *tcpProber) Check(ctx context.Context, target string) error {
	conn, err := p.dialer.DialContext(ctx, "tcp", target)
	if err != nil {
		return fmt.Errorf("tcpProber.Check: %w", err)
	}
	return conn.Close()
}

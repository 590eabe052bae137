package probe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"time"
)

// Raw ICMP needs CAP_NET_RAW, which a relay usually does not have. The ping
// probe instead attempts TCP connections to a set of well-known low ports
// and treats any answer from the host (accept or refuse) as reachability.
var pingPorts = []string{"80", "443", "22"}

type pingProber struct {
	dialer *net.Dialer
}

func NewPingProber(timeout time.Duration) Prober {
	return &pingProber{
		dialer: &net.Dialer{Timeout: timeout},
	}
}

func (p *pingProber) Check(ctx context.Context, target string) error {
	var lastErr error
	for _, port := range pingPorts {
		conn, err := p.dialer.DialContext(ctx, "tcp", net.JoinHostPort(target, port))
		if err == nil {
			return conn.Close()
		}
		// A refused connection still proves the host answered.
		if errors.Is(err, syscall.ECONNREFUSED) {
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("pingProber.Check: host %s unreachable: %w", target, lastErr)
}

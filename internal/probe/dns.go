package probe

import (
	"context"
	"fmt"
	"net"
	"time"
)

type dnsProber struct {
	resolver *net.Resolver
	timeout  time.Duration
}

// NewDNSProber resolves the target hostname and succeeds when at least one
// A or AAAA record comes back within the timeout.
func NewDNSProber(timeout time.Duration) Prober {
	return &dnsProber{
		resolver: net.DefaultResolver,
		timeout:  timeout,
	}
}

func (p *dnsProber) Check(ctx context.Context, target string) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	addrs, err := p.resolver.LookupIPAddr(ctx, target)
	if err != nil {
		return fmt.Errorf("dnsProber.Check: %w", err)
	}
	if len(addrs) == 0 {
		return fmt.Errorf("dnsProber.Check: no A/AAAA records for %s", target)
	}
	return nil
}

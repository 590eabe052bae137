// Package probe implements the reachability checks a relay runs against
// its targets. Every probe follows the same contract: a bounded check that
// returns nil on success and an error describing the failure otherwise.
package probe

import (
	"context"
	"fmt"
	"time"

	"watchdog/internal/config"
)

// Prober is a single reachability check against one target.
type Prober interface {
	Check(ctx context.Context, target string) error
}

// ForTest returns the prober matching a test definition.
func ForTest(test config.Test) (Prober, error) {
	switch test.Kind {
	case config.KindHTTP:
		return NewHTTPProber(test.Timeout), nil
	case config.KindDNS:
		return NewDNSProber(test.Timeout), nil
	case config.KindTCP:
		return NewTCPProber(test.Timeout), nil
	case config.KindPing:
		return NewPingProber(test.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown probe kind %q", test.Kind)
	}
}

// Outcome is the aggregated result of one group cycle.
type Outcome struct {
	Group     string
	OK        bool
	Timestamp time.Time
}

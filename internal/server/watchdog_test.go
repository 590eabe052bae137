package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"watchdog/internal/config"
	"watchdog/internal/server/state"
)

const watchdogTestConfig = `
regions:
  - name: eu-west
    interval: 10ms
    threshold: 2
    groups:
      - name: core
        tests: [http example.org]
`

func newWatchdogStore(t *testing.T) *state.Store {
	t.Helper()
	cfg, err := config.Parse([]byte(watchdogTestConfig))
	require.NoError(t, err)
	store := state.NewStore(zap.NewNop(), nil)
	store.Init(cfg)
	return store
}

func TestLivenessWatchdog_MarksSilentRegionDown(t *testing.T) {
	store := newWatchdogStore(t)
	require.NoError(t, store.Ingest("eu-west", []state.GroupResult{{Group: "core", OK: true}}))

	watchdog := NewLivenessWatchdog(zap.NewNop(), store, 5*time.Millisecond)
	watchdog.Start()
	defer watchdog.Stop()

	assert.Eventually(t, func() bool {
		for _, region := range store.Summary().Regions {
			if region.Name == "eu-west" {
				return region.Status == state.RegionDown
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)
}

func TestLivenessWatchdog_StopIsIdempotent(t *testing.T) {
	watchdog := NewLivenessWatchdog(zap.NewNop(), newWatchdogStore(t), 5*time.Millisecond)
	watchdog.Start()

	done := make(chan struct{})
	go func() {
		watchdog.Stop()
		watchdog.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked on a second call")
	}
}

package server

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"watchdog/internal/server/state"
)

// LivenessWatchdog periodically advances the silence accounting of every
// region so relays that stop pushing are eventually marked down.
type LivenessWatchdog interface {
	Start()
	Stop()
}

type livenessWatchdog struct {
	ticker   *time.Ticker
	logger   *zap.Logger
	stopChan chan struct{}
	stopOnce sync.Once
	store    *state.Store
	interval time.Duration
}

func (w *livenessWatchdog) Start() {
	go func() {
		w.ticker = time.NewTicker(w.interval)
		for {
			select {
			case <-w.ticker.C:
				w.store.LivenessTick(time.Now())
			case <-w.stopChan:
				w.ticker.Stop()
				return
			}
		}
	}()
	w.logger.Info("liveness watchdog is up", zap.Duration("interval", w.interval))
}

func (w *livenessWatchdog) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopChan)
	})
}

func NewLivenessWatchdog(logger *zap.Logger, store *state.Store, interval time.Duration) LivenessWatchdog {
	return &livenessWatchdog{
		logger:   logger,
		stopChan: make(chan struct{}),
		store:    store,
		interval: interval,
	}
}

package alert

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const dispatchTimeout = 5 * time.Second

// Manager routes notifications to sinks. Delivery failures are logged and
// never propagate to state transitions.
type Manager struct {
	logger *zap.Logger
	sinks  map[string]Sink
}

func NewManager(logger *zap.Logger, sinks ...Sink) *Manager {
	manager := &Manager{
		logger: logger,
		sinks:  make(map[string]Sink),
	}
	for _, sink := range sinks {
		manager.sinks[sink.Name()] = sink
	}
	return manager
}

// Has reports whether a medium with the given name is configured.
func (m *Manager) Has(name string) bool {
	_, found := m.sinks[name]
	return found
}

// Dispatch sends the notification to the requested mediums, or to every
// configured medium when the list is empty.
func (m *Manager) Dispatch(ctx context.Context, notification Notification, mediums []string) {
	targets := mediums
	if len(targets) == 0 {
		targets = make([]string, 0, len(m.sinks))
		for name := range m.sinks {
			targets = append(targets, name)
		}
	}

	for _, name := range targets {
		sink, found := m.sinks[name]
		if !found {
			m.logger.Warn("alert medium not configured", zap.String("medium", name))
			continue
		}
		dispatchCtx, cancel := context.WithTimeout(ctx, dispatchTimeout)
		err := sink.Dispatch(dispatchCtx, notification)
		cancel()
		if err != nil {
			m.logger.Error("failed to dispatch alert",
				zap.String("medium", name),
				zap.String("subject", notification.Subject),
				zap.Error(fmt.Errorf("Manager.Dispatch: %w", err)))
			continue
		}
		m.logger.Info("alert dispatched",
			zap.String("medium", name),
			zap.String("subject", notification.Subject))
	}
}

// TestAll fires one test notification per configured medium and returns the
// first delivery error, if any.
func (m *Manager) TestAll(ctx context.Context) error {
	var firstErr error
	for name, sink := range m.sinks {
		m.logger.Info("triggering test alert", zap.String("medium", name))
		dispatchCtx, cancel := context.WithTimeout(ctx, dispatchTimeout)
		err := sink.Dispatch(dispatchCtx, Notification{
			Message:   "This is a watchdog monitoring test message",
			Kind:      "test",
			Subject:   "watchdog",
			Timestamp: time.Now(),
		})
		cancel()
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("medium %s: %w", name, err)
		}
	}
	return firstErr
}

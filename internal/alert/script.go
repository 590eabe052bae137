package alert

import (
	"context"
	"fmt"
	"os/exec"
)

type scriptSink struct {
	path string
}

// NewScriptSink executes a local command with the incident message as its
// single argument.
func NewScriptSink(path string) Sink {
	return &scriptSink{
		path: path,
	}
}

func (s *scriptSink) Name() string {
	return "script"
}

func (s *scriptSink) Dispatch(ctx context.Context, notification Notification) error {
	cmd := exec.CommandContext(ctx, s.path, notification.Message)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("scriptSink.Dispatch running %s: %w (output: %s)", s.path, err, output)
	}
	return nil
}

// Package alert fans incident notifications out to the configured mediums.
// The state machine only sees the narrow Sink contract; concrete mediums
// are built from environment variables at startup.
package alert

import (
	"context"
	"time"
)

// Notification is the medium-independent view of an incident event.
type Notification struct {
	Message   string    `json:"message"`
	Kind      string    `json:"kind"`
	Subject   string    `json:"subject"`
	Timestamp time.Time `json:"timestamp"`
}

// Sink delivers one notification to a single medium.
type Sink interface {
	Name() string
	Dispatch(ctx context.Context, notification Notification) error
}

package relay

import (
	"sync"

	"watchdog/internal/probe"
)

// DefaultBatchCap bounds how many unpushed outcomes are retained per group
// while the server is unreachable; older outcomes are dropped first.
const DefaultBatchCap = 16

// Batch holds per-group cycle outcomes that still await a successful push.
type Batch struct {
	mu      sync.Mutex
	cap     int
	pending map[string][]probe.Outcome
}

func NewBatch(capacity int) *Batch {
	if capacity <= 0 {
		capacity = DefaultBatchCap
	}
	return &Batch{
		cap:     capacity,
		pending: make(map[string][]probe.Outcome),
	}
}

// Add appends an outcome to its group queue, evicting the oldest entry when
// the queue is full.
func (b *Batch) Add(outcome probe.Outcome) {
	b.mu.Lock()
	defer b.mu.Unlock()

	queue := b.pending[outcome.Group]
	if len(queue) >= b.cap {
		queue = queue[1:]
	}
	b.pending[outcome.Group] = append(queue, outcome)
}

// Pending returns a copy of the queued outcomes for one group.
func (b *Batch) Pending(group string) []probe.Outcome {
	b.mu.Lock()
	defer b.mu.Unlock()

	queue := b.pending[group]
	snapshot := make([]probe.Outcome, len(queue))
	copy(snapshot, queue)
	return snapshot
}

// Ack removes the n oldest outcomes of a group after a successful push.
func (b *Batch) Ack(group string, n int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	queue := b.pending[group]
	if n >= len(queue) {
		delete(b.pending, group)
		return
	}
	b.pending[group] = queue[n:]
}

// Drop discards every queued outcome of a group that left the config.
func (b *Batch) Drop(group string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.pending, group)
}

// Groups lists the groups that currently have queued outcomes.
func (b *Batch) Groups() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	groups := make([]string, 0, len(b.pending))
	for group := range b.pending {
		groups = append(groups, group)
	}
	return groups
}

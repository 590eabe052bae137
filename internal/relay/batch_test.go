package relay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"watchdog/internal/probe"
)

func outcome(group string, ok bool) probe.Outcome {
	return probe.Outcome{
		Group:     group,
		OK:        ok,
		Timestamp: time.Now(),
	}
}

func TestBatch_AddAndPending(t *testing.T) {
	batch := NewBatch(4)
	batch.Add(outcome("core", true))
	batch.Add(outcome("core", false))
	batch.Add(outcome("edge", true))

	core := batch.Pending("core")
	require.Len(t, core, 2)
	assert.True(t, core[0].OK)
	assert.False(t, core[1].OK)

	assert.Len(t, batch.Pending("edge"), 1)
	assert.Empty(t, batch.Pending("ghost"))
}

// The retention bound keeps only the most recent outcomes per group, so a
// long server outage cannot grow memory without limit.
func TestBatch_CapEvictsOldest(t *testing.T) {
	batch := NewBatch(3)
	for i := 0; i < 10; i++ {
		batch.Add(outcome("core", i >= 7))
	}

	pending := batch.Pending("core")
	require.Len(t, pending, 3)
	for _, entry := range pending {
		assert.True(t, entry.OK, "only the last three outcomes should remain")
	}
}

func TestBatch_Ack(t *testing.T) {
	batch := NewBatch(8)
	for i := 0; i < 5; i++ {
		batch.Add(outcome("core", false))
	}
	batch.Add(outcome("core", true))

	batch.Ack("core", 5)
	pending := batch.Pending("core")
	require.Len(t, pending, 1)
	assert.True(t, pending[0].OK)

	batch.Ack("core", 10)
	assert.Empty(t, batch.Pending("core"))
}

func TestBatch_DropAndGroups(t *testing.T) {
	batch := NewBatch(8)
	batch.Add(outcome("core", true))
	batch.Add(outcome("edge", true))

	assert.ElementsMatch(t, []string{"core", "edge"}, batch.Groups())

	batch.Drop("edge")
	assert.ElementsMatch(t, []string{"core"}, batch.Groups())
	assert.Empty(t, batch.Pending("edge"))
}

func TestBatch_PendingReturnsCopy(t *testing.T) {
	batch := NewBatch(8)
	batch.Add(outcome("core", true))

	snapshot := batch.Pending("core")
	snapshot[0].OK = false

	assert.True(t, batch.Pending("core")[0].OK)
}

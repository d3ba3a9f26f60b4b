package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotAt(sec int) *Snapshot {
	return &Snapshot{CapturedAt: time.Unix(int64(sec), 0)}
}

func TestDrainLatestReturnsNewest(t *testing.T) {
	q := NewSnapshotQueue(8)
	q.Publish(snapshotAt(1))
	q.Publish(snapshotAt(2))

	latest, ok := q.DrainLatest()

	require.True(t, ok)
	assert.Equal(t, time.Unix(2, 0), latest.CapturedAt)
	assert.Zero(t, q.Len(), "drain must empty the queue")
}

func TestDrainLatestEmpty(t *testing.T) {
	q := NewSnapshotQueue(8)
	latest, ok := q.DrainLatest()
	assert.False(t, ok)
	assert.Nil(t, latest)
}

func TestPublishNeverBlocksWhenFull(t *testing.T) {
	q := NewSnapshotQueue(2)
	for i := 1; i <= 10; i++ {
		q.Publish(snapshotAt(i))
	}

	latest, ok := q.DrainLatest()
	require.True(t, ok)
	assert.Equal(t, time.Unix(10, 0), latest.CapturedAt,
		"overflow discards oldest, newest survives")
}

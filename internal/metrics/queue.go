package metrics

// SnapshotQueue is the handoff between the sampler and the presenter. It
// decouples the two cadences: the sampler publishes without ever blocking,
// and the presenter drains whatever has accumulated on its own tick.
type SnapshotQueue struct {
	ch chan *Snapshot
}

// NewSnapshotQueue returns a queue holding at most capacity pending
// snapshots.
func NewSnapshotQueue(capacity int) *SnapshotQueue {
	if capacity < 1 {
		capacity = 1
	}
	return &SnapshotQueue{ch: make(chan *Snapshot, capacity)}
}

// Publish enqueues a snapshot without blocking. When the buffer is full the
// oldest pending snapshot is discarded first; the presenter only ever applies
// the freshest one, so older entries carry no information worth waiting for.
func (q *SnapshotQueue) Publish(s *Snapshot) {
	for {
		select {
		case q.ch <- s:
			return
		default:
		}
		select {
		case <-q.ch:
		default:
		}
	}
}

// DrainLatest removes every pending snapshot and returns the newest, or
// (nil, false) when nothing is queued. Never blocks.
func (q *SnapshotQueue) DrainLatest() (*Snapshot, bool) {
	var latest *Snapshot
	for {
		select {
		case s := <-q.ch:
			latest = s
		default:
			return latest, latest != nil
		}
	}
}

// Len reports how many snapshots are currently pending.
func (q *SnapshotQueue) Len() int {
	return len(q.ch)
}

package engine

import (
	"errors"
	"sync"

	"niri-workspaces/internal/workspaces"
)

// ErrDeliveryClosed is returned by Push once the consumer has gone away.
var ErrDeliveryClosed = errors.New("snapshot consumer is gone")

// Queue hands snapshots from the sync loop to the presentation layer. It is
// an unbounded FIFO with one producer and one consumer: Push never blocks,
// Pop blocks until a snapshot is available.
type Queue struct {
	mu       sync.Mutex
	cond     *sync.Cond
	items    []workspaces.Snapshot
	closed   bool
	detached bool
}

func NewQueue() *Queue {
	q := &Queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push appends a snapshot. It fails only after Close or Detach.
func (q *Queue) Push(s workspaces.Snapshot) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed || q.detached {
		return ErrDeliveryClosed
	}
	q.items = append(q.items, s)
	q.cond.Signal()
	return nil
}

// Pop removes the oldest snapshot, waiting for one if the queue is empty.
// It returns false once the queue is closed and drained, or detached.
func (q *Queue) Pop() (workspaces.Snapshot, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 && !q.closed && !q.detached {
		q.cond.Wait()
	}
	if q.detached || len(q.items) == 0 {
		return nil, false
	}
	s := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return s, true
}

// Len returns the number of pending snapshots.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Close is called by the producer when no more snapshots will come. Pending
// snapshots can still be popped.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.cond.Broadcast()
}

// Detach is called by the consumer when it stops draining. Pending snapshots
// are dropped and later pushes fail.
func (q *Queue) Detach() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.detached = true
	q.items = nil
	q.cond.Broadcast()
}

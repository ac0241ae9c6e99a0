package services

import "sync"

// jobQueue is an unbounded FIFO of job IDs shared by the worker pool.
// Push never blocks; Pop blocks until an item arrives or the queue closes.
type jobQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []string
	closed bool
}

func newJobQueue() *jobQueue {
	q := &jobQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push appends id. It returns false once the queue is closed.
func (q *jobQueue) Push(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	q.items = append(q.items, id)
	q.cond.Signal()
	return true
}

// Pop removes the oldest id, waiting for one if the queue is empty.
// It returns false when the queue is closed.
func (q *jobQueue) Pop() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 && !q.closed {
		q.cond.Wait()
	}
	if q.closed {
		return "", false
	}
	id := q.items[0]
	q.items[0] = ""
	q.items = q.items[1:]
	return id, true
}

// Close wakes every waiting Pop and returns the ids that never ran.
func (q *jobQueue) Close() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil
	}
	q.closed = true
	remaining := q.items
	q.items = nil
	q.cond.Broadcast()
	return remaining
}

func (q *jobQueue) isClosed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// Len returns the number of queued ids.
func (q *jobQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

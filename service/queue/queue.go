// Package queue implements the scheduler's ready queue: a strict FIFO
// sequence of job handles. Insertion order is the scheduling order; there
// is no priority dimension.
package queue

import (
	"errors"
	"sync"

	"github.com/viant/yieldly/model/job"
)

// ErrEmpty is returned by Pop and Peek when the queue holds no handles.
var ErrEmpty = errors.New("queue: empty")

const minCapacity = 8

// Queue is a growable ring buffer of job handles. Unlike a plain slice
// with a moving head index, the ring reuses freed slots, so a long-lived
// scheduler never accumulates unbounded backing storage behind the head.
// All operations are O(1) (amortised for Push).
type Queue struct {
	mu    sync.Mutex
	items []job.Handle
	head  int
	size  int
}

// New creates an empty ready queue.
func New() *Queue {
	return &Queue{items: make([]job.Handle, minCapacity)}
}

// Push appends h to the tail.
func (q *Queue) Push(h job.Handle) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.size == len(q.items) {
		q.grow()
	}
	q.items[(q.head+q.size)%len(q.items)] = h
	q.size++
}

// Pop removes and returns the head, or ErrEmpty.
func (q *Queue) Pop() (job.Handle, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.size == 0 {
		return job.Handle{}, ErrEmpty
	}
	h := q.items[q.head]
	q.items[q.head] = job.Handle{}
	q.head = (q.head + 1) % len(q.items)
	q.size--
	return h, nil
}

// Peek returns the head without removing it, or ErrEmpty.
func (q *Queue) Peek() (job.Handle, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.size == 0 {
		return job.Handle{}, ErrEmpty
	}
	return q.items[q.head], nil
}

// HasNext reports non-emptiness.
func (q *Queue) HasNext() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.size > 0
}

// Len returns the number of queued handles.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.size
}

// grow doubles the backing array; callers must hold q.mu.
func (q *Queue) grow() {
	items := make([]job.Handle, len(q.items)*2)
	for i := 0; i < q.size; i++ {
		items[i] = q.items[(q.head+i)%len(q.items)]
	}
	q.items = items
	q.head = 0
}

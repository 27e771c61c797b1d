// Package waitlist tracks, for each job handle, the FIFO list of other
// jobs blocked pending its completion.
package waitlist

import (
	"sync"

	"github.com/viant/yieldly/model/job"
)

// List maps a job handle to its waiters in arrival order.
type List struct {
	mux     sync.Mutex
	waiters map[job.Handle][]job.Handle
}

// New creates an empty waiting list registry.
func New() *List {
	return &List{waiters: make(map[job.Handle][]job.Handle)}
}

// Add registers waiter at the tail of key's list, creating it if absent.
func (l *List) Add(key, waiter job.Handle) {
	l.mux.Lock()
	defer l.mux.Unlock()
	l.waiters[key] = append(l.waiters[key], waiter)
}

// Drain removes key's list and returns its waiters in FIFO order.
func (l *List) Drain(key job.Handle) []job.Handle {
	l.mux.Lock()
	defer l.mux.Unlock()
	waiters := l.waiters[key]
	delete(l.waiters, key)
	return waiters
}

// Has reports whether any job waits on key.
func (l *List) Has(key job.Handle) bool {
	l.mux.Lock()
	defer l.mux.Unlock()
	return len(l.waiters[key]) > 0
}

// Len returns the number of waiters registered for key.
func (l *List) Len(key job.Handle) int {
	l.mux.Lock()
	defer l.mux.Unlock()
	return len(l.waiters[key])
}

// Package table implements the job table: the registry mapping an opaque
// handle to a job's mutable state. Handles embed a per-slot generation
// counter, so a handle kept after its job was deleted can never alias a
// newer occupant of the same slot.
package table

import (
	"sync"

	"github.com/viant/yieldly/model/job"
)

type slot struct {
	generation uint32
	job        *job.Job
}

// Table is a thread-safe generational arena of jobs.
type Table struct {
	mux   sync.RWMutex
	slots []slot
	free  []uint32
	count int
}

// New creates an empty job table.
func New() *Table {
	return &Table{}
}

// Put registers j, assigns its handle and returns it.
func (t *Table) Put(j *job.Job) job.Handle {
	t.mux.Lock()
	defer t.mux.Unlock()

	var index uint32
	if n := len(t.free); n > 0 {
		index = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		index = uint32(len(t.slots))
		t.slots = append(t.slots, slot{})
	}
	s := &t.slots[index]
	s.generation++
	s.job = j
	t.count++
	j.Handle = job.Handle{Index: index, Generation: s.generation}
	return j.Handle
}

// Lookup returns the job for h, or nil when h is unknown, stale, or its
// entry was deleted.
func (t *Table) Lookup(h job.Handle) *job.Job {
	t.mux.RLock()
	defer t.mux.RUnlock()

	if int(h.Index) >= len(t.slots) {
		return nil
	}
	s := t.slots[h.Index]
	if s.generation != h.Generation || s.job == nil {
		return nil
	}
	return s.job
}

// Delete removes the entry for h and recycles its slot under a bumped
// generation. It reports whether an entry was removed.
func (t *Table) Delete(h job.Handle) bool {
	t.mux.Lock()
	defer t.mux.Unlock()

	if int(h.Index) >= len(t.slots) {
		return false
	}
	s := &t.slots[h.Index]
	if s.generation != h.Generation || s.job == nil {
		return false
	}
	s.job = nil
	s.generation++
	t.free = append(t.free, h.Index)
	t.count--
	return true
}

// Len returns the number of registered jobs.
func (t *Table) Len() int {
	t.mux.RLock()
	defer t.mux.RUnlock()
	return t.count
}

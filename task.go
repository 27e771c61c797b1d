package yieldly

import (
	"github.com/viant/yieldly/internal/clock"
	"github.com/viant/yieldly/model/job"
	"github.com/viant/yieldly/runtime/coro"
	"github.com/viant/yieldly/service/event"
)

// Task is the in-job facade handed to every job body. Its methods are only
// valid while that body runs; a Task must never escape to other goroutines
// or outlive its job.
type Task struct {
	scheduler *Scheduler
	job       *job.Job
	yielder   *coro.Yielder
}

// Handle returns the running job's handle.
func (t *Task) Handle() job.Handle { return t.job.Handle }

// Name returns the running job's diagnostic label.
func (t *Task) Name() string { return t.job.Name }

// Scheduler returns the owning scheduler, letting job bodies spawn or
// resume sibling jobs.
func (t *Task) Scheduler() *Scheduler { return t.scheduler }

// Checkpoint is the voluntary burst check. When the time since the job's
// last resume exceeds the burst budget, the job moves from the ready-queue
// head to the tail and suspends until the kernel dispatches it again;
// otherwise Checkpoint is a no-op. The scheduler has no way to interrupt a
// job that never calls it.
func (t *Task) Checkpoint() {
	s := t.scheduler
	if clock.Since(t.job.StartTime) <= s.config.BurstTime() {
		return
	}
	s.mux.Lock()
	t.job.Status = job.StatusReady
	s.mux.Unlock()
	s.popHead(t.job.Handle)
	s.ready.Push(t.job.Handle)
	s.publish(event.KindRequeued, t.job, nil)
	t.yielder.Yield()
}

// Suspend parks the job outside the ready queue until someone calls
// Scheduler.Resume on its handle; the values supplied there become
// Suspend's return value.
func (t *Task) Suspend() []interface{} {
	t.park()
	return t.yielder.Yield()
}

// Wait blocks the job on waitee's completion and returns waitee's final
// values. When waitee is already done the values are returned immediately,
// without suspending, and a callback-less waitee's table entry is
// consumed. ErrUnknownJob is returned for stale handles - they can never
// be signalled.
func (t *Task) Wait(waitee job.Handle) ([]interface{}, error) {
	s := t.scheduler
	s.mux.Lock()
	target := s.table.Lookup(waitee)
	if target == nil {
		s.mux.Unlock()
		return nil, ErrUnknownJob
	}
	if target.Status == job.StatusDone {
		values := target.PassOut
		consume := target.Callback == nil
		s.mux.Unlock()
		if consume {
			s.table.Delete(waitee)
		}
		return values, nil
	}
	s.mux.Unlock()
	s.waiting.Add(waitee, t.job.Handle)
	t.park()
	return t.yielder.Yield(), nil
}

// park removes the job from the ready-queue head and marks it waiting.
func (t *Task) park() {
	s := t.scheduler
	s.mux.Lock()
	t.job.Status = job.StatusWaiting
	s.mux.Unlock()
	s.popHead(t.job.Handle)
	s.publish(event.KindWaiting, t.job, nil)
}

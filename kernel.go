package yieldly

import (
	"context"
	"strconv"

	"github.com/viant/yieldly/internal/clock"
	"github.com/viant/yieldly/model/job"
	"github.com/viant/yieldly/runtime/coro"
	"github.com/viant/yieldly/service/event"
	"github.com/viant/yieldly/tracing"
)

// stepKernel re-enters the kernel coroutine; it is the sole place the
// host's timer facility crosses back into the scheduler. A failing resume
// is an internal defect: it is logged and the kernel is not re-armed, so
// job processing halts for this instance.
func (s *Scheduler) stepKernel() {
	if _, _, err := s.kernel.Resume(); err != nil {
		s.logger.Errorf("kernel resume failed, job processing halted: %v", err)
	}
}

// kernelLoop is the scheduling loop, itself a suspendable execution: it
// drains the ready queue within the cycle's active window, arms the next
// cycle and yields control back to the host.
func (s *Scheduler) kernelLoop(y *coro.Yielder, _ []interface{}) []interface{} {
	for {
		_, span := tracing.StartSpan(context.Background(), "kernel.cycle")
		cycleStart := clock.Now()
		upTime := s.config.UpTime()
		dispatched := 0
		// The head is peeked, not popped: a job stays at the head across
		// repeated resumes until it requeues itself, suspends or completes.
		// The budget check happens once per pass, so a job that never
		// yields runs past the window unbounded.
		for clock.Since(cycleStart) < upTime {
			head, err := s.ready.Peek()
			if err != nil {
				break
			}
			s.dispatch(head)
			dispatched++
		}
		elapsed := clock.Since(cycleStart)
		delay := s.config.CycleTime - elapsed
		if delay < 0 {
			// The window was exceeded; mirror the overrun into the next
			// cycle's arm delay.
			delay = -delay
		}
		span.WithAttributes(map[string]string{
			"cycle.dispatched": strconv.Itoa(dispatched),
			"cycle.elapsed":    elapsed.String(),
		})
		tracing.EndSpan(span, nil)

		s.mux.Lock()
		if s.table.Len() == 0 {
			// Nothing left to run; park until the next Schedule or Resume.
			s.armed = false
			s.mux.Unlock()
		} else {
			s.mux.Unlock()
			s.timer.After(delay, s.stepKernel)
		}
		y.Yield()
	}
}

// dispatch resumes the ready-queue head. Heads that are stale, done or
// waiting do not belong in the queue; they are dropped rather than
// skipped, otherwise the active window would spin on them.
func (s *Scheduler) dispatch(handle job.Handle) {
	j := s.table.Lookup(handle)
	if j == nil || !j.Status.Runnable() {
		s.popHead(handle)
		return
	}
	s.mux.Lock()
	j.StartTime = clock.Now()
	j.PassOut = nil
	j.Status = job.StatusRunning
	args := j.PassIn
	s.mux.Unlock()

	values, done, err := j.Exec.Resume(args...)
	failed := err != nil
	s.mux.Lock()
	if failed {
		// Failure is completion with the error as sole payload: waiters
		// still unblock and the callback still fires.
		j.PassOut = []interface{}{err}
		done = true
	} else {
		j.PassOut = values
	}
	if len(args) > 0 {
		// Pass-in values are single-use.
		j.PassIn = nil
	}
	s.mux.Unlock()
	if failed {
		s.logger.Errorf("job %v (%s) failed: %v", j.Handle, j.Name, err)
		s.publish(event.KindFailed, j, j.PassOut)
	}
	if done {
		s.endJob(j, failed)
	}
}

// endJob performs the terminal transition: mark done, leave the ready
// queue, unblock waiters, then deliver the result. With a callback the
// table entry is deleted right after it runs; without one the entry is
// retained until Results (or a late Wait) consumes it.
func (s *Scheduler) endJob(j *job.Job, failed bool) {
	s.mux.Lock()
	j.Status = job.StatusDone
	s.mux.Unlock()
	s.popHead(j.Handle)
	s.signal(j.Handle)
	if !failed {
		s.publish(event.KindCompleted, j, j.PassOut)
	}
	if j.Callback != nil {
		s.runCallback(j)
		s.table.Delete(j.Handle)
	}
}

// runCallback invokes the completion callback in isolation: a panicking
// callback is logged and never disturbs the kernel or other jobs.
func (s *Scheduler) runCallback(j *job.Job) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Errorf("callback for job %v (%s) failed: %v", j.Handle, j.Name, r)
			s.publish(event.KindCallbackError, j, nil)
		}
	}()
	j.Callback(j.PassOut)
}

// signal drains handle's waiting list in FIFO order, making each waiter
// ready with handle's pass-out buffered as its next pass-in.
func (s *Scheduler) signal(handle job.Handle) {
	key := s.table.Lookup(handle)
	if key == nil {
		return
	}
	for _, waiter := range s.waiting.Drain(handle) {
		s.resumeWaiter(waiter, key.PassOut)
	}
}

func (s *Scheduler) resumeWaiter(handle job.Handle, values []interface{}) {
	s.mux.Lock()
	j := s.table.Lookup(handle)
	if j == nil || j.Status != job.StatusWaiting {
		s.mux.Unlock()
		return
	}
	j.PassIn = values
	j.Status = job.StatusReady
	s.mux.Unlock()
	s.ready.Push(handle)
	s.publish(event.KindResumed, j, values)
}

// popHead removes handle from the queue head when it is still there.
func (s *Scheduler) popHead(handle job.Handle) {
	if head, err := s.ready.Peek(); err == nil && head == handle {
		_, _ = s.ready.Pop()
	}
}

package yieldly

import (
	"context"
	"os"
	"sync"

	"github.com/viant/yieldly/internal/idgen"
	"github.com/viant/yieldly/model/job"
	"github.com/viant/yieldly/runtime/coro"
	"github.com/viant/yieldly/service/event"
	"github.com/viant/yieldly/service/logging"
	"github.com/viant/yieldly/service/queue"
	"github.com/viant/yieldly/service/table"
	"github.com/viant/yieldly/service/timer"
	"github.com/viant/yieldly/service/waitlist"
	"github.com/viant/yieldly/tracing"
)

// JobFunc is the client-supplied job body. It runs inside a suspendable
// execution; the Task argument exposes the cooperative primitives (Wait,
// Suspend, Checkpoint) valid only while the body runs. The returned values
// become the job's final pass-out.
type JobFunc func(t *Task, args ...interface{}) []interface{}

// Scheduler is an independent cooperative scheduler instance. Multiple
// schedulers can coexist; each owns its job table, ready queue, waiting
// lists and kernel.
type Scheduler struct {
	config  *Config
	logger  logging.Logger
	timer   timer.Service
	events  *event.Service
	table   *table.Table
	ready   *queue.Queue
	waiting *waitlist.List

	mux    sync.Mutex
	kernel *coro.Coro
	armed  bool
}

// New creates a scheduler. Absent options inherit defaults: DefaultConfig,
// a real-time timer and a zerolog sink writing to stderr.
func New(options ...Option) *Scheduler {
	ret := &Scheduler{
		table:   table.New(),
		ready:   queue.New(),
		waiting: waitlist.New(),
	}
	for _, option := range options {
		option(ret)
	}
	ret.ensureBaseSetup()
	return ret
}

func (s *Scheduler) ensureBaseSetup() {
	if s.logger == nil {
		s.logger = logging.New(os.Stderr, "info")
	}
	if s.config == nil {
		s.config = DefaultConfig()
	} else if err := s.config.Validate(); err != nil {
		s.logger.Warnf("invalid configuration (%v), falling back to defaults", err)
		s.config = DefaultConfig()
	}
	if s.timer == nil {
		s.timer = timer.New(s.config.FrameInterval)
	}
}

// Config returns the effective configuration.
func (s *Scheduler) Config() Config {
	return *s.config
}

// Schedule registers fn as a new job, buffers args for its first resume
// and places it at the ready-queue tail. callback, when non-nil, receives
// the job's final values on completion; callback-less jobs buffer their
// values for Results. The first job ever (or any job arriving while the
// kernel is parked) boots the kernel via a one-frame host tick.
func (s *Scheduler) Schedule(name string, fn JobFunc, callback job.Callback, args ...interface{}) (job.Handle, error) {
	if fn == nil {
		return job.Handle{}, ErrNilFunc
	}
	if name == "" {
		name = "job-" + idgen.Short()
	}
	_, span := tracing.StartSpan(context.Background(), "scheduler.schedule "+name)
	j := job.New(name, callback, args)
	j.Exec = coro.New(func(y *coro.Yielder, in []interface{}) []interface{} {
		t := &Task{scheduler: s, job: j, yielder: y}
		return fn(t, in...)
	})
	handle := s.table.Put(j)
	s.ready.Push(handle)
	span.WithAttributes(map[string]string{"job.handle": handle.String(), "job.name": name})
	tracing.EndSpan(span, nil)
	s.publish(event.KindCreated, j, nil)
	s.wake()
	return handle, nil
}

// Resume re-activates a waiting job, buffering values for its next resume
// and pushing it to the ready-queue tail. It is only effective on waiting
// jobs: ErrNotWaiting otherwise, ErrUnknownJob for stale handles.
func (s *Scheduler) Resume(handle job.Handle, values ...interface{}) error {
	s.mux.Lock()
	j := s.table.Lookup(handle)
	if j == nil {
		s.mux.Unlock()
		return ErrUnknownJob
	}
	if j.Status != job.StatusWaiting {
		s.mux.Unlock()
		return ErrNotWaiting
	}
	j.PassIn = values
	j.Status = job.StatusReady
	s.mux.Unlock()
	s.ready.Push(handle)
	s.publish(event.KindResumed, j, values)
	s.wake()
	return nil
}

// Results pulls buffered output for handle. While the job exists the
// current pass-out is returned with ok=true; once a done job's values are
// pulled its table entry is deleted, so repeated calls report ok=false.
func (s *Scheduler) Results(handle job.Handle) ([]interface{}, bool) {
	s.mux.Lock()
	j := s.table.Lookup(handle)
	if j == nil {
		s.mux.Unlock()
		return nil, false
	}
	values := j.PassOut
	done := j.Status == job.StatusDone
	s.mux.Unlock()
	if done {
		s.table.Delete(handle)
	}
	return values, true
}

// Pending returns the number of jobs currently tracked by the table.
func (s *Scheduler) Pending() int {
	return s.table.Len()
}

func (s *Scheduler) publish(kind event.Kind, j *job.Job, values []interface{}) {
	if s.events == nil {
		return
	}
	s.events.Publish(event.NewEvent(kind, j, values))
}

// wake arms the kernel when it is not already scheduled. The bootstrap
// uses the host's frame-based tick; subsequent cycles re-arm themselves
// with duration delays.
func (s *Scheduler) wake() {
	s.mux.Lock()
	if s.armed {
		s.mux.Unlock()
		return
	}
	if s.kernel == nil {
		s.kernel = coro.New(s.kernelLoop)
	}
	s.armed = true
	s.mux.Unlock()
	s.timer.AfterFrames(1, s.stepKernel)
}

package yieldly

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/yieldly/internal/clock"
	"github.com/viant/yieldly/model/job"
	"github.com/viant/yieldly/service/logging"
	"github.com/viant/yieldly/service/timer"
)

// fakeClock makes burst and cycle accounting deterministic: time only
// moves when a test (or a job body) advances it.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func withFakeClock(t *testing.T) *fakeClock {
	fc := &fakeClock{now: time.Unix(1000, 0)}
	prev := clock.NowFunc
	clock.NowFunc = fc.Now
	t.Cleanup(func() { clock.NowFunc = prev })
	return fc
}

// newTestScheduler wires a scheduler to a hand-pumped timer: every Fire on
// the returned manual timer runs exactly the kernel work armed so far.
func newTestScheduler(t *testing.T, options ...Option) (*Scheduler, *timer.Manual) {
	t.Helper()
	manual := timer.NewManual()
	base := []Option{
		WithTimer(manual),
		WithLogger(logging.Nop()),
		WithConfig(&Config{CycleTime: 100 * time.Millisecond, UpRatio: 0.75, BurstRatio: 0.5}),
	}
	return New(append(base, options...)...), manual
}

func pump(manual *timer.Manual, rounds int) {
	for i := 0; i < rounds; i++ {
		if manual.Fire() == 0 {
			return
		}
	}
}

func TestScheduler_ScheduleValidation(t *testing.T) {
	s, _ := newTestScheduler(t)
	_, err := s.Schedule("noop", nil, nil)
	assert.ErrorIs(t, err, ErrNilFunc)
}

func TestScheduler_DefaultName(t *testing.T) {
	s, manual := newTestScheduler(t)
	withFakeClock(t)
	var name string
	_, err := s.Schedule("", func(task *Task, args ...interface{}) []interface{} {
		name = task.Name()
		return nil
	}, nil)
	assert.NoError(t, err)
	pump(manual, 3)
	assert.NotEmpty(t, name)
}

func TestScheduler_InvalidConfigFallsBack(t *testing.T) {
	s := New(
		WithTimer(timer.NewManual()),
		WithLogger(logging.Nop()),
		WithConfig(&Config{CycleTime: -time.Second}),
	)
	assert.Equal(t, *DefaultConfig(), s.Config())
}

func TestScheduler_ArgumentPassthrough(t *testing.T) {
	withFakeClock(t)
	s, manual := newTestScheduler(t)

	var got []interface{}
	_, err := s.Schedule("j", func(task *Task, args ...interface{}) []interface{} {
		got = args
		return nil
	}, nil, 10, 20)
	assert.NoError(t, err)

	pump(manual, 3)
	assert.Equal(t, []interface{}{10, 20}, got)
}

func TestScheduler_PullIdempotence(t *testing.T) {
	withFakeClock(t)
	s, manual := newTestScheduler(t)

	handle, err := s.Schedule("producer", func(task *Task, args ...interface{}) []interface{} {
		return []interface{}{7}
	}, nil)
	assert.NoError(t, err)
	pump(manual, 3)

	values, ok := s.Results(handle)
	assert.True(t, ok)
	assert.Equal(t, []interface{}{7}, values)

	// The entry was consumed; every subsequent pull reports no result.
	values, ok = s.Results(handle)
	assert.False(t, ok)
	assert.Nil(t, values)
}

func TestScheduler_CallbackDelivery(t *testing.T) {
	withFakeClock(t)
	s, manual := newTestScheduler(t)

	var delivered []interface{}
	handle, err := s.Schedule("producer", func(task *Task, args ...interface{}) []interface{} {
		return []interface{}{"done", 3}
	}, func(values []interface{}) {
		delivered = values
	})
	assert.NoError(t, err)
	pump(manual, 3)

	assert.Equal(t, []interface{}{"done", 3}, delivered)
	// Callback jobs are deleted right after the callback runs.
	_, ok := s.Results(handle)
	assert.False(t, ok)
}

func TestScheduler_SuspendResume(t *testing.T) {
	withFakeClock(t)
	s, manual := newTestScheduler(t)

	var woken []interface{}
	handle, err := s.Schedule("sleeper", func(task *Task, args ...interface{}) []interface{} {
		woken = task.Suspend()
		return woken
	}, nil)
	assert.NoError(t, err)

	pump(manual, 2)
	assert.Nil(t, woken)

	// Resume is only effective on waiting jobs.
	assert.NoError(t, s.Resume(handle, "wake", 1))
	pump(manual, 2)
	assert.Equal(t, []interface{}{"wake", 1}, woken)

	values, ok := s.Results(handle)
	assert.True(t, ok)
	assert.Equal(t, []interface{}{"wake", 1}, values)
	// Pulling a done job's values consumed the entry.
	assert.ErrorIs(t, s.Resume(handle), ErrUnknownJob)
}

func TestScheduler_ResumeErrors(t *testing.T) {
	withFakeClock(t)
	s, manual := newTestScheduler(t)

	assert.ErrorIs(t, s.Resume(job.Handle{Index: 3, Generation: 9}), ErrUnknownJob)

	handle, err := s.Schedule("ready", func(task *Task, args ...interface{}) []interface{} {
		return nil
	}, nil)
	assert.NoError(t, err)
	// Still ready, not waiting.
	assert.ErrorIs(t, s.Resume(handle), ErrNotWaiting)
	pump(manual, 3)
}

func TestScheduler_KernelParksWhenIdle(t *testing.T) {
	withFakeClock(t)
	s, manual := newTestScheduler(t)

	ran := false
	_, err := s.Schedule("once", func(task *Task, args ...interface{}) []interface{} {
		ran = true
		return nil
	}, func(values []interface{}) {})
	assert.NoError(t, err)

	pump(manual, 10)
	assert.True(t, ran)
	assert.Equal(t, 0, s.Pending())
	// With the table empty the kernel parked without re-arming.
	assert.Equal(t, 0, manual.Pending())

	// A later job wakes the kernel again.
	ran = false
	_, err = s.Schedule("again", func(task *Task, args ...interface{}) []interface{} {
		ran = true
		return nil
	}, func(values []interface{}) {})
	assert.NoError(t, err)
	assert.Equal(t, 1, manual.Pending())
	pump(manual, 10)
	assert.True(t, ran)
}

func TestScheduler_ScheduleFromJob(t *testing.T) {
	withFakeClock(t)
	s, manual := newTestScheduler(t)

	var childRan bool
	_, err := s.Schedule("parent", func(task *Task, args ...interface{}) []interface{} {
		_, err := task.Scheduler().Schedule("child", func(task *Task, args ...interface{}) []interface{} {
			childRan = true
			return nil
		}, nil)
		assert.NoError(t, err)
		return nil
	}, nil)
	assert.NoError(t, err)

	pump(manual, 3)
	assert.True(t, childRan)
}

func TestScheduler_WaitUnknownHandle(t *testing.T) {
	withFakeClock(t)
	s, manual := newTestScheduler(t)

	var waitErr error
	_, err := s.Schedule("waiter", func(task *Task, args ...interface{}) []interface{} {
		_, waitErr = task.Wait(job.Handle{Index: 42, Generation: 7})
		return nil
	}, nil)
	assert.NoError(t, err)

	pump(manual, 3)
	assert.ErrorIs(t, waitErr, ErrUnknownJob)
}

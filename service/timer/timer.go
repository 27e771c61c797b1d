// Package timer abstracts the host's deferred-callback facility. The
// scheduler consumes it in two modes: a frame-based tick used to bootstrap
// the kernel, and a duration-based delay used to re-arm the kernel each
// cycle. Hosts with their own event loop supply an implementation; others
// use the real-time service backed by time.AfterFunc.
package timer

import (
	"sync"
	"time"
)

// Service is the deferred-callback facility consumed from the host.
type Service interface {
	// AfterFrames schedules fn after the given number of host frames.
	AfterFrames(frames int, fn func())

	// After schedules fn once the delay elapses.
	After(delay time.Duration, fn func())
}

// DefaultFrameInterval approximates a host frame for the real-time service.
const DefaultFrameInterval = 10 * time.Millisecond

type realTime struct {
	frameInterval time.Duration
}

// New returns a Service backed by time.AfterFunc. frameInterval defines the
// wall-clock length of one frame; when zero DefaultFrameInterval is used.
func New(frameInterval time.Duration) Service {
	if frameInterval <= 0 {
		frameInterval = DefaultFrameInterval
	}
	return &realTime{frameInterval: frameInterval}
}

func (r *realTime) AfterFrames(frames int, fn func()) {
	if frames < 1 {
		frames = 1
	}
	time.AfterFunc(time.Duration(frames)*r.frameInterval, fn)
}

func (r *realTime) After(delay time.Duration, fn func()) {
	if delay < 0 {
		delay = 0
	}
	time.AfterFunc(delay, fn)
}

// Manual is a hand-pumped Service for deterministic tests and hosts that
// drive their own loop: armed callbacks are collected and only run when
// Fire is called.
type Manual struct {
	mux    sync.Mutex
	armed  []func()
	Delays []time.Duration
}

// NewManual creates an empty manual timer.
func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) AfterFrames(frames int, fn func()) {
	m.arm(0, fn)
}

func (m *Manual) After(delay time.Duration, fn func()) {
	m.arm(delay, fn)
}

func (m *Manual) arm(delay time.Duration, fn func()) {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.armed = append(m.armed, fn)
	m.Delays = append(m.Delays, delay)
}

// Pending returns the number of armed callbacks.
func (m *Manual) Pending() int {
	m.mux.Lock()
	defer m.mux.Unlock()
	return len(m.armed)
}

// Fire runs all currently armed callbacks on the calling goroutine, in
// arming order. Callbacks armed while firing are deferred to the next Fire.
func (m *Manual) Fire() int {
	m.mux.Lock()
	armed := m.armed
	m.armed = nil
	m.mux.Unlock()
	for _, fn := range armed {
		fn()
	}
	return len(armed)
}

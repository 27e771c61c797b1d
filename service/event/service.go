package event

import (
	"context"

	"github.com/viant/yieldly/service/logging"
	"github.com/viant/yieldly/service/messaging"
	"github.com/viant/yieldly/service/messaging/memory"
)

// Service fans job lifecycle events out to a single handler through a
// messaging queue, decoupling the publishing side (the kernel's logical
// thread) from the consuming side (a listener goroutine).
type Service struct {
	queue    messaging.Queue[Event]
	logger   logging.Logger
	cancelFn context.CancelFunc
}

// Option customises the event service.
type Option func(s *Service)

// WithQueue overrides the backing queue.
func WithQueue(queue messaging.Queue[Event]) Option {
	return func(s *Service) { s.queue = queue }
}

// WithLogger sets the sink for consume failures.
func WithLogger(logger logging.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// New creates an event service backed by an in-memory queue unless
// overridden.
func New(options ...Option) *Service {
	ret := &Service{}
	for _, option := range options {
		option(ret)
	}
	if ret.queue == nil {
		ret.queue = memory.NewQueue[Event](memory.DefaultConfig())
	}
	if ret.logger == nil {
		ret.logger = logging.Nop()
	}
	return ret
}

// Publish enqueues e; it never blocks the scheduler.
func (s *Service) Publish(e *Event) {
	if s == nil || e == nil {
		return
	}
	_ = s.queue.Publish(context.Background(), e)
}

// Listen starts a goroutine delivering events to handler until Stop is
// called. A second Listen replaces the previous handler.
func (s *Service) Listen(handler func(*Event)) {
	s.Stop()
	ctx, cancel := context.WithCancel(context.Background())
	s.cancelFn = cancel
	go func() {
		for {
			msg, err := s.queue.Consume(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				s.logger.Errorf("event listener: consume failed: %v", err)
				continue
			}
			_ = msg.Ack()
			handler(msg.T())
		}
	}()
}

// Stop cancels the active listener, if any.
func (s *Service) Stop() {
	if s.cancelFn != nil {
		s.cancelFn()
		s.cancelFn = nil
	}
}

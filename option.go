package yieldly

import (
	"github.com/viant/yieldly/service/event"
	"github.com/viant/yieldly/service/logging"
	"github.com/viant/yieldly/service/timer"
	"github.com/viant/yieldly/tracing"
)

// Option customises a Scheduler.
type Option func(s *Scheduler)

// WithConfig sets the scheduler configuration.
func WithConfig(config *Config) Option {
	return func(s *Scheduler) {
		s.config = config
	}
}

// WithTimer sets the host deferred-callback facility. Hosts driving their
// own loop typically supply a timer.Manual pumped from that loop.
func WithTimer(service timer.Service) Option {
	return func(s *Scheduler) {
		s.timer = service
	}
}

// WithLogger sets the diagnostic sink.
func WithLogger(logger logging.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// WithEvents attaches a lifecycle event service; without one no events are
// produced.
func WithEvents(service *event.Service) Option {
	return func(s *Scheduler) {
		s.events = service
	}
}

// WithTracing configures OpenTelemetry tracing. If outputFile is empty the
// stdout exporter is used. Safe to apply multiple times - the first
// successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Scheduler) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

package job

import "time"

// Resumer drives a job's underlying suspendable execution. Resume hands the
// supplied values to the suspended body and blocks until it yields again,
// completes, or fails. The outcome is tagged: values carry whatever the
// body yielded or returned, done marks the terminal transition, and err is
// set when the body failed.
type Resumer interface {
	Resume(args ...interface{}) (values []interface{}, done bool, err error)
}

// Callback is invoked with a job's final values once it completes.
type Callback func(values []interface{})

// Job is the unit of schedulable work.
type Job struct {
	// Handle identifies this job in the table; assigned on registration.
	Handle Handle

	// Name is a diagnostic label.
	Name string

	// Status tracks the lifecycle state machine.
	Status Status

	// StartTime records the last resume, used for burst-time accounting.
	StartTime time.Time

	// PassIn holds values delivered to the body on its next resume. Values
	// are single-use: the dispatcher clears them once consumed.
	PassIn []interface{}

	// PassOut holds values produced by the most recent suspension or by
	// completion. It is overwritten, never appended, on each resume cycle.
	PassOut []interface{}

	// Callback, when set, receives PassOut on completion.
	Callback Callback

	// Exec is the underlying suspendable execution.
	Exec Resumer
}

// New returns a job in the ready state with the supplied initial arguments
// buffered for its first resume.
func New(name string, callback Callback, args []interface{}) *Job {
	return &Job{
		Name:     name,
		Status:   StatusReady,
		PassIn:   args,
		Callback: callback,
	}
}

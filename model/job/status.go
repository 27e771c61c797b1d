package job

// Status represents a job lifecycle state.
type Status string

const (
	// StatusReady indicates the job sits in the ready queue, eligible for
	// dispatch.
	StatusReady Status = "ready"

	// StatusRunning indicates the job currently holds the foreground slot;
	// at most one job is ever running.
	StatusRunning Status = "running"

	// StatusWaiting indicates the job is suspended outside the ready queue
	// and can only come back via an external resume or a waiters signal.
	StatusWaiting Status = "waiting"

	// StatusDone is terminal.
	StatusDone Status = "done"
)

// IsTerminal reports whether the status is final.
func (s Status) IsTerminal() bool { return s == StatusDone }

// Runnable reports whether a dispatched job in this status may be resumed.
func (s Status) Runnable() bool { return s == StatusReady || s == StatusRunning }

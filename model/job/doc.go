// Package job defines the schedulable unit of work tracked by the
// scheduler: the Job record, its status state machine and the opaque
// generation-checked Handle used to reference it.
package job

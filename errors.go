package yieldly

import "errors"

// Sentinel errors returned by the scheduler API. Callers should detect
// them via errors.Is rather than string comparison.
var (
	// ErrNilFunc is returned by Schedule when no job function is supplied.
	ErrNilFunc = errors.New("yieldly: job function is nil")

	// ErrUnknownJob indicates a handle that was never issued, or whose job
	// has already been removed from the job table.
	ErrUnknownJob = errors.New("yieldly: unknown job")

	// ErrNotWaiting is returned by Resume when the target job is not in
	// the waiting state; resuming is only effective on waiting jobs.
	ErrNotWaiting = errors.New("yieldly: job is not waiting")
)

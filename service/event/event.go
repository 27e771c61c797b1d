// Package event publishes the scheduler's job lifecycle stream. Events are
// purely observational: consuming them (or not) never influences
// scheduling decisions.
package event

import (
	"time"

	"github.com/viant/yieldly/model/job"
)

// Kind identifies a lifecycle transition.
type Kind string

const (
	// KindCreated fires when a job is registered and queued.
	KindCreated Kind = "created"
	// KindRequeued fires when a job cooperatively yields its burst and
	// moves to the ready tail.
	KindRequeued Kind = "requeued"
	// KindWaiting fires when a job suspends outside the ready queue.
	KindWaiting Kind = "waiting"
	// KindResumed fires when a waiting job is made ready again.
	KindResumed Kind = "resumed"
	// KindCompleted fires on successful completion.
	KindCompleted Kind = "completed"
	// KindFailed fires when a job body fails; the payload carries the error.
	KindFailed Kind = "failed"
	// KindCallbackError fires when a completion callback fails.
	KindCallbackError Kind = "callbackError"
)

// Event describes a single lifecycle transition of one job.
type Event struct {
	Kind      Kind          `json:"kind"`
	Handle    job.Handle    `json:"handle"`
	Job       string        `json:"job"`
	Values    []interface{} `json:"values,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}

// NewEvent creates an event for the supplied job.
func NewEvent(kind Kind, j *job.Job, values []interface{}) *Event {
	return &Event{
		Kind:      kind,
		Handle:    j.Handle,
		Job:       j.Name,
		Values:    values,
		CreatedAt: time.Now(),
	}
}

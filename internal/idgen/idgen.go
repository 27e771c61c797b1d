package idgen

import "github.com/google/uuid"

// NewFunc produces a new globally unique identifier. It is a variable so
// tests can stub it.
var NewFunc = func() string { return uuid.New().String() }

// New returns a new globally unique identifier as string.
func New() string { return NewFunc() }

// Short returns an 8-character identifier suitable for diagnostic labels.
func Short() string {
	id := New()
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

package job

import "fmt"

// Handle is an opaque job identifier issued by the job table. It carries a
// slot index plus a generation counter; the generation makes handles held
// after the slot was recycled inert instead of aliasing a newer job.
type Handle struct {
	Index      uint32
	Generation uint32
}

// Zero reports whether h is the zero handle (never issued).
func (h Handle) Zero() bool { return h.Generation == 0 }

// String implements fmt.Stringer.
func (h Handle) String() string { return fmt.Sprintf("job-%d.%d", h.Index, h.Generation) }

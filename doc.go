// Package yieldly provides a cooperative, single-threaded job scheduler
// intended to be embedded in host applications.
//
// Jobs are long-running, suspendable units of work. The scheduler resumes
// ready jobs in strict FIFO order inside a fixed per-cycle wall-clock
// budget; between cycles it yields control back to the host and is
// re-entered via the host's deferred-callback facility. Jobs cooperate by
// yielding voluntarily - a job that never yields keeps the active window to
// itself.
//
// End-users interact with the scheduler via an explicit instance:
//
//	s := yieldly.New()
//	handle, _ := s.Schedule("fetch", func(t *yieldly.Task, args ...interface{}) []interface{} {
//	    for hasWork() {
//	        step()
//	        t.Checkpoint()
//	    }
//	    return []interface{}{result()}
//	}, nil)
//	...
//	values, ok := s.Results(handle)
//
// Jobs can block on each other with Task.Wait, sleep until externally
// resumed with Task.Suspend, and deliver results either through a
// completion callback or by pull via Scheduler.Results.
//
// For more details see the individual sub-packages.
package yieldly

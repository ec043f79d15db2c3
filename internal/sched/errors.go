package sched

import "fmt"

// ControlError wraps a failed pause/resume/poll request against the
// process-control collaborator. Control errors are recoverable: the
// loop logs them, leaves the task in its prior state and retries on a
// later cycle. A task is never marked completed because of one.
type ControlError struct {
	Op   string
	Task TaskID
	Err  error
}

func (e *ControlError) Error() string {
	return fmt.Sprintf("%s task %d: %v", e.Op, e.Task, e.Err)
}

func (e *ControlError) Unwrap() error { return e.Err }

// InvariantError reports a broken arithmetic invariant, such as a
// non-positive weight. It aborts the run: it indicates a weight-table
// or loader defect, not a recoverable scheduling condition.
type InvariantError struct {
	Task      TaskID
	Invariant string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("task %d: invariant violated: %s", e.Task, e.Invariant)
}

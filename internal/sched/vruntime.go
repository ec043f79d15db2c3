package sched

import "time"

const nsPerMS = int64(time.Millisecond)

// applyExecution charges executedMS of measured CPU time to the task's
// vruntime using the fairness formula
//
//	vruntime += executed * BaselineWeight / weight
//
// at nanosecond resolution, and folds the result into the global
// minimum vruntime. The first observation seeds the minimum instead of
// comparing against an uninitialized zero. RemainingMS is clamped at
// zero in case the measured duration overshot the outstanding work.
func (s *Scheduler) applyExecution(t *Task, executedMS int64) error {
	if t.Weight <= 0 {
		return &InvariantError{Task: t.ID, Invariant: "weight must be positive"}
	}
	if executedMS < 0 {
		executedMS = 0
	}

	t.Vruntime += executedMS * nsPerMS * BaselineWeight / t.Weight

	if t.RemainingMS < 0 {
		t.RemainingMS = 0
	}

	if !s.minSeeded || t.Vruntime < s.minVruntime {
		s.minVruntime = t.Vruntime
		s.minSeeded = true
	}
	return nil
}

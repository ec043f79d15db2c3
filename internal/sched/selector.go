package sched

import "time"

// Score adjustments, in the vruntime nanosecond domain. Lower score
// wins.
const (
	agingCreditNS       = int64(100 * time.Millisecond) // per aging boost level
	interactiveCreditNS = int64(50 * time.Millisecond)
	longRunPenaltyNS    = int64(10 * time.Millisecond)
	longRunThresholdMS  = 100
)

// selectNext picks the runnable task with the lowest adjusted score:
//
//	score = vruntime - boost*agingCredit - interactiveCredit? + longRunPenalty?
//
// Heuristics are refreshed for every candidate before scoring, so the
// ranking always reflects current wait times. Ties resolve to the
// lowest identity. Returns nil when the queue is empty (idle CPU is a
// normal condition, not an error).
func (s *Scheduler) selectNext(nowMS int64) *Task {
	var (
		best      *Task
		bestScore int64
	)

	s.queue.each(func(t *Task) {
		if t.State != StateReady && t.State != StatePaused {
			return
		}

		updateHeuristics(t, nowMS, s.cfg.QuantumMS)

		score := t.Vruntime
		score -= t.AgingBoost * agingCreditNS
		if t.EstimatedBurstMS < interactiveThresholdMS {
			score -= interactiveCreditNS
		}
		if t.RemainingMS > longRunThresholdMS {
			score += longRunPenaltyNS
		}

		if best == nil || score < bestScore || (score == bestScore && t.ID < best.ID) {
			best = t
			bestScore = score
		}
	})

	return best
}

// admitArrivals promotes AwaitingArrival tasks whose arrival offset has
// elapsed into the run queue. A newly admitted task starts at the
// global minimum vruntime so a late arrival cannot monopolize the CPU
// against tasks that have already accumulated virtual time. Returns the
// admitted tasks so the loop can announce them.
func (s *Scheduler) admitArrivals(nowMS int64) []*Task {
	var admitted []*Task
	for _, t := range s.tasks {
		if t.State != StateAwaitingArrival || nowMS < t.ArrivalMS {
			continue
		}
		t.State = StateReady
		if s.minSeeded && t.Vruntime < s.minVruntime {
			t.Vruntime = s.minVruntime
		}
		s.queue.put(t)
		admitted = append(admitted, t)
	}
	return admitted
}

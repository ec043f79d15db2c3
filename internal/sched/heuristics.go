package sched

// Heuristic thresholds, in the millisecond unit of task work.
const (
	waitBoostThresholdMS   = 100 // cumulative wait before aging kicks in
	agingBoostDivisorMS    = 10
	maxAgingBoost          = 10
	interactiveThresholdMS = 50 // estimated bursts below this count as interactive
)

// updateHeuristics refreshes a task's aging boost, burst estimate and
// interactivity score as of nowMS (offset from scheduler start). The
// selector calls it once per decision cycle for every candidate, before
// scoring. Only the heuristic fields are touched.
func updateHeuristics(t *Task, nowMS, quantumMS int64) {
	// Waiting time accrues only while the task sits off-CPU, and only
	// for positive deltas.
	if t.State == StateReady || t.State == StatePaused {
		if delta := nowMS - t.LastDecisionMS; delta > 0 {
			t.TotalWaitMS += delta
		}
	}

	// Aging boost grows linearly with wait beyond the threshold, capped
	// so a starved task cannot dominate forever.
	if t.TotalWaitMS > waitBoostThresholdMS {
		t.AgingBoost = (t.TotalWaitMS - waitBoostThresholdMS) / agingBoostDivisorMS
		if t.AgingBoost > maxAgingBoost {
			t.AgingBoost = maxAgingBoost
		}
	} else {
		t.AgingBoost = 0
	}

	// Burst estimate is initialized once from the outstanding work and
	// then left alone. Re-estimation across bursts (exponential
	// smoothing of actual vs. predicted) is a future extension; the
	// single lazy initialization is the intended behavior today.
	if t.EstimatedBurstMS == 0 {
		t.EstimatedBurstMS = t.RemainingMS / 4
		if t.EstimatedBurstMS < quantumMS {
			t.EstimatedBurstMS = quantumMS
		}
	}

	// Interactivity is recomputed from scratch every call: fraction of
	// work still outstanding, with a flat bonus for short bursts.
	if t.TotalMS > 0 {
		t.Interactivity = t.RemainingMS * 100 / t.TotalMS
		if t.EstimatedBurstMS < interactiveThresholdMS {
			t.Interactivity += 20
		}
	}

	t.LastDecisionMS = nowMS
}

package sched

import "time"

// StatusKind represents the type of scheduler event.
type StatusKind int

const (
	StatusIdle StatusKind = iota
	StatusEnqueue
	StatusDispatch
	StatusPreempt
	StatusFinish
)

// StatusEvent is emitted on every scheduling decision. Consumers get a
// copy of the task fields relevant at that instant; the core never
// formats output itself.
type StatusEvent struct {
	Time        time.Time
	ElapsedMS   int64 // offset from scheduler start
	Kind        StatusKind
	TaskID      TaskID
	Vruntime    int64
	RemainingMS int64
	AgingBoost  int64
	RanMS       int64 // measured execution time, Preempt/Finish only
}

func (sk StatusKind) String() string {
	switch sk {
	case StatusIdle:
		return "Idle"
	case StatusEnqueue:
		return "Enqueued"
	case StatusDispatch:
		return "Dispatch"
	case StatusPreempt:
		return "Preempt"
	case StatusFinish:
		return "Finish"
	default:
		return "Unknown"
	}
}

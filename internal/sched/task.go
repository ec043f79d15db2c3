package sched

// TaskID uniquely identifies a task in the scheduler. IDs are assigned
// at batch load in insertion order and never change.
type TaskID uint64

// TaskState is the lifecycle state of a task.
type TaskState int

const (
	StateAwaitingArrival TaskState = iota
	StateReady
	StateRunning
	StatePaused
	StateCompleted
)

func (s TaskState) String() string {
	switch s {
	case StateAwaitingArrival:
		return "AwaitingArrival"
	case StateReady:
		return "Ready"
	case StateRunning:
		return "Running"
	case StatePaused:
		return "Paused"
	case StateCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// Task is the mutable record for one schedulable unit. Work and arrival
// durations are in milliseconds; Vruntime is kept in nanoseconds so the
// fixed-point division by large weights does not lose precision.
type Task struct {
	ID          TaskID
	ArrivalMS   int64 // offset from scheduler start at which the task becomes eligible
	TotalMS     int64 // required CPU time
	RemainingMS int64 // outstanding CPU time, clamped at zero
	Nice        int
	Weight      int64
	Vruntime    int64 // accumulated virtual runtime, ns
	State       TaskState

	// Heuristic state, owned by updateHeuristics.
	LastDecisionMS   int64
	TotalWaitMS      int64
	EstimatedBurstMS int64 // 0 means not yet estimated
	Interactivity    int64
	AgingBoost       int64

	// Timing statistics. Response is stamped on the first dispatch;
	// the rest are frozen on completion.
	Started      bool
	ResponseMS   int64
	FinishMS     int64
	WaitMS       int64
	TurnaroundMS int64
}

// NewTask creates a task record with its weight derived from the nice
// value. The nice value is clamped to the legal range first.
func NewTask(id TaskID, arrivalMS, totalMS int64, nice int) *Task {
	if nice < NiceMin {
		nice = NiceMin
	} else if nice > NiceMax {
		nice = NiceMax
	}

	return &Task{
		ID:            id,
		ArrivalMS:     arrivalMS,
		TotalMS:       totalMS,
		RemainingMS:   totalMS,
		Nice:          nice,
		Weight:        WeightOf(nice),
		State:         StateAwaitingArrival,
		Interactivity: 100,
	}
}

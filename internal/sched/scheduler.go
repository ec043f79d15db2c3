package sched

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"time"
)

// MaxTasks bounds the batch size. The task arena is fixed-capacity by
// design; batches beyond this are a configuration error.
const MaxTasks = 10

// Controller is the process-control collaborator. All three operations
// must be idempotent: pausing an already-paused or completed task is a
// no-op success, as is resuming a running one.
type Controller interface {
	Pause(id TaskID) error
	Resume(id TaskID) error
	PollCompleted(id TaskID) (bool, error)
}

// Scheduler drives a fixed batch of tasks through repeated decision
// cycles until every task completes. There is exactly one decision
// goroutine; the mutex only guards against concurrent Snapshot readers.
type Scheduler struct {
	mu    sync.Mutex
	cfg   Config
	log   *slog.Logger
	clock Clock
	ctrl  Controller

	tasks   []*Task // arena, insertion order = identity order
	queue   *runQueue
	current *Task // at most one Running task

	minVruntime int64
	minSeeded   bool
	startTime   time.Time
	completed   int

	statusCh chan StatusEvent
	sink     func(StatusEvent)
	runErr   error

	csvFile   *os.File
	csvWriter *csv.Writer
}

// New creates a scheduler. A nil logger discards all log output.
func New(cfg Config, ctrl Controller, clock Clock, log *slog.Logger) *Scheduler {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
	}
	return &Scheduler{
		cfg:      cfg,
		log:      log,
		clock:    clock,
		ctrl:     ctrl,
		queue:    newRunQueue(),
		statusCh: make(chan StatusEvent, 256),
	}
}

// Add registers a task before the run starts. Identities must be unique
// and the batch must fit the fixed capacity.
func (s *Scheduler) Add(t *Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.tasks) >= MaxTasks {
		return fmt.Errorf("task %d: batch capacity %d exceeded", t.ID, MaxTasks)
	}
	for _, existing := range s.tasks {
		if existing.ID == t.ID {
			return fmt.Errorf("task %d already exists", t.ID)
		}
	}
	if t.Weight <= 0 {
		return &InvariantError{Task: t.ID, Invariant: "weight must be positive"}
	}

	s.tasks = append(s.tasks, t)
	return nil
}

// EnableCSVLogging opens the given file path for CSV logging of events.
// Must be called before Run().
func (s *Scheduler) EnableCSVLogging(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)

	w.Write([]string{"timestamp", "elapsed_ms", "event", "task_id", "vruntime_ns", "remaining_ms", "ran_ms"})
	w.Flush()
	s.csvFile = f
	s.csvWriter = w
	return nil
}

// SetSink registers a callback invoked for every status event. Must be
// called before Run().
func (s *Scheduler) SetSink(fn func(StatusEvent)) { s.sink = fn }

// Run executes decision cycles until all tasks complete, the context is
// canceled, or an invariant violation aborts the run. The loop runs in
// its own goroutine while Run drains the event stream.
func (s *Scheduler) Run(ctx context.Context) error {
	s.mu.Lock()
	s.startTime = s.clock.Now()
	s.mu.Unlock()

	go s.loop(ctx)

	for ev := range s.statusCh {
		s.handleEvent(ev)
	}

	if s.csvFile != nil {
		s.csvWriter.Flush()
		s.csvFile.Close()
	}

	return s.runErr
}

// nowMS is the elapsed time since scheduler start in milliseconds.
// Callers hold the mutex.
func (s *Scheduler) nowMS() int64 {
	return s.clock.Now().Sub(s.startTime).Milliseconds()
}

// timeSlice computes the nominal slice for a task. Heavier tasks get
// shorter slices but win selection more often, which yields
// proportional throughput rather than proportional slice length.
func (s *Scheduler) timeSlice(t *Task) int64 {
	slice := s.cfg.QuantumMS * BaselineWeight / t.Weight
	if slice < s.cfg.MinGranularityMS {
		slice = s.cfg.MinGranularityMS
	}
	return slice
}

// loop is the single decision goroutine.
func (s *Scheduler) loop(ctx context.Context) {
	defer close(s.statusCh)

	tick := time.Duration(s.cfg.TickMS) * time.Millisecond

	for {
		if ctx.Err() != nil {
			s.runErr = ctx.Err()
			return
		}

		s.mu.Lock()
		if s.completed == len(s.tasks) {
			s.mu.Unlock()
			return
		}

		now := s.nowMS()

		// Events are collected under the lock and sent only after
		// releasing it, so a full channel cannot stall the loop against
		// a consumer that wants the lock.
		var pending []StatusEvent
		for _, t := range s.admitArrivals(now) {
			pending = append(pending, StatusEvent{
				Time:        s.clock.Now(),
				ElapsedMS:   now,
				Kind:        StatusEnqueue,
				TaskID:      t.ID,
				Vruntime:    t.Vruntime,
				RemainingMS: t.RemainingMS,
			})
		}

		// 1) select; if nothing is runnable, idle for one tick. A task
		// stranded in Running by an earlier failed pause is not in the
		// queue, so the pause is retried here before idling; otherwise
		// a single-task run could never requeue it.
		next := s.selectNext(now)
		if next == nil {
			if prev := s.current; prev != nil {
				if err := s.ctrl.Pause(prev.ID); err != nil {
					s.log.Warn("pause retry failed",
						"task", prev.ID, "err", err)
				} else {
					prev.State = StatePaused
					s.queue.put(prev)
					s.current = nil
					pending = append(pending, StatusEvent{
						Time:        s.clock.Now(),
						ElapsedMS:   now,
						Kind:        StatusPreempt,
						TaskID:      prev.ID,
						Vruntime:    prev.Vruntime,
						RemainingMS: prev.RemainingMS,
						AgingBoost:  prev.AgingBoost,
					})
				}
				s.mu.Unlock()
				s.flush(pending)
				s.clock.Sleep(tick)
				continue
			}
			s.mu.Unlock()
			s.flush(pending)
			s.emit(StatusEvent{Time: s.clock.Now(), ElapsedMS: now, Kind: StatusIdle})
			s.clock.Sleep(tick)
			continue
		}

		if next.Weight <= 0 {
			s.runErr = &InvariantError{Task: next.ID, Invariant: "weight must be positive"}
			s.mu.Unlock()
			s.flush(pending)
			s.log.Error("aborting run", "err", s.runErr)
			return
		}

		// 2) context-switch away from a still-running task. A pause
		// failure leaves it Running; skip this cycle and retry rather
		// than ever having two tasks on the CPU.
		if s.current != nil && s.current != next {
			prev := s.current
			if err := s.ctrl.Pause(prev.ID); err != nil {
				s.log.Warn("pause failed, retrying next cycle",
					"task", prev.ID, "err", err)
				s.mu.Unlock()
				s.flush(pending)
				s.clock.Sleep(tick)
				continue
			}
			prev.State = StatePaused
			s.queue.put(prev)
			s.current = nil
			pending = append(pending, StatusEvent{
				Time:        s.clock.Now(),
				ElapsedMS:   now,
				Kind:        StatusPreempt,
				TaskID:      prev.ID,
				Vruntime:    prev.Vruntime,
				RemainingMS: prev.RemainingMS,
				AgingBoost:  prev.AgingBoost,
			})
		}

		// 3+4) resume the selected task. On failure it stays queued in
		// its prior state and is retried next cycle. The response time
		// is stamped only on the first real transition into Running, so
		// a failed resume does not count as having run.
		s.queue.remove(next)
		if err := s.ctrl.Resume(next.ID); err != nil {
			s.log.Warn("resume failed, retrying next cycle",
				"task", next.ID, "err", err)
			s.queue.put(next)
			s.mu.Unlock()
			s.flush(pending)
			s.clock.Sleep(tick)
			continue
		}
		if !next.Started {
			next.Started = true
			next.ResponseMS = now - next.ArrivalMS
		}
		next.State = StateRunning
		s.current = next

		// 5) weight-proportional slice with a granularity floor.
		sliceMS := s.timeSlice(next)

		pending = append(pending, StatusEvent{
			Time:        s.clock.Now(),
			ElapsedMS:   now,
			Kind:        StatusDispatch,
			TaskID:      next.ID,
			Vruntime:    next.Vruntime,
			RemainingMS: next.RemainingMS,
			AgingBoost:  next.AgingBoost,
		})
		s.mu.Unlock()
		s.flush(pending)

		s.log.Debug("dispatch",
			"task", next.ID,
			"slice_ms", sliceMS,
			"vruntime_ns", next.Vruntime,
			"remaining_ms", next.RemainingMS)

		// 6) the only blocking point: let the task execute for the
		// slice, then account the measured duration, not the requested
		// one.
		execStart := s.clock.Now()
		s.clock.Sleep(time.Duration(sliceMS) * time.Millisecond)
		executedMS := s.clock.Now().Sub(execStart).Milliseconds()

		s.mu.Lock()

		// 7) charge the execution to remaining work and vruntime.
		next.RemainingMS -= executedMS
		if err := s.applyExecution(next, executedMS); err != nil {
			s.runErr = err
			s.mu.Unlock()
			s.log.Error("aborting run", "err", err)
			return
		}

		// 8) completion check: the collaborator's observation or our
		// own accounting, whichever fires first. A poll error counts as
		// "not completed" and is retried; it never promotes the task.
		done, pollErr := s.ctrl.PollCompleted(next.ID)
		if pollErr != nil {
			s.log.Warn("completion poll failed", "task", next.ID, "err", pollErr)
			done = false
		}

		end := s.nowMS()
		if done || next.RemainingMS == 0 {
			next.RemainingMS = 0
			next.State = StateCompleted
			next.FinishMS = end
			next.TurnaroundMS = end - next.ArrivalMS
			next.WaitMS = next.TurnaroundMS - next.TotalMS
			s.current = nil
			s.completed++

			finishEv := StatusEvent{
				Time:       s.clock.Now(),
				ElapsedMS:  end,
				Kind:       StatusFinish,
				TaskID:     next.ID,
				Vruntime:   next.Vruntime,
				AgingBoost: next.AgingBoost,
				RanMS:      executedMS,
			}
			s.mu.Unlock()
			s.emit(finishEv)
			s.log.Debug("finish",
				"task", next.ID,
				"turnaround_ms", next.TurnaroundMS,
				"wait_ms", next.WaitMS)
			continue
		}

		// Slice expired with work left: pause and requeue. If the pause
		// fails the task stays Running and step 2 retries it.
		if err := s.ctrl.Pause(next.ID); err != nil {
			s.log.Warn("pause failed, task stays running",
				"task", next.ID, "err", err)
			s.mu.Unlock()
			continue
		}
		next.State = StatePaused
		s.current = nil
		s.queue.put(next)

		preemptEv := StatusEvent{
			Time:        s.clock.Now(),
			ElapsedMS:   end,
			Kind:        StatusPreempt,
			TaskID:      next.ID,
			Vruntime:    next.Vruntime,
			RemainingMS: next.RemainingMS,
			AgingBoost:  next.AgingBoost,
			RanMS:       executedMS,
		}
		s.mu.Unlock()
		s.emit(preemptEv)
	}
}

func (s *Scheduler) flush(evs []StatusEvent) {
	for _, ev := range evs {
		s.emit(ev)
	}
}

func (s *Scheduler) emit(ev StatusEvent) {
	s.statusCh <- ev
}

func (s *Scheduler) handleEvent(ev StatusEvent) {
	if s.csvWriter != nil && ev.Kind != StatusIdle {
		rec := []string{
			ev.Time.Format(time.RFC3339Nano),
			strconv.FormatInt(ev.ElapsedMS, 10),
			ev.Kind.String(),
			strconv.FormatUint(uint64(ev.TaskID), 10),
			strconv.FormatInt(ev.Vruntime, 10),
			strconv.FormatInt(ev.RemainingMS, 10),
			strconv.FormatInt(ev.RanMS, 10),
		}
		s.csvWriter.Write(rec)
		s.csvWriter.Flush()
	}

	if s.sink != nil {
		s.sink(ev)
	}
}

// TaskSnapshot is a read-only copy of one task's observable state.
type TaskSnapshot struct {
	ID               TaskID
	ArrivalMS        int64
	TotalMS          int64
	RemainingMS      int64
	Nice             int
	Weight           int64
	Vruntime         int64
	State            TaskState
	TotalWaitMS      int64
	EstimatedBurstMS int64
	Interactivity    int64
	AgingBoost       int64
	Started          bool
	ResponseMS       int64
	FinishMS         int64
	WaitMS           int64
	TurnaroundMS     int64
}

// Snapshot copies every task record in identity order for rendering and
// reporting collaborators. Safe to call at any time.
func (s *Scheduler) Snapshot() []TaskSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snaps := make([]TaskSnapshot, 0, len(s.tasks))
	for _, t := range s.tasks {
		snaps = append(snaps, TaskSnapshot{
			ID:               t.ID,
			ArrivalMS:        t.ArrivalMS,
			TotalMS:          t.TotalMS,
			RemainingMS:      t.RemainingMS,
			Nice:             t.Nice,
			Weight:           t.Weight,
			Vruntime:         t.Vruntime,
			State:            t.State,
			TotalWaitMS:      t.TotalWaitMS,
			EstimatedBurstMS: t.EstimatedBurstMS,
			Interactivity:    t.Interactivity,
			AgingBoost:       t.AgingBoost,
			Started:          t.Started,
			ResponseMS:       t.ResponseMS,
			FinishMS:         t.FinishMS,
			WaitMS:           t.WaitMS,
			TurnaroundMS:     t.TurnaroundMS,
		})
	}
	return snaps
}

//go:build unix

package proc

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"syscall"
	"time"

	"cfsched/internal/sched"
)

// SignalController coordinates real OS processes with SIGSTOP and
// SIGCONT. Each task is backed by one re-exec'ed worker child that
// busy-loops for the task's burst; the child is stopped immediately
// after launch so the scheduling loop owns every slice it runs.
type SignalController struct {
	mu    sync.Mutex
	procs map[sched.TaskID]*workerProc
	self  string
}

type workerProc struct {
	cmd  *exec.Cmd
	done bool
}

// NewSignalController resolves the current executable so workers can be
// spawned via the hidden worker subcommand.
func NewSignalController() (*SignalController, error) {
	self, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("resolve executable: %w", err)
	}
	return &SignalController{
		procs: make(map[sched.TaskID]*workerProc),
		self:  self,
	}, nil
}

// Spawn forks one worker for the task and stops it before it can make
// progress on its own.
func (c *SignalController) Spawn(id sched.TaskID, burstMS int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, dup := c.procs[id]; dup {
		return fmt.Errorf("task %d already spawned", id)
	}

	cmd := exec.Command(c.self, "worker", "--burst", strconv.FormatInt(burstMS, 10))
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("spawn worker for task %d: %w", id, err)
	}

	// Give the child a moment to reach its busy loop, then freeze it.
	time.Sleep(time.Millisecond)
	if err := syscall.Kill(cmd.Process.Pid, syscall.SIGSTOP); err != nil {
		return &sched.ControlError{Op: "pause", Task: id, Err: err}
	}

	c.procs[id] = &workerProc{cmd: cmd}
	return nil
}

// Pause delivers SIGSTOP. Pausing a completed task is a no-op success.
func (c *SignalController) Pause(id sched.TaskID) error {
	return c.signal(id, "pause", syscall.SIGSTOP)
}

// Resume delivers SIGCONT. Resuming a completed task is a no-op
// success.
func (c *SignalController) Resume(id sched.TaskID) error {
	return c.signal(id, "resume", syscall.SIGCONT)
}

func (c *SignalController) signal(id sched.TaskID, op string, sig syscall.Signal) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.procs[id]
	if !ok {
		return &sched.ControlError{Op: op, Task: id, Err: fmt.Errorf("no such worker")}
	}
	if p.done {
		return nil
	}
	if err := syscall.Kill(p.cmd.Process.Pid, sig); err != nil {
		if err == syscall.ESRCH {
			// Worker already exited between cycles.
			p.done = true
			return nil
		}
		return &sched.ControlError{Op: op, Task: id, Err: err}
	}
	return nil
}

// PollCompleted reaps the worker without blocking. Once a worker has
// exited the observation is sticky.
func (c *SignalController) PollCompleted(id sched.TaskID) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.procs[id]
	if !ok {
		return false, &sched.ControlError{Op: "poll", Task: id, Err: fmt.Errorf("no such worker")}
	}
	if p.done {
		return true, nil
	}

	var status syscall.WaitStatus
	pid, err := syscall.Wait4(p.cmd.Process.Pid, &status, syscall.WNOHANG, nil)
	if err != nil {
		if err == syscall.ECHILD {
			p.done = true
			return true, nil
		}
		return false, &sched.ControlError{Op: "poll", Task: id, Err: err}
	}
	if pid == p.cmd.Process.Pid && status.Exited() {
		p.done = true
		return true, nil
	}
	return false, nil
}

// Close kills any workers still alive. Called after the run so a
// canceled simulation does not leak stopped children.
func (c *SignalController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range c.procs {
		if p.done {
			continue
		}
		syscall.Kill(p.cmd.Process.Pid, syscall.SIGCONT)
		syscall.Kill(p.cmd.Process.Pid, syscall.SIGKILL)
		syscall.Wait4(p.cmd.Process.Pid, nil, 0, nil)
		p.done = true
	}
}

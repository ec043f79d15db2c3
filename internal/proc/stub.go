// Package proc provides process-control collaborators for the
// scheduler: an in-memory stub with no execution substrate, and a
// SIGSTOP/SIGCONT controller that coordinates real worker processes.
package proc

import (
	"sync"

	"cfsched/internal/sched"
)

// StubController satisfies the pause/resume/poll contract with pure
// bookkeeping. It has no execution substrate, so completion is driven
// entirely by the scheduling loop's own work accounting. It is the
// default controller and the deterministic test substrate.
type StubController struct {
	mu     sync.Mutex
	paused map[sched.TaskID]bool
}

func NewStubController() *StubController {
	return &StubController{paused: make(map[sched.TaskID]bool)}
}

// Pause records the task as off-CPU. Pausing an already-paused task is
// a no-op success.
func (c *StubController) Pause(id sched.TaskID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused[id] = true
	return nil
}

// Resume records the task as on-CPU. Resuming a running task is a no-op
// success.
func (c *StubController) Resume(id sched.TaskID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused[id] = false
	return nil
}

// PollCompleted always reports false: with no real process behind the
// task there is nothing to observe, and the loop completes tasks when
// their remaining work reaches zero.
func (c *StubController) PollCompleted(id sched.TaskID) (bool, error) {
	return false, nil
}

// Paused reports the last recorded control state for a task.
func (c *StubController) Paused(id sched.TaskID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused[id]
}

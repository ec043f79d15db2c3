// Package workload loads and validates the task batch the scheduler
// consumes: a fixed list of (arrival, burst, nice) tuples.
package workload

import (
	"errors"
	"fmt"
	"os"

	yaml "github.com/goccy/go-yaml"

	"cfsched/internal/sched"
)

var (
	ErrEmptyBatch       = errors.New("workload defines no tasks")
	ErrCapacityExceeded = errors.New("workload exceeds task capacity")
)

// Spec describes one task in the batch.
type Spec struct {
	ArrivalMS int64 `yaml:"arrival_ms"`
	BurstMS   int64 `yaml:"burst_ms"`
	Nice      int   `yaml:"nice"`
}

// Batch mirrors the workload YAML file.
type Batch struct {
	Tasks []Spec `yaml:"tasks"`
}

// Load reads and validates a workload file. All validation failures are
// configuration errors and surface before the scheduling loop starts.
func Load(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read workload file: %w", err)
	}

	var b Batch
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse workload file: %w", err)
	}

	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("invalid workload: %w", err)
	}
	return &b, nil
}

// Validate enforces the capacity bound and per-task ranges. The nice
// range is checked strictly here even though the weight table clamps,
// so a defective batch is rejected up front rather than silently bent
// into range.
func (b *Batch) Validate() error {
	if len(b.Tasks) == 0 {
		return ErrEmptyBatch
	}
	if len(b.Tasks) > sched.MaxTasks {
		return fmt.Errorf("%w: %d tasks, capacity %d", ErrCapacityExceeded, len(b.Tasks), sched.MaxTasks)
	}

	for i, t := range b.Tasks {
		if t.ArrivalMS < 0 {
			return fmt.Errorf("task %d: arrival_ms must not be negative, got %d", i, t.ArrivalMS)
		}
		if t.BurstMS <= 0 {
			return fmt.Errorf("task %d: burst_ms must be positive, got %d", i, t.BurstMS)
		}
		if t.Nice < sched.NiceMin || t.Nice > sched.NiceMax {
			return fmt.Errorf("task %d: nice %d outside %d..%d", i, t.Nice, sched.NiceMin, sched.NiceMax)
		}
	}
	return nil
}

// Default returns the demo batch: varied arrivals, burst lengths and
// priorities that exercise fairness, aging and interactivity together.
func Default() *Batch {
	return &Batch{Tasks: []Spec{
		{ArrivalMS: 0, BurstMS: 60, Nice: 0},
		{ArrivalMS: 10, BurstMS: 20, Nice: -5},
		{ArrivalMS: 15, BurstMS: 80, Nice: 5},
		{ArrivalMS: 20, BurstMS: 30, Nice: 0},
		{ArrivalMS: 30, BurstMS: 15, Nice: -10},
		{ArrivalMS: 35, BurstMS: 50, Nice: 0},
	}}
}

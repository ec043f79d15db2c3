package sched

import "time"

// Clock is the time collaborator. Now must be monotone non-decreasing
// within one run; Sleep is the loop's only blocking point. A fake clock
// that advances Now on Sleep makes the whole state machine
// deterministic under test.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// WallClock implements Clock over the runtime's monotonic clock.
type WallClock struct{}

func (WallClock) Now() time.Time        { return time.Now() }
func (WallClock) Sleep(d time.Duration) { time.Sleep(d) }

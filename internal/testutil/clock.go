package testutil

import (
	"sync"
	"time"
)

// StepClock is a fake wall clock for tests that time operations.
//
// Every call to Now returns the current instant and then advances it by a
// fixed step, so a measured duration between two calls is always one step.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type StepClock struct {
	mu    sync.Mutex
	start time.Time
	now   time.Time
	step  time.Duration
}

// NewStepClock creates a clock starting at the Unix epoch that advances by
// step on every reading.
func NewStepClock(step time.Duration) *StepClock {
	start := time.Unix(0, 0).UTC()
	return &StepClock{start: start, now: start, step: step}
}

// Now returns the current instant and advances the clock by one step.
func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

// Readings returns how many times Now has been called since the last Reset.
func (c *StepClock) Readings() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.step == 0 {
		return 0
	}
	return int(c.now.Sub(c.start) / c.step)
}

// Reset rewinds the clock to its start.
func (c *StepClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.start
}

package test

import (
	"sync"
	"time"
)

// ClockStub is a settable time source for deterministic lifecycle tests.
type ClockStub struct {
	mu  sync.Mutex
	now time.Time
}

// NewClockStub constructs a clock frozen at the given instant.
func NewClockStub(now time.Time) *ClockStub {
	return &ClockStub{now: now}
}

// Now returns the frozen instant.
func (c *ClockStub) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward.
func (c *ClockStub) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set pins the clock to an instant.
func (c *ClockStub) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

package testutil

import (
	"sync"
	"time"
)

// Epoch is the instant DeterministicClock starts from.
var Epoch = time.Date(2024, time.January, 2, 3, 4, 5, 0, time.UTC)

// DeterministicClock is a thread-safe clock for tests that advances by a fixed
// step on every reading.
//
// The first call to Now returns Epoch + step. Reset rewinds the clock so the
// same test can run again with identical timestamps.
type DeterministicClock struct {
	mu   sync.Mutex
	step time.Duration
	n    int64
}

// NewDeterministicClock creates a clock advancing one second per reading.
func NewDeterministicClock() *DeterministicClock {
	return NewDeterministicClockStep(time.Second)
}

// NewDeterministicClockStep creates a clock advancing by step per reading.
func NewDeterministicClockStep(step time.Duration) *DeterministicClock {
	return &DeterministicClock{step: step}
}

// Now advances the clock and returns the new instant.
func (c *DeterministicClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
	return Epoch.Add(time.Duration(c.n) * c.step)
}

// Current returns the last instant handed out without advancing.
func (c *DeterministicClock) Current() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Epoch.Add(time.Duration(c.n) * c.step)
}

// Reset rewinds the clock to Epoch.
func (c *DeterministicClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n = 0
}

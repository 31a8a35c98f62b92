package testutil

import (
	"sync"
	"time"

	"github.com/oakmont/stint/internal/period"
)

// FixedClock pins the processing date for tests.
//
// Release validation and stay derivation both consult "today", so a real
// clock makes golden snapshots rot. A FixedClock keeps every run of the
// same scenario byte-identical.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type FixedClock struct {
	mu    sync.Mutex
	today period.Date
}

// NewFixedClock creates a clock pinned to the given date.
func NewFixedClock(today period.Date) *FixedClock {
	return &FixedClock{today: today}
}

// ClockAt is shorthand for NewFixedClock(period.NewDate(...)).
func ClockAt(year int, month time.Month, day int) *FixedClock {
	return NewFixedClock(period.NewDate(year, month, day))
}

// Today returns the pinned date. Implements engine.Clock.
func (c *FixedClock) Today() period.Date {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.today
}

// SetToday moves the pinned date. Used by scenarios that replay the same
// batch at two processing dates.
func (c *FixedClock) SetToday(d period.Date) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.today = d
}

package engine

import (
	"time"

	"github.com/oakmont/stint/internal/period"
)

// Clock supplies the processing date ("today").
//
// Two stages consult it: release validation (a reported release date after
// today is an upstream error and is cleared) and stay-event derivation
// (open periods emit snapshots up to the current month). Injecting the
// date instead of reading the wall clock keeps every pipeline run
// reproducible: the same input and the same processing date always
// produce the same output.
type Clock interface {
	Today() period.Date
}

// SystemClock reads the current date from the wall clock. Production use.
type SystemClock struct{}

// Today returns the current local date.
func (SystemClock) Today() period.Date {
	return period.DateOf(time.Now())
}

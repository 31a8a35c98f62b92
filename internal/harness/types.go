package harness

import (
	"github.com/oakmont/stint/internal/events"
	"github.com/oakmont/stint/internal/period"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall scenario success: every assertion held and
	// every structural invariant held.
	Pass bool `json:"pass"`

	// Periods is the canonical period list the engine produced.
	Periods []period.Period `json:"periods"`

	// Events holds the derived admission/release/stay streams.
	Events events.Events `json:"events"`

	// Errors contains assertion and invariant failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

package harness

import (
	"fmt"
	"strings"

	"github.com/oakmont/stint/internal/events"
	"github.com/oakmont/stint/internal/period"
)

// Assertion validates the canonical periods or derived events.
type Assertion struct {
	// Type specifies the assertion type:
	// - "period_count": canonical list has exactly Count periods
	// - "period_order": canonical external IDs equal ExternalIDs, in order
	// - "event_count": the Kind stream has exactly Count events
	// - "event_contains": the Kind stream has an event on Date with Reason
	Type string `yaml:"type"`

	// Count is the expected number (period_count, event_count).
	Count int `yaml:"count,omitempty"`

	// ExternalIDs is the expected canonical order (period_order).
	ExternalIDs []string `yaml:"external_ids,omitempty"`

	// Kind selects the event stream: ADMISSION, RELEASE, or STAY.
	Kind string `yaml:"kind,omitempty"`

	// Date is the expected event date (event_contains).
	Date string `yaml:"date,omitempty"`

	// Reason is the expected admission or release reason (event_contains,
	// optional). Stay events match on admission reason.
	Reason string `yaml:"reason,omitempty"`
}

// Assertion type constants.
const (
	AssertPeriodCount   = "period_count"
	AssertPeriodOrder   = "period_order"
	AssertEventCount    = "event_count"
	AssertEventContains = "event_contains"
)

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertPeriodCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative", index)
		}
	case AssertPeriodOrder:
		if len(a.ExternalIDs) == 0 {
			return fmt.Errorf("assertions[%d]: external_ids list is required for period_order", index)
		}
	case AssertEventCount:
		if a.Kind == "" {
			return fmt.Errorf("assertions[%d]: kind is required for event_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative", index)
		}
	case AssertEventContains:
		if a.Kind == "" {
			return fmt.Errorf("assertions[%d]: kind is required for event_contains", index)
		}
		if a.Date == "" {
			return fmt.Errorf("assertions[%d]: date is required for event_contains", index)
		}
		if _, err := period.ParseDate(a.Date); err != nil {
			return fmt.Errorf("assertions[%d]: %v", index, err)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}

// EvaluateAssertions checks every assertion against the result and returns
// failure messages. An empty slice means all assertions held.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var failures []string
	for i, a := range assertions {
		if err := evaluateAssertion(result, a); err != nil {
			failures = append(failures, fmt.Sprintf("assertions[%d] (%s): %v", i, a.Type, err))
		}
	}
	return failures
}

func evaluateAssertion(result *Result, a Assertion) error {
	switch a.Type {
	case AssertPeriodCount:
		if len(result.Periods) != a.Count {
			return fmt.Errorf("expected %d canonical periods, got %d", a.Count, len(result.Periods))
		}
	case AssertPeriodOrder:
		return assertPeriodOrder(result.Periods, a.ExternalIDs)
	case AssertEventCount:
		n := eventStreamLen(result.Events, events.Kind(a.Kind))
		if n != a.Count {
			return fmt.Errorf("expected %d %s events, got %d", a.Count, a.Kind, n)
		}
	case AssertEventContains:
		return assertEventContains(result.Events, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}

func assertPeriodOrder(periods []period.Period, expected []string) error {
	actual := make([]string, len(periods))
	for i, p := range periods {
		actual[i] = p.ExternalID
	}
	if len(actual) != len(expected) {
		return fmt.Errorf("expected order [%s], got [%s]",
			strings.Join(expected, ", "), strings.Join(actual, ", "))
	}
	for i := range expected {
		if actual[i] != expected[i] {
			return fmt.Errorf("expected order [%s], got [%s]",
				strings.Join(expected, ", "), strings.Join(actual, ", "))
		}
	}
	return nil
}

func eventStreamLen(evs events.Events, kind events.Kind) int {
	switch kind {
	case events.KindAdmission:
		return len(evs.Admissions)
	case events.KindRelease:
		return len(evs.Releases)
	case events.KindStay:
		return len(evs.Stays)
	}
	return 0
}

func assertEventContains(evs events.Events, a Assertion) error {
	date, err := period.ParseDate(a.Date)
	if err != nil {
		return err
	}

	switch events.Kind(a.Kind) {
	case events.KindAdmission:
		for _, ev := range evs.Admissions {
			if ev.EventDate.Equal(date) && (a.Reason == "" || string(ev.AdmissionReason) == a.Reason) {
				return nil
			}
		}
	case events.KindRelease:
		for _, ev := range evs.Releases {
			if ev.EventDate.Equal(date) && (a.Reason == "" || string(ev.ReleaseReason) == a.Reason) {
				return nil
			}
		}
	case events.KindStay:
		for _, ev := range evs.Stays {
			if ev.EventDate.Equal(date) && (a.Reason == "" || string(ev.AdmissionReason) == a.Reason) {
				return nil
			}
		}
	default:
		return fmt.Errorf("unknown event kind %q", a.Kind)
	}

	if a.Reason != "" {
		return fmt.Errorf("no %s event on %s with reason %s", a.Kind, a.Date, a.Reason)
	}
	return fmt.Errorf("no %s event on %s", a.Kind, a.Date)
}

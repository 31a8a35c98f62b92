package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakmont/stint/internal/events"
	"github.com/oakmont/stint/internal/period"
	"github.com/oakmont/stint/internal/testutil"
)

func assertionResult() *Result {
	r := NewResult()
	r.Periods = []period.Period{
		testutil.PrisonPeriod("ip-1", "2019-01-01", "2019-06-01"),
		testutil.OpenPrisonPeriod("ip-2", "2019-08-01"),
	}
	r.Events = events.Derive(r.Periods, events.Enrichment{}, testutil.ClockAt(2020, 1, 15))
	return r
}

func TestEvaluateAssertionsAllPass(t *testing.T) {
	failures := EvaluateAssertions(assertionResult(), []Assertion{
		{Type: AssertPeriodCount, Count: 2},
		{Type: AssertPeriodOrder, ExternalIDs: []string{"ip-1", "ip-2"}},
		{Type: AssertEventCount, Kind: "ADMISSION", Count: 2},
		{Type: AssertEventCount, Kind: "RELEASE", Count: 1},
		{Type: AssertEventContains, Kind: "RELEASE", Date: "2019-06-01", Reason: "SENTENCE_SERVED"},
		{Type: AssertEventContains, Kind: "STAY", Date: "2019-03-31"},
	})
	assert.Empty(t, failures)
}

func TestEvaluateAssertionsFailures(t *testing.T) {
	tests := []struct {
		name      string
		assertion Assertion
		wantErr   string
	}{
		{
			"wrong period count",
			Assertion{Type: AssertPeriodCount, Count: 5},
			"expected 5 canonical periods, got 2",
		},
		{
			"wrong order",
			Assertion{Type: AssertPeriodOrder, ExternalIDs: []string{"ip-2", "ip-1"}},
			"expected order",
		},
		{
			"wrong event count",
			Assertion{Type: AssertEventCount, Kind: "RELEASE", Count: 3},
			"expected 3 RELEASE events, got 1",
		},
		{
			"no event on date",
			Assertion{Type: AssertEventContains, Kind: "ADMISSION", Date: "1999-01-01"},
			"no ADMISSION event on 1999-01-01",
		},
		{
			"right date wrong reason",
			Assertion{Type: AssertEventContains, Kind: "RELEASE", Date: "2019-06-01", Reason: "DEATH"},
			"with reason DEATH",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			failures := EvaluateAssertions(assertionResult(), []Assertion{tt.assertion})
			require.Len(t, failures, 1)
			assert.Contains(t, failures[0], tt.wantErr)
		})
	}
}

func TestEvaluateAssertionsIndexesFailures(t *testing.T) {
	failures := EvaluateAssertions(assertionResult(), []Assertion{
		{Type: AssertPeriodCount, Count: 2},
		{Type: AssertPeriodCount, Count: 9},
	})
	require.Len(t, failures, 1)
	assert.Contains(t, failures[0], "assertions[1]")
}

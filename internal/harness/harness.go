package harness

import (
	"fmt"

	"github.com/oakmont/stint/internal/engine"
	"github.com/oakmont/stint/internal/events"
	"github.com/oakmont/stint/internal/policy"
	"github.com/oakmont/stint/internal/testutil"
)

// Run executes a scenario end to end against the real engine and returns
// the result.
//
// Execution flow:
//  1. Compile the scenario's CUE policy packs (if any)
//  2. Prepare the raw periods with a clock pinned to the scenario date
//  3. Derive events from the canonical list
//  4. Check structural invariants and evaluate assertions
func Run(scenario *Scenario) (*Result, error) {
	policies := policy.Table{}
	if len(scenario.Policies) > 0 {
		var err error
		policies, err = policy.LoadFiles(scenario.Policies)
		if err != nil {
			return nil, fmt.Errorf("load policy packs: %w", err)
		}
	}

	clock := testutil.NewFixedClock(scenario.Today)
	eng := engine.New(policies, engine.WithClock(clock))

	cfg := engine.Config{
		Jurisdiction:                           scenario.Jurisdiction,
		CollapseTransfers:                      scenario.CollapseTransfersEnabled(),
		CollapseTemporaryCustodyWithRevocation: scenario.CollapseTemporaryCustody,
	}

	result := NewResult()

	canonical, err := eng.Prepare(scenario.Periods, cfg)
	if err != nil {
		return nil, fmt.Errorf("prepare periods: %w", err)
	}
	result.Periods = canonical

	enrich := events.Enrichment{
		CountyOfResidence:         scenario.Enrichment.CountyOfResidence,
		MostSeriousOffenseStatute: scenario.Enrichment.MostSeriousOffenseStatute,
		SpecializedPurpose:        scenario.Enrichment.SpecializedPurpose,
	}
	result.Events = events.Derive(canonical, enrich, clock)

	report := CheckInvariants(canonical)
	for _, v := range report.Violations {
		result.AddError(fmt.Sprintf("invariant: %s", v))
	}

	for _, failure := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(failure)
	}

	return result, nil
}

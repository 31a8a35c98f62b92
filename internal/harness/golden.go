package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/oakmont/stint/internal/period"
)

// Snapshot captures a scenario's complete output for golden comparison.
// All fields serialize through RFC 8785 canonical JSON, so two runs of the
// same scenario produce byte-identical snapshots.
type Snapshot struct {
	ScenarioName string
	Result       *Result
}

// ToCanonicalMap converts the snapshot to the map form canonical JSON can
// encode. Optional fields are omitted, never null.
func (s *Snapshot) ToCanonicalMap() map[string]any {
	periodList := make([]any, len(s.Result.Periods))
	for i, p := range s.Result.Periods {
		periodList[i] = period.Canonical(p)
	}

	admissions := make([]any, len(s.Result.Events.Admissions))
	for i, ev := range s.Result.Events.Admissions {
		admissions[i] = ev.Canonical()
	}
	releases := make([]any, len(s.Result.Events.Releases))
	for i, ev := range s.Result.Events.Releases {
		releases[i] = ev.Canonical()
	}
	stays := make([]any, len(s.Result.Events.Stays))
	for i, ev := range s.Result.Events.Stays {
		stays[i] = ev.Canonical()
	}

	m := map[string]any{
		"scenario_name": s.ScenarioName,
		"pass":          s.Result.Pass,
		"periods":       periodList,
		"admissions":    admissions,
		"releases":      releases,
		"stays":         stays,
	}
	if len(s.Result.Errors) > 0 {
		errs := make([]any, len(s.Result.Errors))
		for i, e := range s.Result.Errors {
			errs[i] = e
		}
		m["errors"] = errs
	}
	return m
}

// RunWithGolden executes a scenario and compares the output against a
// golden file stored in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns an error if scenario execution fails; golden mismatches fail the
// test via goldie.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares an already-obtained result against a golden file.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	snapshot := Snapshot{
		ScenarioName: scenarioName,
		Result:       result,
	}

	data, err := period.MarshalCanonical(snapshot.ToCanonicalMap())
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)

	return nil
}

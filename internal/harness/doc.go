// Package harness provides a conformance testing framework for the
// normalization engine.
//
// Scenarios are YAML files describing one person's raw period records, a
// pinned processing date, and assertions over the canonical output and
// derived events. The harness runs the real engine end to end (no mocks,
// no manufactured results): Prepare, then Derive, then assertion
// evaluation and structural invariant checks.
//
// Golden snapshots serialize the canonical output as RFC 8785 canonical
// JSON, so a scenario's golden file is byte-stable across runs and
// platforms. Regenerate with:
//
//	go test ./internal/harness -update
package harness

// Package engine implements the custody-period normalization pipeline.
//
// The engine turns one person's raw, partially-null, overlapping period
// records into a canonical, non-overlapping, chronologically ordered
// sequence. Stages run strictly in order, each a pure transformation of
// the previous stage's output:
//
//  1. Placeholder drop: periods without identity are excluded.
//  2. Chronological normalization: a strict total-order sort over
//     partially-null dates, then inference of missing dates, reasons, and
//     statuses from chronological neighbors.
//  3. Authority filter: jurisdiction-policy exclusions.
//  4. Admission/release validation: drops structurally unusable periods
//     and corrects illegal future releases.
//  5. Admission-date sort + collapse: transfer chains and (optionally)
//     temporary-custody/revocation pairs merge into single logical stays.
//
// The admission-validation stage runs after inference deliberately: a
// period carrying only a release date is repairable and must reach the
// inference pass before "missing admission date" becomes a drop condition.
//
// DETERMINISM:
// No randomness, no map iteration in ordering paths, no wall-clock reads
// outside the injected Clock. Sorting the same multiset of periods in any
// input order yields the same output order; running the pipeline on its
// own output is a no-op.
//
// ERROR MODEL:
// Bad data is recoverable and logged (dropped or corrected records).
// Contract violations (inputs that the validator or an earlier stage
// should have made impossible) return *ContractError and are never
// silently swallowed.
package engine

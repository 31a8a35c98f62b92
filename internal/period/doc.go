// Package period provides the canonical data model for custody periods.
//
// This package contains type definitions, copy-on-write builders, and the
// canonical serialization boundary. All other internal packages import
// period; period imports nothing internal. This keeps the data model the
// foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Period values are immutable by convention: mutation goes through the
//     With* builders, which return a modified deep copy. Callers never see
//     their inputs change underneath them.
//   - Dates are day-precision civil dates, never wall-clock timestamps.
//     Nullability is expressed with *Date; a nil date is "not reported".
//   - All JSON tags use snake_case.
package period

// Package store provides SQLite-backed persistence for normalization runs.
//
// The engine itself is pure; this package is the external collaborator that
// records what a run produced:
//   - Runs: one row per derive invocation (jurisdiction, processing date)
//   - Periods: the canonical period list, in canonical order
//   - Events: the derived admission/release/stay streams
//
// Writes are idempotent. Periods are keyed by content fingerprint and
// events by content-addressed ID, both computed from RFC 8785 canonical
// JSON with domain-separated SHA-256, so re-running the same derivation
// against the same database is a no-op. ON CONFLICT DO NOTHING carries the
// idempotency; constraint violations other than duplicates still error.
//
// Reads are deterministic: every query orders by seq ASC, then the
// content key ASC COLLATE BINARY, so two reads of the same database return
// identical slices.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
package store

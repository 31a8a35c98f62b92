package engine

import (
	"log/slog"

	"github.com/oakmont/stint/internal/period"
	"github.com/oakmont/stint/internal/policy"
)

// Config carries the per-invocation knobs for one person's batch.
type Config struct {
	// Jurisdiction is the single jurisdiction code governing every period
	// in the batch; it selects the authority-filter policy.
	Jurisdiction string

	// CollapseTransfers merges transfer-linked periods. Default true.
	CollapseTransfers bool

	// CollapseTemporaryCustodyWithRevocation merges a temporary-custody
	// hold with an immediately following revocation admission.
	// Default false; jurisdictions may opt in via their policy pack.
	CollapseTemporaryCustodyWithRevocation bool
}

// NewConfig returns the default configuration for a jurisdiction: transfer
// collapsing on, temporary-custody collapsing per the jurisdiction policy.
func NewConfig(jurisdiction string, pol policy.Policy) Config {
	return Config{
		Jurisdiction:                           jurisdiction,
		CollapseTransfers:                      true,
		CollapseTemporaryCustodyWithRevocation: pol.CollapseTemporaryCustodyWithRevocation,
	}
}

// Engine runs the normalization pipeline. It holds only immutable
// collaborators (the policy table and the processing clock), so one Engine
// is safe to share across a data-parallel batch stage: every Prepare call
// is a pure function of its arguments.
type Engine struct {
	policies policy.Table
	clock    Clock
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the processing clock. Tests and replay use a fixed
// date so future-release correction and stay derivation are reproducible.
func WithClock(c Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// New creates an Engine with the given policy table.
func New(policies policy.Table, opts ...Option) *Engine {
	e := &Engine{
		policies: policies,
		clock:    SystemClock{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Clock returns the engine's processing clock. Event derivation uses the
// same clock so "today" is consistent across the whole invocation.
func (e *Engine) Clock() Clock {
	return e.clock
}

// Policy returns the policy in effect for a jurisdiction code.
func (e *Engine) Policy(jurisdiction string) policy.Policy {
	return e.policies.For(jurisdiction)
}

// Prepare validates, normalizes, and collapses one person's period records
// into the canonical ordered list.
//
// The caller's slice and records are never modified: the pipeline operates
// on deep copies and returns a fresh slice. Stage order (placeholder drop,
// sort + inference, authority filter, admission validation, release
// validation, admission-date sort, collapse) is fixed; see the package
// documentation for why inference precedes admission validation.
//
// Errors are contract violations only (§ ContractError); bad data is
// dropped or corrected and logged, never returned as an error.
func (e *Engine) Prepare(periods []period.Period, cfg Config) ([]period.Period, error) {
	if len(periods) == 0 {
		return nil, nil
	}

	updated := DropPlaceholderPeriods(period.ClonePeriods(periods))
	if len(updated) == 0 {
		return nil, nil
	}

	updated, err := InferMissingDatesAndStatuses(updated)
	if err != nil {
		return nil, err
	}

	pol := e.policies.For(cfg.Jurisdiction)
	updated = DropPeriodsNotUnderStateCustodialAuthority(updated, pol)
	updated = ValidateAdmissionData(updated)
	updated = ValidateReleaseData(updated, e.clock)

	SortByAdmissionDate(updated)

	if cfg.CollapseTransfers {
		updated, err = CollapseTransfers(updated)
		if err != nil {
			return nil, err
		}
	}
	if cfg.CollapseTemporaryCustodyWithRevocation {
		updated, err = CollapseTemporaryCustodyAndRevocation(updated)
		if err != nil {
			return nil, err
		}
	}

	slog.Debug("prepared period batch",
		"jurisdiction", cfg.Jurisdiction,
		"input", len(periods),
		"canonical", len(updated),
	)

	return updated, nil
}

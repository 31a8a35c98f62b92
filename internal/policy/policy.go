package policy

// Policy holds the custodial-authority predicates and collapse defaults for
// one jurisdiction. Both predicates are pure functions of the jurisdiction
// code; the filter consults them independently and in no particular order.
type Policy struct {
	// Jurisdiction is the owning jurisdiction code (e.g. "US-MO").
	Jurisdiction string `json:"jurisdiction"`

	// TemporaryCustodyUnderStateAuthority reports whether temporary-custody
	// admissions count toward state calculations. When false, the authority
	// filter drops them.
	TemporaryCustodyUnderStateAuthority bool `json:"temporary_custody_under_state_authority"`

	// NonPrisonUnderStateAuthority reports whether non-state-prison periods
	// count toward state calculations. When false, the authority filter
	// drops them.
	NonPrisonUnderStateAuthority bool `json:"non_prison_under_state_authority"`

	// CollapseTemporaryCustodyWithRevocation is the jurisdiction's default
	// for merging a temporary-custody period with an immediately following
	// revocation admission. Callers may override per invocation.
	CollapseTemporaryCustodyWithRevocation bool `json:"collapse_temporary_custody_with_revocation"`
}

// Default is the policy applied to jurisdictions with no pack entry.
// It keeps every period: the event deriver already excludes non-prison
// custody from metrics, and silently dropping records for an unconfigured
// jurisdiction would be unrecoverable data loss.
var Default = Policy{
	TemporaryCustodyUnderStateAuthority: true,
	NonPrisonUnderStateAuthority:        true,
}

// Table maps jurisdiction code to policy.
type Table map[string]Policy

// For returns the policy for a jurisdiction code, falling back to Default
// (with the code filled in) when no entry exists.
func (t Table) For(code string) Policy {
	if p, ok := t[code]; ok {
		return p
	}
	p := Default
	p.Jurisdiction = code
	return p
}

// Merge returns a table containing all entries of t overlaid with entries
// of other. Neither input is modified.
func (t Table) Merge(other Table) Table {
	merged := make(Table, len(t)+len(other))
	for k, v := range t {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}

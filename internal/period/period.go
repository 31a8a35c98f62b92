package period

import "fmt"

// CustodyType classifies the facility system a period was served in.
type CustodyType string

const (
	CustodyStatePrison CustodyType = "STATE_PRISON"
	CustodyCountyJail  CustodyType = "COUNTY_JAIL"
	CustodyOther       CustodyType = "OTHER"
)

// Status is the reported custody status of a period.
type Status string

const (
	StatusInCustody    Status = "IN_CUSTODY"
	StatusNotInCustody Status = "NOT_IN_CUSTODY"
)

// AdmissionReason explains why a custody period began.
//
// AdmissionInternalUnknown marks values the engine inferred or defaulted;
// it never originates from source data.
type AdmissionReason string

const (
	AdmissionUnset               AdmissionReason = ""
	AdmissionNewAdmission        AdmissionReason = "NEW_ADMISSION"
	AdmissionTransfer            AdmissionReason = "TRANSFER"
	AdmissionParoleRevocation    AdmissionReason = "PAROLE_REVOCATION"
	AdmissionProbationRevocation AdmissionReason = "PROBATION_REVOCATION"
	AdmissionDualRevocation      AdmissionReason = "DUAL_REVOCATION"
	AdmissionTemporaryCustody    AdmissionReason = "TEMPORARY_CUSTODY"
	AdmissionInternalUnknown     AdmissionReason = "INTERNAL_UNKNOWN"
)

// ReleaseReason explains why a custody period ended.
type ReleaseReason string

const (
	ReleaseUnset              ReleaseReason = ""
	ReleaseSentenceServed     ReleaseReason = "SENTENCE_SERVED"
	ReleaseConditionalRelease ReleaseReason = "CONDITIONAL_RELEASE"
	ReleaseTransfer           ReleaseReason = "TRANSFER"
	ReleaseEscape             ReleaseReason = "ESCAPE"
	ReleaseDeath              ReleaseReason = "DEATH"
	ReleaseInternalUnknown    ReleaseReason = "INTERNAL_UNKNOWN"
)

// IsRevocation reports whether r is one of the revocation admission reasons
// eligible for the temporary-custody collapse.
func (r AdmissionReason) IsRevocation() bool {
	switch r {
	case AdmissionDualRevocation, AdmissionParoleRevocation, AdmissionProbationRevocation:
		return true
	}
	return false
}

// ParseCustodyType parses a custody type string.
func ParseCustodyType(s string) (CustodyType, error) {
	switch CustodyType(s) {
	case CustodyStatePrison, CustodyCountyJail, CustodyOther:
		return CustodyType(s), nil
	}
	return "", fmt.Errorf("unknown custody type %q", s)
}

// ParseStatus parses a custody status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusInCustody, StatusNotInCustody:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown custody status %q", s)
}

// ParseAdmissionReason parses an admission reason string. The empty string
// is valid and means "not reported".
func ParseAdmissionReason(s string) (AdmissionReason, error) {
	switch AdmissionReason(s) {
	case AdmissionUnset, AdmissionNewAdmission, AdmissionTransfer,
		AdmissionParoleRevocation, AdmissionProbationRevocation,
		AdmissionDualRevocation, AdmissionTemporaryCustody,
		AdmissionInternalUnknown:
		return AdmissionReason(s), nil
	}
	return "", fmt.Errorf("unknown admission reason %q", s)
}

// ParseReleaseReason parses a release reason string. The empty string is
// valid and means "not reported".
func ParseReleaseReason(s string) (ReleaseReason, error) {
	switch ReleaseReason(s) {
	case ReleaseUnset, ReleaseSentenceServed, ReleaseConditionalRelease,
		ReleaseTransfer, ReleaseEscape, ReleaseDeath, ReleaseInternalUnknown:
		return ReleaseReason(s), nil
	}
	return "", fmt.Errorf("unknown release reason %q", s)
}

// Period is one contiguous (as reported) custody stay for a person.
//
// Source records arrive with missing dates, missing reasons, and
// contradictory statuses; the engine normalizes them into a canonical,
// fully-dated sequence. ExternalID is the stable upstream identifier and
// the deterministic tie-break key; it is never invented or reused.
type Period struct {
	ExternalID   string      `json:"external_id" yaml:"external_id"`
	Jurisdiction string      `json:"jurisdiction" yaml:"jurisdiction"`
	CustodyType  CustodyType `json:"custody_type" yaml:"custody_type"`
	Status       Status      `json:"status" yaml:"status"`

	AdmissionDate           *Date           `json:"admission_date,omitempty" yaml:"admission_date,omitempty"`
	AdmissionReason         AdmissionReason `json:"admission_reason,omitempty" yaml:"admission_reason,omitempty"`
	AdmissionReasonRawText  string          `json:"admission_reason_raw_text,omitempty" yaml:"admission_reason_raw_text,omitempty"`
	ReleaseDate             *Date           `json:"release_date,omitempty" yaml:"release_date,omitempty"`
	ReleaseReason           ReleaseReason   `json:"release_reason,omitempty" yaml:"release_reason,omitempty"`
	ReleaseReasonRawText    string          `json:"release_reason_raw_text,omitempty" yaml:"release_reason_raw_text,omitempty"`
	ReleaseDateInferred     bool            `json:"release_date_inferred,omitempty" yaml:"release_date_inferred,omitempty"`

	// Facility attributes are carried through merges but never consulted
	// by ordering or inference.
	Facility             string `json:"facility,omitempty" yaml:"facility,omitempty"`
	HousingUnit          string `json:"housing_unit,omitempty" yaml:"housing_unit,omitempty"`
	SecurityLevel        string `json:"security_level,omitempty" yaml:"security_level,omitempty"`
	SecurityLevelRawText string `json:"security_level_raw_text,omitempty" yaml:"security_level_raw_text,omitempty"`

	ProjectedReleaseReason        ReleaseReason `json:"projected_release_reason,omitempty" yaml:"projected_release_reason,omitempty"`
	ProjectedReleaseReasonRawText string        `json:"projected_release_reason_raw_text,omitempty" yaml:"projected_release_reason_raw_text,omitempty"`
}

// IsPlaceholder reports whether the period lacks a stable identity.
// Placeholder periods are structural artifacts of upstream entity graphs
// and are excluded before any calculation.
func (p Period) IsPlaceholder() bool {
	return p.ExternalID == ""
}

// HasAdmissionDate reports whether an admission date was reported or inferred.
func (p Period) HasAdmissionDate() bool { return p.AdmissionDate != nil }

// HasReleaseDate reports whether a release date was reported or inferred.
func (p Period) HasReleaseDate() bool { return p.ReleaseDate != nil }

// ZeroLength reports whether the period was admitted and released on the
// same day. Requires both dates to be set.
func (p Period) ZeroLength() bool {
	return p.AdmissionDate != nil && p.ReleaseDate != nil &&
		p.AdmissionDate.Equal(*p.ReleaseDate)
}

// Clone returns a deep copy of p. Optional date pointers are duplicated so
// the copy shares no mutable state with the original.
func (p Period) Clone() Period {
	c := p
	c.AdmissionDate = cloneDate(p.AdmissionDate)
	c.ReleaseDate = cloneDate(p.ReleaseDate)
	return c
}

// ClonePeriods deep-copies a slice of periods. Pipeline stages operate on
// engine-owned copies; caller-supplied records are never mutated.
func ClonePeriods(periods []Period) []Period {
	if periods == nil {
		return nil
	}
	out := make([]Period, len(periods))
	for i, p := range periods {
		out[i] = p.Clone()
	}
	return out
}

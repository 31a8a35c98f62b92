package period

// Copy-on-write builders. Every mutation during inference and validation
// constructs a new value; the same source record can be referenced from
// multiple upstream sentence collections, so aliasing a shared object and
// assigning fields in place would corrupt sibling views.

// WithAdmissionDate returns a copy of p with the admission date set.
func (p Period) WithAdmissionDate(d Date) Period {
	c := p.Clone()
	c.AdmissionDate = DatePtr(d)
	return c
}

// WithAdmissionReason returns a copy of p with the admission reason set.
func (p Period) WithAdmissionReason(r AdmissionReason) Period {
	c := p.Clone()
	c.AdmissionReason = r
	return c
}

// WithReleaseDate returns a copy of p with the release date set.
// The inferred flag records whether the engine computed the date rather
// than observing it in source data.
func (p Period) WithReleaseDate(d Date, inferred bool) Period {
	c := p.Clone()
	c.ReleaseDate = DatePtr(d)
	c.ReleaseDateInferred = inferred
	return c
}

// WithReleaseReason returns a copy of p with the release reason set.
func (p Period) WithReleaseReason(r ReleaseReason) Period {
	c := p.Clone()
	c.ReleaseReason = r
	return c
}

// WithStatus returns a copy of p with the custody status set.
func (p Period) WithStatus(s Status) Period {
	c := p.Clone()
	c.Status = s
	return c
}

// WithoutReleaseData returns a copy of p with the release date and reason
// cleared and the status reset to in-custody. Used when source data
// erroneously pre-populated a future release; the raw text is kept as
// evidence of the original signal.
func (p Period) WithoutReleaseData() Period {
	c := p.Clone()
	c.ReleaseDate = nil
	c.ReleaseReason = ReleaseUnset
	c.ReleaseDateInferred = false
	c.Status = StatusInCustody
	return c
}

// Combine merges two periods that describe one real-world stay.
//
// The result takes start's identity and admission fields and end's status,
// release fields, facility attributes, and projected-release fields. When
// overwriteAdmissionReason is true the result instead takes end's admission
// reason and raw text; the temporary-custody collapse uses this because the
// revocation admission is the meaningful signal.
//
// The result shares no mutable state with either input.
func Combine(start, end Period, overwriteAdmissionReason bool) Period {
	merged := start.Clone()

	if overwriteAdmissionReason {
		merged.AdmissionReason = end.AdmissionReason
		merged.AdmissionReasonRawText = end.AdmissionReasonRawText
	}

	merged.Status = end.Status
	merged.ReleaseDate = cloneDate(end.ReleaseDate)
	merged.ReleaseReason = end.ReleaseReason
	merged.ReleaseReasonRawText = end.ReleaseReasonRawText
	merged.ReleaseDateInferred = end.ReleaseDateInferred
	merged.Facility = end.Facility
	merged.HousingUnit = end.HousingUnit
	merged.SecurityLevel = end.SecurityLevel
	merged.SecurityLevelRawText = end.SecurityLevelRawText
	merged.ProjectedReleaseReason = end.ProjectedReleaseReason
	merged.ProjectedReleaseReasonRawText = end.ProjectedReleaseReasonRawText

	return merged
}

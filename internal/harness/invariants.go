package harness

import (
	"fmt"

	"github.com/oakmont/stint/internal/period"
)

// Violation is one structural invariant failure in a canonical period list.
type Violation struct {
	PeriodID string `json:"period_id,omitempty"`
	Message  string `json:"message"`
}

// Error-style rendering for logs and reports.
func (v Violation) String() string {
	if v.PeriodID == "" {
		return v.Message
	}
	return fmt.Sprintf("%s: %s", v.PeriodID, v.Message)
}

// ValidationReport summarizes invariant checks over a canonical list.
type ValidationReport struct {
	TotalPeriods int         `json:"total_periods"`
	Violations   []Violation `json:"violations,omitempty"`
}

// Pass reports whether every invariant held.
func (r ValidationReport) Pass() bool {
	return len(r.Violations) == 0
}

// CheckInvariants verifies the structural guarantees every canonical
// period list must satisfy, regardless of scenario:
//
//   - every period has an external ID
//   - every period has an admission date and admission reason
//   - the list is in ascending admission-date order
//   - a closed period has both a release date and a release reason
//   - a release date is never before its admission date
//
// These hold by construction when the list came out of the engine; the
// checks exist to catch hand-edited fixtures and storage corruption.
func CheckInvariants(periods []period.Period) ValidationReport {
	report := ValidationReport{TotalPeriods: len(periods)}
	add := func(id, format string, args ...any) {
		report.Violations = append(report.Violations, Violation{
			PeriodID: id,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	for i, p := range periods {
		if p.ExternalID == "" {
			add("", "period at index %d has no external ID", i)
		}
		if !p.HasAdmissionDate() {
			add(p.ExternalID, "no admission date")
		}
		if p.AdmissionReason == period.AdmissionUnset {
			add(p.ExternalID, "no admission reason")
		}
		if i > 0 && p.HasAdmissionDate() && periods[i-1].HasAdmissionDate() &&
			p.AdmissionDate.Before(*periods[i-1].AdmissionDate) {
			add(p.ExternalID, "admission date %s out of order (previous period admitted %s)",
				p.AdmissionDate, periods[i-1].AdmissionDate)
		}
		if p.Status == period.StatusNotInCustody {
			if !p.HasReleaseDate() {
				add(p.ExternalID, "closed period has no release date")
			}
			if p.ReleaseReason == period.ReleaseUnset {
				add(p.ExternalID, "closed period has no release reason")
			}
		}
		if p.HasAdmissionDate() && p.HasReleaseDate() && p.ReleaseDate.Before(*p.AdmissionDate) {
			add(p.ExternalID, "release date %s precedes admission date %s",
				p.ReleaseDate, p.AdmissionDate)
		}
	}

	return report
}

package engine

import (
	"log/slog"

	"github.com/oakmont/stint/internal/period"
	"github.com/oakmont/stint/internal/policy"
)

// DropPeriodsNotUnderStateCustodialAuthority filters out periods that do
// not count toward calculations under the batch's jurisdiction policy.
//
// Two independent, order-insensitive predicates apply: jurisdictions where
// temporary custody is not under state authority drop temporary-custody
// admissions, and jurisdictions where non-prison custody is not under
// state authority drop everything but state-prison periods.
func DropPeriodsNotUnderStateCustodialAuthority(periods []period.Period, pol policy.Policy) []period.Period {
	filtered := periods
	if !pol.TemporaryCustodyUnderStateAuthority {
		filtered = dropTemporaryCustodyPeriods(filtered, pol.Jurisdiction)
	}
	if !pol.NonPrisonUnderStateAuthority {
		filtered = dropNonPrisonPeriods(filtered, pol.Jurisdiction)
	}
	return filtered
}

// dropTemporaryCustodyPeriods removes periods admitted to temporary custody.
func dropTemporaryCustodyPeriods(periods []period.Period, jurisdiction string) []period.Period {
	kept := make([]period.Period, 0, len(periods))
	for _, p := range periods {
		if p.AdmissionReason == period.AdmissionTemporaryCustody {
			slog.Info("dropping temporary-custody period outside state authority",
				"period", p.ExternalID,
				"jurisdiction", jurisdiction,
			)
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

// dropNonPrisonPeriods removes periods whose custody type is not state prison.
func dropNonPrisonPeriods(periods []period.Period, jurisdiction string) []period.Period {
	kept := make([]period.Period, 0, len(periods))
	for _, p := range periods {
		if p.CustodyType != period.CustodyStatePrison {
			slog.Info("dropping non-prison period outside state authority",
				"period", p.ExternalID,
				"custody_type", string(p.CustodyType),
				"jurisdiction", jurisdiction,
			)
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

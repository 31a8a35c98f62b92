package engine

import (
	"log/slog"

	"github.com/oakmont/stint/internal/period"
)

// DropPlaceholderPeriods removes periods without a stable identity.
// Placeholders are structural artifacts of upstream entity graphs and
// carry nothing usable for calculations.
func DropPlaceholderPeriods(periods []period.Period) []period.Period {
	kept := make([]period.Period, 0, len(periods))
	for _, p := range periods {
		if p.IsPlaceholder() {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

// ValidateAdmissionData removes periods that still lack an admission date
// or admission reason after inference. Drops are logged, never fatal:
// missing admission data on realistic input means the record was
// unrepairable, not that the pipeline broke.
func ValidateAdmissionData(periods []period.Period) []period.Period {
	validated := make([]period.Period, 0, len(periods))

	for _, p := range periods {
		if p.IsPlaceholder() {
			continue
		}
		if !p.HasAdmissionDate() {
			slog.Info("dropping period with no admission date",
				"period", p.ExternalID,
			)
			continue
		}
		if p.AdmissionReason == period.AdmissionUnset {
			slog.Info("dropping period with no admission reason",
				"period", p.ExternalID,
			)
			continue
		}
		validated = append(validated, p)
	}

	return validated
}

// ValidateReleaseData enforces the release-side invariants on closed
// periods and corrects illegal future releases.
//
//   - Closed (not-in-custody) with no release date: dropped.
//   - Closed with a release date but no reason: reason defaults to
//     INTERNAL_UNKNOWN.
//   - No release date but a release reason or raw text present: dropped
//     with a warning. The signal is ambiguous and deliberately NOT run
//     through inference; see the package's open-question notes.
//   - Release date after the processing date: the source pre-populated a
//     projected release. Date and reason are cleared (raw text kept) and
//     the status reset to in-custody.
//
// Returns a new slice of (possibly corrected) copies.
func ValidateReleaseData(periods []period.Period, clock Clock) []period.Period {
	today := clock.Today()
	validated := make([]period.Period, 0, len(periods))

	for _, p := range periods {
		if !p.HasReleaseDate() && p.Status != period.StatusInCustody {
			if p.ReleaseReason == period.ReleaseUnset && p.ReleaseReasonRawText == "" {
				slog.Info("dropping closed period with no release date",
					"period", p.ExternalID,
				)
				continue
			}
		}
		if p.ReleaseReason == period.ReleaseUnset && p.Status != period.StatusInCustody && p.HasReleaseDate() {
			slog.Info("defaulting missing release reason",
				"period", p.ExternalID,
				"release_reason", string(period.ReleaseInternalUnknown),
			)
			p = p.WithReleaseReason(period.ReleaseInternalUnknown)
		}

		if !p.HasReleaseDate() && (p.ReleaseReason != period.ReleaseUnset || p.ReleaseReasonRawText != "") {
			slog.Warn("dropping period with release reason but no release date",
				"period", p.ExternalID,
				"release_reason", string(p.ReleaseReason),
				"release_reason_raw_text", p.ReleaseReasonRawText,
			)
			continue
		}

		if p.HasReleaseDate() && p.ReleaseDate.After(today) {
			slog.Info("clearing future release date",
				"period", p.ExternalID,
				"release_date", p.ReleaseDate.String(),
				"today", today.String(),
			)
			p = p.WithoutReleaseData()
		}

		validated = append(validated, p)
	}

	return validated
}

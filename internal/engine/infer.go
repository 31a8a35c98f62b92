package engine

import (
	"log/slog"

	"github.com/oakmont/stint/internal/period"
)

// InferMissingDatesAndStatuses sorts periods chronologically, then fills
// in missing dates, reasons, and statuses from chronological neighbors.
//
// Release side: a period with no release date takes the next period's
// admission date (or its release date if that is also unset). The release
// reason is inferred as TRANSFER when the next period was admitted by
// transfer, else INTERNAL_UNKNOWN, and the status becomes not-in-custody.
// The last period, if not in custody, closes as a zero-length stay.
//
// Admission side: a period with no admission date takes the previous
// period's release date (already inferred by the time we reach it). The
// first period falls back to its own release date. Admission reasons
// mirror the release inference: TRANSFER when the previous period released
// by transfer, else INTERNAL_UNKNOWN.
//
// Inference never overwrites a reported reason, only unset ones.
//
// Returns a new slice; the input is not modified.
func InferMissingDatesAndStatuses(periods []period.Period) ([]period.Period, error) {
	out := period.ClonePeriods(periods)
	if err := SortChronological(out); err != nil {
		return nil, err
	}

	for i := range out {
		p := out[i]

		if !p.HasReleaseDate() {
			if i == len(out)-1 {
				// Last period. A not-in-custody status with no release date
				// means the stay closed the day it opened.
				if p.Status != period.StatusInCustody {
					if p.HasAdmissionDate() {
						p = p.WithReleaseDate(*p.AdmissionDate, true)
					}
					p = p.WithReleaseReason(period.ReleaseInternalUnknown)
					slog.Info("inferred zero-length close on final period",
						"period", p.ExternalID,
					)
				}
			} else {
				next := out[i+1]
				var boundary period.Date
				switch {
				case next.HasAdmissionDate():
					boundary = *next.AdmissionDate
				case next.HasReleaseDate():
					boundary = *next.ReleaseDate
				default:
					return nil, newContractError(ErrCodeMissingDates, next.ExternalID,
						"neighbor period has neither admission nor release date")
				}
				p = p.WithReleaseDate(boundary, true)

				if p.ReleaseReason == period.ReleaseUnset {
					if next.AdmissionReason == period.AdmissionTransfer {
						p = p.WithReleaseReason(period.ReleaseTransfer)
					} else {
						p = p.WithReleaseReason(period.ReleaseInternalUnknown)
					}
				}
				p = p.WithStatus(period.StatusNotInCustody)
				slog.Info("inferred release from next period",
					"period", p.ExternalID,
					"release_date", p.ReleaseDate.String(),
					"release_reason", string(p.ReleaseReason),
				)
			}
		}

		if !p.HasAdmissionDate() {
			if i == 0 {
				if p.HasReleaseDate() {
					p = p.WithAdmissionDate(*p.ReleaseDate)
				}
				p = p.WithAdmissionReason(period.AdmissionInternalUnknown)
				slog.Info("inferred admission from own release on first period",
					"period", p.ExternalID,
				)
			} else {
				prev := out[i-1]
				if prev.HasReleaseDate() {
					p = p.WithAdmissionDate(*prev.ReleaseDate)
				}
				if p.AdmissionReason == period.AdmissionUnset {
					if prev.ReleaseReason == period.ReleaseTransfer {
						p = p.WithAdmissionReason(period.AdmissionTransfer)
					} else {
						p = p.WithAdmissionReason(period.AdmissionInternalUnknown)
					}
				}
				slog.Info("inferred admission from previous period",
					"period", p.ExternalID,
					"admission_reason", string(p.AdmissionReason),
				)
			}
		}

		out[i] = p
	}

	return out, nil
}

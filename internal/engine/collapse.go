package engine

import (
	"sort"

	"github.com/oakmont/stint/internal/period"
)

// SortByAdmissionDate orders periods by ascending admission date with
// release date as secondary key (unset release dates last). This is the
// order the collapser requires; it differs from the chronological
// comparator used before inference, so a second sort pass is mandatory
// between the two stages.
//
// The sort is stable: periods equal on both keys keep their normalizer
// output order, which is itself deterministic.
func SortByAdmissionDate(periods []period.Period) {
	sort.SliceStable(periods, func(i, j int) bool {
		a, b := periods[i], periods[j]
		if a.HasAdmissionDate() && b.HasAdmissionDate() && !a.AdmissionDate.Equal(*b.AdmissionDate) {
			return a.AdmissionDate.Before(*b.AdmissionDate)
		}
		// Secondary: release date, unset last.
		if a.HasReleaseDate() != b.HasReleaseDate() {
			return a.HasReleaseDate()
		}
		if a.HasReleaseDate() && b.HasReleaseDate() {
			return a.ReleaseDate.Before(*b.ReleaseDate)
		}
		return false
	})
}

// checkAdmissionOrder verifies the collapse precondition: periods in
// ascending admission-date order with every admission date set. Collapse
// on an unsorted list silently produces wrong merges, so this fails loudly
// instead.
func checkAdmissionOrder(periods []period.Period) error {
	for i, p := range periods {
		if !p.HasAdmissionDate() {
			return newContractError(ErrCodeInferenceIncomplete, p.ExternalID,
				"period reached collapse with no admission date")
		}
		if i > 0 && p.AdmissionDate.Before(*periods[i-1].AdmissionDate) {
			return newContractError(ErrCodeUnsortedInput, p.ExternalID,
				"collapse invoked on list not sorted by admission date")
		}
	}
	return nil
}

// CollapseTransfers merges periods connected by transfer chains.
//
// Walking left to right, an "open transfer" is flagged whenever the
// current period released by transfer. If the next period was admitted by
// transfer while a transfer is open, it merges into the previously
// retained period instead of being appended: the two records describe one
// continuous stay across a facility move. A chain of N transfer-linked
// periods collapses to one period spanning the first admission to the
// last release.
//
// Requires ascending admission-date order.
func CollapseTransfers(sorted []period.Period) ([]period.Period, error) {
	if err := checkAdmissionOrder(sorted); err != nil {
		return nil, err
	}

	collapsed := make([]period.Period, 0, len(sorted))
	openTransfer := false

	for _, p := range sorted {
		if openTransfer && p.AdmissionReason == period.AdmissionTransfer {
			start := collapsed[len(collapsed)-1]
			collapsed[len(collapsed)-1] = period.Combine(start, p, false)
		} else {
			collapsed = append(collapsed, p)
		}

		// The merged period carries p's release fields either way.
		openTransfer = p.ReleaseReason == period.ReleaseTransfer
	}

	return collapsed, nil
}

// CollapseTemporaryCustodyAndRevocation merges a temporary-custody period
// with an immediately following revocation admission: the hold and the
// revocation are one stay, and the revocation is the meaningful admission
// reason, so the merge overwrites the admission reason with the later
// period's.
//
// The pair merges only when the boundary is exact: the hold's release
// date equals the revocation's admission date. A gap of even one day
// means two separate stays.
//
// Requires ascending admission-date order.
func CollapseTemporaryCustodyAndRevocation(sorted []period.Period) ([]period.Period, error) {
	if err := checkAdmissionOrder(sorted); err != nil {
		return nil, err
	}

	collapsed := make([]period.Period, 0, len(sorted))
	var previous *period.Period

	for i := range sorted {
		p := sorted[i]
		if previous == nil {
			previous = &p
			continue
		}

		if datesMatch(previous.ReleaseDate, p.AdmissionDate) &&
			previous.AdmissionReason == period.AdmissionTemporaryCustody &&
			p.AdmissionReason.IsRevocation() {
			merged := period.Combine(*previous, p, true)
			collapsed = append(collapsed, merged)
			previous = nil
		} else {
			collapsed = append(collapsed, *previous)
			previous = &p
		}
	}

	if previous != nil {
		collapsed = append(collapsed, *previous)
	}

	return collapsed, nil
}

func datesMatch(a, b *period.Date) bool {
	return a != nil && b != nil && a.Equal(*b)
}

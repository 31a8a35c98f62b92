package engine

import (
	"sort"
	"strings"

	"github.com/oakmont/stint/internal/period"
)

// Compare is the chronological total order used before inference.
//
// Periods are compared by admission date when both are set, otherwise by
// whichever of admission/release date each has. Equal anchor dates are
// broken, in order, by:
//
//	(a) release date, when both have one
//	(b) custody status, when neither has one (in-custody sorts last)
//	(c) when exactly one has a release date: a zero-length stay sorts
//	    first, a positive-length stay sorts last
//
// and any remaining tie by lexicographic external ID. An admission-only
// period and a release-only period sharing the same date order
// admission-before-release.
//
// The identity tie-break makes this a strict total order: no two distinct
// periods compare equal unless their external IDs are equal. That property
// is what guarantees reproducible sort results for any input permutation.
//
// PRECONDITIONS (checked by checkChronology, not here): every period has
// an external ID and at least one of its two dates. Compare on inputs
// violating them is a programming error upstream.
func Compare(a, b period.Period) int {
	if admissionDatesEqual(a, b) {
		return compareEqualAdmission(a, b)
	}

	// Anchor on admission date when set, else release date.
	anchorA := anchorDate(a)
	anchorB := anchorDate(b)

	if anchorA.Equal(anchorB) {
		if a.HasReleaseDate() && b.HasReleaseDate() {
			// Same release anchor; identity decides.
			return compareExternalID(a, b)
		}
		// One period is admitted and the other released on the same day:
		// the admission comes first.
		if a.HasAdmissionDate() {
			return -1
		}
		return 1
	}
	return anchorA.Compare(anchorB)
}

// SortChronological sorts periods with Compare after verifying the
// comparator's preconditions. The sort itself is deterministic for any
// input permutation because Compare is a strict total order.
func SortChronological(periods []period.Period) error {
	if err := checkChronology(periods); err != nil {
		return err
	}
	sort.SliceStable(periods, func(i, j int) bool {
		return Compare(periods[i], periods[j]) < 0
	})
	return nil
}

// checkChronology verifies the comparator preconditions: every period
// carries an identity and at least one date. Violations mean the
// placeholder drop or upstream validation did not run.
func checkChronology(periods []period.Period) error {
	for _, p := range periods {
		if p.IsPlaceholder() {
			return newContractError(ErrCodePlaceholder, "",
				"placeholder period reached chronological sort")
		}
		if !p.HasAdmissionDate() && !p.HasReleaseDate() {
			return newContractError(ErrCodeMissingDates, p.ExternalID,
				"period has neither admission nor release date")
		}
	}
	return nil
}

// anchorDate returns the date a period is ordered by: the admission date
// when set, else the release date. Preconditions guarantee one exists.
func anchorDate(p period.Period) period.Date {
	if p.AdmissionDate != nil {
		return *p.AdmissionDate
	}
	return *p.ReleaseDate
}

func admissionDatesEqual(a, b period.Period) bool {
	if a.AdmissionDate == nil || b.AdmissionDate == nil {
		return a.AdmissionDate == nil && b.AdmissionDate == nil
	}
	return a.AdmissionDate.Equal(*b.AdmissionDate)
}

// compareEqualAdmission breaks ties between periods sharing an admission
// date (including the case where neither reports one).
func compareEqualAdmission(a, b period.Period) int {
	if a.HasReleaseDate() && b.HasReleaseDate() {
		if c := a.ReleaseDate.Compare(*b.ReleaseDate); c != 0 {
			return c
		}
		return compareExternalID(a, b)
	}

	if !a.HasReleaseDate() && !b.HasReleaseDate() {
		return compareCustodyStatus(a, b)
	}

	// Exactly one has a release date. A zero-length stay closes before the
	// other opens; an open period with a positive-length sibling was likely
	// just never closed, so the sibling sorts after it.
	if a.HasReleaseDate() {
		if a.ZeroLength() {
			return -1
		}
		return 1
	}
	if b.ZeroLength() {
		return 1
	}
	return -1
}

// compareCustodyStatus orders in-custody periods after all others; equal
// statuses fall through to the identity tie-break. Statuses other than
// IN_CUSTODY are treated as not-in-custody.
func compareCustodyStatus(a, b period.Period) int {
	aIn := a.Status == period.StatusInCustody
	bIn := b.Status == period.StatusInCustody
	if aIn == bIn {
		return compareExternalID(a, b)
	}
	if aIn {
		return 1
	}
	return -1
}

// compareExternalID is the final, arbitrary-but-deterministic tie-break.
// Byte-wise string order carries no domain meaning.
func compareExternalID(a, b period.Period) int {
	return strings.Compare(a.ExternalID, b.ExternalID)
}

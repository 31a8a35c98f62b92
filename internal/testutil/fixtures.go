package testutil

import (
	"fmt"

	"github.com/oakmont/stint/internal/period"
)

// MustDate parses an ISO-8601 date or panics. Test fixtures only.
func MustDate(s string) period.Date {
	d, err := period.ParseDate(s)
	if err != nil {
		panic(fmt.Sprintf("testutil: bad fixture date %q: %v", s, err))
	}
	return d
}

// DateP parses an ISO-8601 date and returns a pointer, or nil for the
// empty string. Fixture shorthand for optional dates.
func DateP(s string) *period.Date {
	if s == "" {
		return nil
	}
	return period.DatePtr(MustDate(s))
}

// PrisonPeriod builds a closed state-prison period with the usual fixture
// defaults. Empty date strings leave the field unset.
func PrisonPeriod(externalID, admission, release string) period.Period {
	p := period.Period{
		ExternalID:    externalID,
		Jurisdiction:  "US_XX",
		CustodyType:   period.CustodyStatePrison,
		Status:        period.StatusNotInCustody,
		Facility:      "PRISON3",
		AdmissionDate: DateP(admission),
		ReleaseDate:   DateP(release),
	}
	if p.AdmissionDate != nil {
		p.AdmissionReason = period.AdmissionNewAdmission
	}
	if p.ReleaseDate != nil {
		p.ReleaseReason = period.ReleaseSentenceServed
	}
	return p
}

// OpenPrisonPeriod builds an in-custody state-prison period with no
// release data.
func OpenPrisonPeriod(externalID, admission string) period.Period {
	p := PrisonPeriod(externalID, admission, "")
	p.Status = period.StatusInCustody
	return p
}

// JailPeriod builds a closed county-jail period.
func JailPeriod(externalID, admission, release string) period.Period {
	p := PrisonPeriod(externalID, admission, release)
	p.CustodyType = period.CustodyCountyJail
	return p
}

package events

import (
	"log/slog"

	"github.com/oakmont/stint/internal/period"
)

// Clock supplies the processing date for open-period stay derivation.
// It matches the engine's clock so one invocation has one "today".
type Clock interface {
	Today() period.Date
}

// Enrichment carries the read-only side tables joined onto events at
// derivation time. All lookups are keyed by the period's external ID;
// missing keys simply leave the event field empty.
type Enrichment struct {
	// CountyOfResidence is person-level, not period-level.
	CountyOfResidence string

	// MostSeriousOffenseStatute maps period external ID to the statute of
	// the most serious offense committed before the period's admission.
	MostSeriousOffenseStatute map[string]string

	// SpecializedPurpose maps period external ID to a specialized
	// purpose-for-incarceration label (treatment, shock, and so on).
	SpecializedPurpose map[string]string
}

func (en Enrichment) statuteFor(externalID string) string {
	return en.MostSeriousOffenseStatute[externalID]
}

func (en Enrichment) purposeFor(externalID string) string {
	return en.SpecializedPurpose[externalID]
}

// Derive walks a canonical period list and emits the three event streams.
//
// Only state-prison periods produce events. Admission and release streams
// are de-duplicated first: upstream sentence records frequently reference
// the same stay more than once, and a repeated (date, reason) pair is one
// signal, not two. Stay events need no dedup because collapsed periods
// cannot overlap.
func Derive(periods []period.Period, enrich Enrichment, clock Clock) Events {
	var out Events

	prison := make([]period.Period, 0, len(periods))
	for _, p := range periods {
		if p.CustodyType != period.CustodyStatePrison {
			slog.Debug("skipping non-prison period in event derivation",
				"period", p.ExternalID,
				"custody_type", string(p.CustodyType),
			)
			continue
		}
		prison = append(prison, p)
	}

	for _, p := range DeDuplicatedAdmissions(prison) {
		if ev, ok := admissionEventForPeriod(p, enrich); ok {
			out.Admissions = append(out.Admissions, ev)
		}
	}
	for _, p := range DeDuplicatedReleases(prison) {
		if ev, ok := releaseEventForPeriod(p, enrich); ok {
			out.Releases = append(out.Releases, ev)
		}
	}
	for _, p := range prison {
		out.Stays = append(out.Stays, endOfMonthStays(p, enrich, clock)...)
	}

	return out
}

func admissionEventForPeriod(p period.Period, enrich Enrichment) (AdmissionEvent, bool) {
	if !p.HasAdmissionDate() || p.AdmissionReason == period.AdmissionUnset {
		return AdmissionEvent{}, false
	}
	return AdmissionEvent{
		Jurisdiction:           p.Jurisdiction,
		EventDate:              *p.AdmissionDate,
		Facility:               p.Facility,
		CountyOfResidence:      enrich.CountyOfResidence,
		AdmissionReason:        p.AdmissionReason,
		AdmissionReasonRawText: p.AdmissionReasonRawText,
		SpecializedPurpose:     enrich.purposeFor(p.ExternalID),
	}, true
}

func releaseEventForPeriod(p period.Period, enrich Enrichment) (ReleaseEvent, bool) {
	if !p.HasReleaseDate() || p.ReleaseReason == period.ReleaseUnset {
		return ReleaseEvent{}, false
	}
	return ReleaseEvent{
		Jurisdiction:         p.Jurisdiction,
		EventDate:            *p.ReleaseDate,
		Facility:             p.Facility,
		CountyOfResidence:    enrich.CountyOfResidence,
		ReleaseReason:        p.ReleaseReason,
		ReleaseReasonRawText: p.ReleaseReasonRawText,
	}, true
}

// endOfMonthStays emits one event per month-end the person spent in this
// period, from the admission month's end while the month-end is on or
// before the release date (or the processing date for open periods).
//
// A period admitted and released inside one month never reaches its own
// month-end, but it is still a real stay, so it yields exactly one event
// anchored at the admission month's end.
func endOfMonthStays(p period.Period, enrich Enrichment, clock Clock) []StayEvent {
	if !p.HasAdmissionDate() {
		return nil
	}

	bound := clock.Today()
	if p.HasReleaseDate() {
		bound = *p.ReleaseDate
	}

	var stays []StayEvent
	eventDate := p.AdmissionDate.EndOfMonth()
	for !eventDate.After(bound) {
		stays = append(stays, stayEventForDate(p, enrich, eventDate))
		eventDate = eventDate.AddDays(1).EndOfMonth()
	}

	if len(stays) == 0 && p.HasReleaseDate() {
		stays = append(stays, stayEventForDate(p, enrich, p.AdmissionDate.EndOfMonth()))
	}

	return stays
}

func stayEventForDate(p period.Period, enrich Enrichment, eventDate period.Date) StayEvent {
	return StayEvent{
		Jurisdiction:              p.Jurisdiction,
		EventDate:                 eventDate,
		Facility:                  p.Facility,
		CountyOfResidence:         enrich.CountyOfResidence,
		AdmissionReason:           p.AdmissionReason,
		AdmissionReasonRawText:    p.AdmissionReasonRawText,
		MostSeriousOffenseStatute: enrich.statuteFor(p.ExternalID),
	}
}

// DeDuplicatedAdmissions returns the periods carrying distinct admission
// signals. Two periods with the same admission date and reason are one
// signal; the first occurrence wins. Different reasons on the same date
// are distinct signals and both survive.
func DeDuplicatedAdmissions(periods []period.Period) []period.Period {
	type key struct {
		date   string
		reason period.AdmissionReason
	}
	seen := make(map[key]bool, len(periods))
	unique := make([]period.Period, 0, len(periods))

	for _, p := range periods {
		k := key{reason: p.AdmissionReason}
		if p.HasAdmissionDate() {
			k.date = p.AdmissionDate.String()
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		unique = append(unique, p)
	}
	return unique
}

// DeDuplicatedReleases is the release-side counterpart of
// DeDuplicatedAdmissions, keyed on release date and reason.
func DeDuplicatedReleases(periods []period.Period) []period.Period {
	type key struct {
		date   string
		reason period.ReleaseReason
	}
	seen := make(map[key]bool, len(periods))
	unique := make([]period.Period, 0, len(periods))

	for _, p := range periods {
		k := key{reason: p.ReleaseReason}
		if p.HasReleaseDate() {
			k.date = p.ReleaseDate.String()
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		unique = append(unique, p)
	}
	return unique
}

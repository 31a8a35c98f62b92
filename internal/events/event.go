package events

import (
	"github.com/oakmont/stint/internal/period"
)

// Kind discriminates the three event streams.
type Kind string

const (
	KindAdmission Kind = "ADMISSION"
	KindRelease   Kind = "RELEASE"
	KindStay      Kind = "STAY"
)

// AdmissionEvent marks entry into state-prison custody.
type AdmissionEvent struct {
	Jurisdiction      string      `json:"jurisdiction" yaml:"jurisdiction"`
	EventDate         period.Date `json:"event_date" yaml:"event_date"`
	Facility          string      `json:"facility,omitempty" yaml:"facility,omitempty"`
	CountyOfResidence string      `json:"county_of_residence,omitempty" yaml:"county_of_residence,omitempty"`

	AdmissionReason        period.AdmissionReason `json:"admission_reason" yaml:"admission_reason"`
	AdmissionReasonRawText string                 `json:"admission_reason_raw_text,omitempty" yaml:"admission_reason_raw_text,omitempty"`

	// SpecializedPurpose is enrichment data (treatment, shock
	// incarceration, and so on), passed through untouched.
	SpecializedPurpose string `json:"specialized_purpose,omitempty" yaml:"specialized_purpose,omitempty"`
}

// ReleaseEvent marks exit from state-prison custody.
type ReleaseEvent struct {
	Jurisdiction      string      `json:"jurisdiction" yaml:"jurisdiction"`
	EventDate         period.Date `json:"event_date" yaml:"event_date"`
	Facility          string      `json:"facility,omitempty" yaml:"facility,omitempty"`
	CountyOfResidence string      `json:"county_of_residence,omitempty" yaml:"county_of_residence,omitempty"`

	ReleaseReason        period.ReleaseReason `json:"release_reason" yaml:"release_reason"`
	ReleaseReasonRawText string               `json:"release_reason_raw_text,omitempty" yaml:"release_reason_raw_text,omitempty"`
}

// StayEvent is a month-end snapshot: the person was in state-prison
// custody on EventDate (the last day of a calendar month).
type StayEvent struct {
	Jurisdiction      string      `json:"jurisdiction" yaml:"jurisdiction"`
	EventDate         period.Date `json:"event_date" yaml:"event_date"`
	Facility          string      `json:"facility,omitempty" yaml:"facility,omitempty"`
	CountyOfResidence string      `json:"county_of_residence,omitempty" yaml:"county_of_residence,omitempty"`

	AdmissionReason        period.AdmissionReason `json:"admission_reason,omitempty" yaml:"admission_reason,omitempty"`
	AdmissionReasonRawText string                 `json:"admission_reason_raw_text,omitempty" yaml:"admission_reason_raw_text,omitempty"`

	// MostSeriousOffenseStatute is enrichment data: the statute of the most
	// serious offense committed before this snapshot date.
	MostSeriousOffenseStatute string `json:"most_serious_offense_statute,omitempty" yaml:"most_serious_offense_statute,omitempty"`
}

// Events bundles the three derived streams for one person.
type Events struct {
	Admissions []AdmissionEvent `json:"admissions" yaml:"admissions"`
	Releases   []ReleaseEvent   `json:"releases" yaml:"releases"`
	Stays      []StayEvent      `json:"stays" yaml:"stays"`
}

// Len returns the total number of derived events.
func (e Events) Len() int {
	return len(e.Admissions) + len(e.Releases) + len(e.Stays)
}

func (e AdmissionEvent) canonical() map[string]any {
	m := map[string]any{
		"kind":             string(KindAdmission),
		"event_date":       e.EventDate.String(),
		"admission_reason": string(e.AdmissionReason),
	}
	if e.Jurisdiction != "" {
		m["jurisdiction"] = e.Jurisdiction
	}
	if e.Facility != "" {
		m["facility"] = e.Facility
	}
	if e.CountyOfResidence != "" {
		m["county_of_residence"] = e.CountyOfResidence
	}
	if e.AdmissionReasonRawText != "" {
		m["admission_reason_raw_text"] = e.AdmissionReasonRawText
	}
	if e.SpecializedPurpose != "" {
		m["specialized_purpose"] = e.SpecializedPurpose
	}
	return m
}

func (e ReleaseEvent) canonical() map[string]any {
	m := map[string]any{
		"kind":           string(KindRelease),
		"event_date":     e.EventDate.String(),
		"release_reason": string(e.ReleaseReason),
	}
	if e.Jurisdiction != "" {
		m["jurisdiction"] = e.Jurisdiction
	}
	if e.Facility != "" {
		m["facility"] = e.Facility
	}
	if e.CountyOfResidence != "" {
		m["county_of_residence"] = e.CountyOfResidence
	}
	if e.ReleaseReasonRawText != "" {
		m["release_reason_raw_text"] = e.ReleaseReasonRawText
	}
	return m
}

func (e StayEvent) canonical() map[string]any {
	m := map[string]any{
		"kind":       string(KindStay),
		"event_date": e.EventDate.String(),
	}
	if e.Jurisdiction != "" {
		m["jurisdiction"] = e.Jurisdiction
	}
	if e.Facility != "" {
		m["facility"] = e.Facility
	}
	if e.CountyOfResidence != "" {
		m["county_of_residence"] = e.CountyOfResidence
	}
	if e.AdmissionReason != period.AdmissionUnset {
		m["admission_reason"] = string(e.AdmissionReason)
	}
	if e.AdmissionReasonRawText != "" {
		m["admission_reason_raw_text"] = e.AdmissionReasonRawText
	}
	if e.MostSeriousOffenseStatute != "" {
		m["most_serious_offense_statute"] = e.MostSeriousOffenseStatute
	}
	return m
}

// Canonical returns the canonical map form of an admission event.
func (e AdmissionEvent) Canonical() map[string]any { return e.canonical() }

// Canonical returns the canonical map form of a release event.
func (e ReleaseEvent) Canonical() map[string]any { return e.canonical() }

// Canonical returns the canonical map form of a stay event.
func (e StayEvent) Canonical() map[string]any { return e.canonical() }

// ID returns the content-addressed identifier of an admission event.
func (e AdmissionEvent) ID() (string, error) {
	return period.HashCanonical(period.DomainEvent, e.canonical())
}

// ID returns the content-addressed identifier of a release event.
func (e ReleaseEvent) ID() (string, error) {
	return period.HashCanonical(period.DomainEvent, e.canonical())
}

// ID returns the content-addressed identifier of a stay event.
func (e StayEvent) ID() (string, error) {
	return period.HashCanonical(period.DomainEvent, e.canonical())
}

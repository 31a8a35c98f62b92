package period

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPlaceholder(t *testing.T) {
	assert.True(t, Period{}.IsPlaceholder())
	assert.False(t, Period{ExternalID: "ip-1"}.IsPlaceholder())
}

func TestZeroLength(t *testing.T) {
	d := NewDate(2019, 7, 10)

	tests := []struct {
		name     string
		p        Period
		expected bool
	}{
		{"same day", Period{AdmissionDate: DatePtr(d), ReleaseDate: DatePtr(d)}, true},
		{"different days", Period{AdmissionDate: DatePtr(d), ReleaseDate: DatePtr(d.AddDays(1))}, false},
		{"open", Period{AdmissionDate: DatePtr(d)}, false},
		{"no dates", Period{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.p.ZeroLength())
		})
	}
}

func TestIsRevocation(t *testing.T) {
	assert.True(t, AdmissionParoleRevocation.IsRevocation())
	assert.True(t, AdmissionProbationRevocation.IsRevocation())
	assert.True(t, AdmissionDualRevocation.IsRevocation())
	assert.False(t, AdmissionNewAdmission.IsRevocation())
	assert.False(t, AdmissionTemporaryCustody.IsRevocation())
	assert.False(t, AdmissionUnset.IsRevocation())
}

func TestParseEnums(t *testing.T) {
	ct, err := ParseCustodyType("STATE_PRISON")
	require.NoError(t, err)
	assert.Equal(t, CustodyStatePrison, ct)
	_, err = ParseCustodyType("FEDERAL_PRISON")
	assert.Error(t, err)

	st, err := ParseStatus("IN_CUSTODY")
	require.NoError(t, err)
	assert.Equal(t, StatusInCustody, st)
	_, err = ParseStatus("RELEASED")
	assert.Error(t, err)

	ar, err := ParseAdmissionReason("")
	require.NoError(t, err)
	assert.Equal(t, AdmissionUnset, ar)
	_, err = ParseAdmissionReason("BOGUS")
	assert.Error(t, err)

	rr, err := ParseReleaseReason("DEATH")
	require.NoError(t, err)
	assert.Equal(t, ReleaseDeath, rr)
	_, err = ParseReleaseReason("BOGUS")
	assert.Error(t, err)
}

func TestCloneIndependence(t *testing.T) {
	original := Period{
		ExternalID:    "ip-1",
		AdmissionDate: DatePtr(NewDate(2019, 7, 10)),
		ReleaseDate:   DatePtr(NewDate(2019, 8, 1)),
	}

	clone := original.Clone()
	*clone.AdmissionDate = NewDate(2020, 1, 1)
	*clone.ReleaseDate = NewDate(2020, 2, 1)

	assert.Equal(t, NewDate(2019, 7, 10), *original.AdmissionDate)
	assert.Equal(t, NewDate(2019, 8, 1), *original.ReleaseDate)
}

func TestClonePeriodsNil(t *testing.T) {
	assert.Nil(t, ClonePeriods(nil))
}

func TestBuildersDoNotMutateReceiver(t *testing.T) {
	p := Period{ExternalID: "ip-1", Status: StatusInCustody}

	q := p.WithAdmissionDate(NewDate(2019, 7, 10)).
		WithAdmissionReason(AdmissionNewAdmission).
		WithReleaseDate(NewDate(2019, 8, 1), true).
		WithReleaseReason(ReleaseTransfer).
		WithStatus(StatusNotInCustody)

	assert.Nil(t, p.AdmissionDate)
	assert.Equal(t, AdmissionUnset, p.AdmissionReason)
	assert.Equal(t, StatusInCustody, p.Status)

	require.NotNil(t, q.AdmissionDate)
	assert.Equal(t, NewDate(2019, 7, 10), *q.AdmissionDate)
	assert.Equal(t, AdmissionNewAdmission, q.AdmissionReason)
	require.NotNil(t, q.ReleaseDate)
	assert.True(t, q.ReleaseDateInferred)
	assert.Equal(t, ReleaseTransfer, q.ReleaseReason)
	assert.Equal(t, StatusNotInCustody, q.Status)
}

func TestWithoutReleaseData(t *testing.T) {
	p := Period{
		ExternalID:           "ip-1",
		Status:               StatusNotInCustody,
		ReleaseDate:          DatePtr(NewDate(2030, 1, 1)),
		ReleaseReason:        ReleaseSentenceServed,
		ReleaseReasonRawText: "SS",
		ReleaseDateInferred:  true,
	}

	q := p.WithoutReleaseData()

	assert.Nil(t, q.ReleaseDate)
	assert.Equal(t, ReleaseUnset, q.ReleaseReason)
	assert.False(t, q.ReleaseDateInferred)
	assert.Equal(t, StatusInCustody, q.Status)
	assert.Equal(t, "SS", q.ReleaseReasonRawText)
}

func TestCombine(t *testing.T) {
	start := Period{
		ExternalID:             "ip-1",
		Jurisdiction:           "US_XX",
		Status:                 StatusNotInCustody,
		AdmissionDate:          DatePtr(NewDate(2019, 7, 10)),
		AdmissionReason:        AdmissionTemporaryCustody,
		AdmissionReasonRawText: "TC",
		ReleaseDate:            DatePtr(NewDate(2019, 7, 20)),
		ReleaseReason:          ReleaseTransfer,
		Facility:               "JAIL1",
	}
	end := Period{
		ExternalID:             "ip-2",
		Jurisdiction:           "US_XX",
		Status:                 StatusInCustody,
		AdmissionDate:          DatePtr(NewDate(2019, 7, 20)),
		AdmissionReason:        AdmissionParoleRevocation,
		AdmissionReasonRawText: "PV",
		Facility:               "PRISON3",
		HousingUnit:            "B-2",
	}

	t.Run("keep start admission reason", func(t *testing.T) {
		merged := Combine(start, end, false)

		assert.Equal(t, "ip-1", merged.ExternalID)
		assert.Equal(t, NewDate(2019, 7, 10), *merged.AdmissionDate)
		assert.Equal(t, AdmissionTemporaryCustody, merged.AdmissionReason)
		assert.Equal(t, StatusInCustody, merged.Status)
		assert.Nil(t, merged.ReleaseDate)
		assert.Equal(t, ReleaseUnset, merged.ReleaseReason)
		assert.Equal(t, "PRISON3", merged.Facility)
		assert.Equal(t, "B-2", merged.HousingUnit)
	})

	t.Run("overwrite admission reason", func(t *testing.T) {
		merged := Combine(start, end, true)

		assert.Equal(t, "ip-1", merged.ExternalID)
		assert.Equal(t, AdmissionParoleRevocation, merged.AdmissionReason)
		assert.Equal(t, "PV", merged.AdmissionReasonRawText)
	})

	t.Run("no shared state", func(t *testing.T) {
		merged := Combine(start, end, false)
		*merged.AdmissionDate = NewDate(1999, 1, 1)
		assert.Equal(t, NewDate(2019, 7, 10), *start.AdmissionDate)
	})
}

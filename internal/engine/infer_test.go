package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakmont/stint/internal/period"
	"github.com/oakmont/stint/internal/testutil"
)

func TestInferReleaseFromNextAdmission(t *testing.T) {
	first := testutil.OpenPrisonPeriod("p1", "2019-01-01")
	first.Status = period.StatusNotInCustody
	second := testutil.OpenPrisonPeriod("p2", "2019-03-15")

	out, err := InferMissingDatesAndStatuses([]period.Period{first, second})
	require.NoError(t, err)
	require.Len(t, out, 2)

	require.NotNil(t, out[0].ReleaseDate)
	assert.Equal(t, testutil.MustDate("2019-03-15"), *out[0].ReleaseDate)
	assert.True(t, out[0].ReleaseDateInferred)
	assert.Equal(t, period.ReleaseInternalUnknown, out[0].ReleaseReason)
	assert.Equal(t, period.StatusNotInCustody, out[0].Status)

	assert.Nil(t, out[1].ReleaseDate, "last in-custody period stays open")
}

func TestInferReleaseTransferWhenNextAdmittedByTransfer(t *testing.T) {
	first := testutil.OpenPrisonPeriod("p1", "2019-01-01")
	first.Status = period.StatusNotInCustody
	second := testutil.OpenPrisonPeriod("p2", "2019-03-15")
	second.AdmissionReason = period.AdmissionTransfer

	out, err := InferMissingDatesAndStatuses([]period.Period{first, second})
	require.NoError(t, err)

	assert.Equal(t, period.ReleaseTransfer, out[0].ReleaseReason)
}

func TestInferDoesNotOverwriteReportedReleaseReason(t *testing.T) {
	first := testutil.OpenPrisonPeriod("p1", "2019-01-01")
	first.Status = period.StatusNotInCustody
	first.ReleaseReason = period.ReleaseEscape
	second := testutil.OpenPrisonPeriod("p2", "2019-03-15")
	second.AdmissionReason = period.AdmissionTransfer

	out, err := InferMissingDatesAndStatuses([]period.Period{first, second})
	require.NoError(t, err)

	require.NotNil(t, out[0].ReleaseDate)
	assert.Equal(t, period.ReleaseEscape, out[0].ReleaseReason)
}

func TestInferZeroLengthCloseOnFinalPeriod(t *testing.T) {
	p := testutil.OpenPrisonPeriod("p1", "2019-01-01")
	p.Status = period.StatusNotInCustody

	out, err := InferMissingDatesAndStatuses([]period.Period{p})
	require.NoError(t, err)
	require.Len(t, out, 1)

	require.NotNil(t, out[0].ReleaseDate)
	assert.Equal(t, testutil.MustDate("2019-01-01"), *out[0].ReleaseDate)
	assert.True(t, out[0].ReleaseDateInferred)
	assert.Equal(t, period.ReleaseInternalUnknown, out[0].ReleaseReason)
}

func TestInferLeavesOpenInCustodyPeriodAlone(t *testing.T) {
	p := testutil.OpenPrisonPeriod("p1", "2019-01-01")

	out, err := InferMissingDatesAndStatuses([]period.Period{p})
	require.NoError(t, err)

	assert.Nil(t, out[0].ReleaseDate)
	assert.Equal(t, period.ReleaseUnset, out[0].ReleaseReason)
	assert.Equal(t, period.StatusInCustody, out[0].Status)
}

func TestInferAdmissionFromPreviousRelease(t *testing.T) {
	first := testutil.PrisonPeriod("p1", "2019-01-01", "2019-02-10")
	second := testutil.PrisonPeriod("p2", "", "2019-05-01")
	second.AdmissionReason = period.AdmissionUnset

	out, err := InferMissingDatesAndStatuses([]period.Period{first, second})
	require.NoError(t, err)
	require.Len(t, out, 2)

	require.NotNil(t, out[1].AdmissionDate)
	assert.Equal(t, testutil.MustDate("2019-02-10"), *out[1].AdmissionDate)
	assert.Equal(t, period.AdmissionInternalUnknown, out[1].AdmissionReason)
}

func TestInferAdmissionTransferWhenPreviousReleasedByTransfer(t *testing.T) {
	first := testutil.PrisonPeriod("p1", "2019-01-01", "2019-02-10")
	first.ReleaseReason = period.ReleaseTransfer
	second := testutil.PrisonPeriod("p2", "", "2019-05-01")

	out, err := InferMissingDatesAndStatuses([]period.Period{first, second})
	require.NoError(t, err)

	assert.Equal(t, period.AdmissionTransfer, out[1].AdmissionReason)
}

func TestInferAdmissionFromOwnReleaseOnFirstPeriod(t *testing.T) {
	p := testutil.PrisonPeriod("p1", "", "2019-05-01")

	out, err := InferMissingDatesAndStatuses([]period.Period{p})
	require.NoError(t, err)

	require.NotNil(t, out[0].AdmissionDate)
	assert.Equal(t, testutil.MustDate("2019-05-01"), *out[0].AdmissionDate)
	assert.Equal(t, period.AdmissionInternalUnknown, out[0].AdmissionReason)
}

func TestInferDoesNotOverwriteReportedAdmissionReason(t *testing.T) {
	first := testutil.PrisonPeriod("p1", "2019-01-01", "2019-02-10")
	first.ReleaseReason = period.ReleaseTransfer
	second := testutil.PrisonPeriod("p2", "", "2019-05-01")
	second.AdmissionReason = period.AdmissionParoleRevocation

	out, err := InferMissingDatesAndStatuses([]period.Period{first, second})
	require.NoError(t, err)

	assert.Equal(t, period.AdmissionParoleRevocation, out[1].AdmissionReason)
}

func TestInferDoesNotMutateInput(t *testing.T) {
	first := testutil.OpenPrisonPeriod("p1", "2019-01-01")
	first.Status = period.StatusNotInCustody
	second := testutil.OpenPrisonPeriod("p2", "2019-03-15")
	input := []period.Period{first, second}

	_, err := InferMissingDatesAndStatuses(input)
	require.NoError(t, err)

	assert.Nil(t, input[0].ReleaseDate)
	assert.Equal(t, period.ReleaseUnset, input[0].ReleaseReason)
}

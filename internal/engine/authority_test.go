package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakmont/stint/internal/period"
	"github.com/oakmont/stint/internal/policy"
	"github.com/oakmont/stint/internal/testutil"
)

func TestAuthorityFilterPermissivePolicy(t *testing.T) {
	tempCustody := testutil.PrisonPeriod("tc", "2019-01-01", "2019-02-01")
	tempCustody.AdmissionReason = period.AdmissionTemporaryCustody

	periods := []period.Period{
		testutil.PrisonPeriod("prison", "2019-01-01", "2019-02-01"),
		testutil.JailPeriod("jail", "2019-03-01", "2019-04-01"),
		tempCustody,
	}

	kept := DropPeriodsNotUnderStateCustodialAuthority(periods, policy.Default)
	assert.Len(t, kept, 3)
}

func TestAuthorityFilterDropsTemporaryCustody(t *testing.T) {
	tempCustody := testutil.PrisonPeriod("tc", "2019-01-01", "2019-02-01")
	tempCustody.AdmissionReason = period.AdmissionTemporaryCustody

	periods := []period.Period{
		tempCustody,
		testutil.PrisonPeriod("prison", "2019-03-01", "2019-04-01"),
	}

	pol := policy.Policy{
		Jurisdiction:                        "US_XX",
		TemporaryCustodyUnderStateAuthority: false,
		NonPrisonUnderStateAuthority:        true,
	}

	kept := DropPeriodsNotUnderStateCustodialAuthority(periods, pol)
	require.Len(t, kept, 1)
	assert.Equal(t, "prison", kept[0].ExternalID)
}

func TestAuthorityFilterDropsNonPrisonCustody(t *testing.T) {
	other := testutil.PrisonPeriod("other", "2019-05-01", "2019-06-01")
	other.CustodyType = period.CustodyOther

	periods := []period.Period{
		testutil.JailPeriod("jail", "2019-01-01", "2019-02-01"),
		testutil.PrisonPeriod("prison", "2019-03-01", "2019-04-01"),
		other,
	}

	pol := policy.Policy{
		Jurisdiction:                        "US_XX",
		TemporaryCustodyUnderStateAuthority: true,
		NonPrisonUnderStateAuthority:        false,
	}

	kept := DropPeriodsNotUnderStateCustodialAuthority(periods, pol)
	require.Len(t, kept, 1)
	assert.Equal(t, "prison", kept[0].ExternalID)
}

func TestAuthorityFilterBothPredicates(t *testing.T) {
	tempCustodyPrison := testutil.PrisonPeriod("tc", "2019-01-01", "2019-02-01")
	tempCustodyPrison.AdmissionReason = period.AdmissionTemporaryCustody

	periods := []period.Period{
		tempCustodyPrison,
		testutil.JailPeriod("jail", "2019-03-01", "2019-04-01"),
		testutil.PrisonPeriod("prison", "2019-05-01", "2019-06-01"),
	}

	pol := policy.Policy{
		Jurisdiction:                        "US_XX",
		TemporaryCustodyUnderStateAuthority: false,
		NonPrisonUnderStateAuthority:        false,
	}

	kept := DropPeriodsNotUnderStateCustodialAuthority(periods, pol)
	require.Len(t, kept, 1)
	assert.Equal(t, "prison", kept[0].ExternalID)
}

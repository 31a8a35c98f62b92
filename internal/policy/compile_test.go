package policy

import (
	"testing"

	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compileSource(t *testing.T, src string) (Table, error) {
	t.Helper()
	ctx := cuecontext.New()
	value := ctx.CompileString(src)
	require.NoError(t, value.Err())
	return CompileTable(value)
}

func TestCompileTable(t *testing.T) {
	table, err := compileSource(t, `
policy: {
	"US_XX": {
		temporary_custody_under_state_authority:    true
		non_prison_under_state_authority:           false
		collapse_temporary_custody_with_revocation: true
	}
	"US_YY": {
		temporary_custody_under_state_authority: false
		non_prison_under_state_authority:        true
	}
}
`)
	require.NoError(t, err)
	require.Len(t, table, 2)

	xx := table["US_XX"]
	assert.Equal(t, "US_XX", xx.Jurisdiction)
	assert.True(t, xx.TemporaryCustodyUnderStateAuthority)
	assert.False(t, xx.NonPrisonUnderStateAuthority)
	assert.True(t, xx.CollapseTemporaryCustodyWithRevocation)

	yy := table["US_YY"]
	assert.False(t, yy.TemporaryCustodyUnderStateAuthority)
	assert.True(t, yy.NonPrisonUnderStateAuthority)
	assert.False(t, yy.CollapseTemporaryCustodyWithRevocation, "optional collapse defaults to false")
}

func TestCompileTableMissingPolicyStruct(t *testing.T) {
	table, err := compileSource(t, `other: {x: 1}`)
	require.NoError(t, err)
	assert.Empty(t, table)
}

func TestCompileTableMissingRequiredField(t *testing.T) {
	_, err := compileSource(t, `
policy: {
	"US_XX": {
		temporary_custody_under_state_authority: true
	}
}
`)
	require.Error(t, err)

	var compileErr *CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, "US_XX", compileErr.Jurisdiction)
	assert.Equal(t, "non_prison_under_state_authority", compileErr.Field)
}

func TestCompileTableWrongFieldType(t *testing.T) {
	_, err := compileSource(t, `
policy: {
	"US_XX": {
		temporary_custody_under_state_authority: "yes"
		non_prison_under_state_authority:        true
	}
}
`)
	require.Error(t, err)

	var compileErr *CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, "temporary_custody_under_state_authority", compileErr.Field)
	assert.Contains(t, compileErr.Error(), "must be a bool")
}

func TestTableForFallback(t *testing.T) {
	table := Table{
		"US_XX": {Jurisdiction: "US_XX", NonPrisonUnderStateAuthority: false},
	}

	assert.Equal(t, table["US_XX"], table.For("US_XX"))

	fallback := table.For("US_ZZ")
	assert.Equal(t, "US_ZZ", fallback.Jurisdiction)
	assert.True(t, fallback.TemporaryCustodyUnderStateAuthority)
	assert.True(t, fallback.NonPrisonUnderStateAuthority)
	assert.False(t, fallback.CollapseTemporaryCustodyWithRevocation)
}

func TestTableMerge(t *testing.T) {
	base := Table{
		"US_XX": {Jurisdiction: "US_XX", NonPrisonUnderStateAuthority: true},
		"US_YY": {Jurisdiction: "US_YY"},
	}
	overlay := Table{
		"US_XX": {Jurisdiction: "US_XX", NonPrisonUnderStateAuthority: false},
		"US_ZZ": {Jurisdiction: "US_ZZ"},
	}

	merged := base.Merge(overlay)

	assert.Len(t, merged, 3)
	assert.False(t, merged["US_XX"].NonPrisonUnderStateAuthority, "overlay wins")
	assert.Contains(t, merged, "US_YY")
	assert.Contains(t, merged, "US_ZZ")

	assert.True(t, base["US_XX"].NonPrisonUnderStateAuthority, "inputs unchanged")
	assert.NotContains(t, base, "US_ZZ")
}

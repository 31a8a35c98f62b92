package period

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonicalBasic(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"string", "hello", `"hello"`},
		{"empty string", "", `""`},
		{"int", 42, "42"},
		{"negative int", -100, "-100"},
		{"int64", int64(9223372036854775807), "9223372036854775807"},
		{"bool true", true, "true"},
		{"bool false", false, "false"},
		{"date", NewDate(2019, 11, 30), `"2019-11-30"`},
		{"empty array", []any{}, "[]"},
		{"empty object", map[string]any{}, "{}"},
		{"array", []any{1, "a", true}, `[1,"a",true]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := MarshalCanonical(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(result))
		})
	}
}

func TestMarshalCanonicalSortedKeys(t *testing.T) {
	obj := map[string]any{
		"zebra": 1,
		"alpha": 2,
		"beta":  3,
	}

	result, err := MarshalCanonical(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":2,"beta":3,"zebra":1}`, string(result))
}

func TestMarshalCanonicalUTF16Ordering(t *testing.T) {
	// U+E000 vs U+10000: UTF-16 order differs from UTF-8. The surrogate
	// pair for U+10000 starts at 0xD800, below 0xE000, so it sorts first.
	obj := map[string]any{
		"": 1,
		"𐀀":      2,
	}

	result, err := MarshalCanonical(obj)
	require.NoError(t, err)

	expected := `{"𐀀":2,"` + "" + `":1}`
	assert.Equal(t, expected, string(result))
}

func TestMarshalCanonicalRejectsFloats(t *testing.T) {
	_, err := MarshalCanonical(map[string]any{"x": 1.5})
	assert.Error(t, err)
}

func TestMarshalCanonicalRejectsNull(t *testing.T) {
	_, err := MarshalCanonical(map[string]any{"x": nil})
	assert.Error(t, err)
}

func TestMarshalCanonicalNoHTMLEscaping(t *testing.T) {
	result, err := MarshalCanonical("<a href=\"x\">&</a>")
	require.NoError(t, err)
	assert.Equal(t, `"<a href=\"x\">&</a>"`, string(result))
}

func TestMarshalCanonicalControlEscapes(t *testing.T) {
	result, err := MarshalCanonical("a\tb\nc\x01d")
	require.NoError(t, err)
	assert.Equal(t, `"a\tb\ncd"`, string(result))
}

func TestMarshalCanonicalNFCNormalization(t *testing.T) {
	// e + combining acute accent normalizes to the precomposed form.
	decomposed := "é"
	precomposed := "é"

	a, err := MarshalCanonical(decomposed)
	require.NoError(t, err)
	b, err := MarshalCanonical(precomposed)
	require.NoError(t, err)
	assert.Equal(t, string(b), string(a))
}

func TestCanonicalOmitsUnsetFields(t *testing.T) {
	p := Period{
		ExternalID:  "ip-1",
		CustodyType: CustodyStatePrison,
		Status:      StatusInCustody,
	}

	m := Canonical(p)
	assert.Equal(t, "ip-1", m["external_id"])
	assert.NotContains(t, m, "admission_date")
	assert.NotContains(t, m, "release_date")
	assert.NotContains(t, m, "facility")
	assert.NotContains(t, m, "jurisdiction")
}

func TestCanonicalFullPeriod(t *testing.T) {
	p := Period{
		ExternalID:      "ip-1",
		Jurisdiction:    "US_XX",
		CustodyType:     CustodyStatePrison,
		Status:          StatusNotInCustody,
		AdmissionDate:   DatePtr(NewDate(2008, 11, 20)),
		AdmissionReason: AdmissionNewAdmission,
		ReleaseDate:     DatePtr(NewDate(2009, 1, 4)),
		ReleaseReason:   ReleaseSentenceServed,
		Facility:        "PRISON3",
	}

	data, err := MarshalCanonical(Canonical(p))
	require.NoError(t, err)
	assert.Equal(t,
		`{"admission_date":"2008-11-20","admission_reason":"NEW_ADMISSION",`+
			`"custody_type":"STATE_PRISON","external_id":"ip-1","facility":"PRISON3",`+
			`"jurisdiction":"US_XX","release_date":"2009-01-04",`+
			`"release_reason":"SENTENCE_SERVED","status":"NOT_IN_CUSTODY"}`,
		string(data))
}

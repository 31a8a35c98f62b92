package period

import (
	"bytes"
	"fmt"
	"sort"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces RFC 8785 canonical JSON.
//
// This is the only serialization used for golden snapshots and
// content-addressed event identity, so two logically identical values must
// always produce identical bytes:
//  1. Object keys sorted by UTF-16 code units
//  2. No HTML escaping (< > & are not escaped)
//  3. Strings NFC normalized at the serialization boundary
//  4. No floats (returns error)
//  5. No nulls (returns error); optional fields are omitted, not null
func MarshalCanonical(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := marshalCanonical(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func marshalCanonical(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case nil:
		return fmt.Errorf("null is forbidden in canonical JSON")
	case string:
		marshalCanonicalString(buf, val)
		return nil
	case bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
		return nil
	case int:
		fmt.Fprintf(buf, "%d", val)
		return nil
	case int64:
		fmt.Fprintf(buf, "%d", val)
		return nil
	case Date:
		marshalCanonicalString(buf, val.String())
		return nil
	case float32, float64:
		return fmt.Errorf("floats are forbidden in canonical JSON: %v", val)
	case []any:
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := marshalCanonical(buf, elem); err != nil {
				return fmt.Errorf("array[%d]: %w", i, err)
			}
		}
		buf.WriteByte(']')
		return nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			return lessUTF16(keys[i], keys[j])
		})
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			marshalCanonicalString(buf, k)
			buf.WriteByte(':')
			if err := marshalCanonical(buf, val[k]); err != nil {
				return fmt.Errorf("value for key %q: %w", k, err)
			}
		}
		buf.WriteByte('}')
		return nil
	default:
		return fmt.Errorf("unsupported type for canonical JSON: %T", v)
	}
}

// marshalCanonicalString writes a JSON string per RFC 8785: NFC normalized,
// with only quote, backslash, and C0 controls escaped. The short escapes
// \b \t \n \f \r are used where they exist; other controls use \u00XX.
// Nothing else is escaped, not HTML characters, not U+2028/U+2029.
func marshalCanonicalString(buf *bytes.Buffer, s string) {
	s = norm.NFC.String(s)

	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\b':
			buf.WriteString(`\b`)
		case '\t':
			buf.WriteString(`\t`)
		case '\n':
			buf.WriteString(`\n`)
		case '\f':
			buf.WriteString(`\f`)
		case '\r':
			buf.WriteString(`\r`)
		default:
			if r < 0x20 {
				fmt.Fprintf(buf, `\u%04x`, r)
			} else {
				buf.WriteRune(r)
			}
		}
	}
	buf.WriteByte('"')
}

// lessUTF16 orders strings by UTF-16 code units as RFC 8785 requires.
// This differs from byte order only for code points at or above U+10000,
// whose surrogate pairs sort below some BMP code points.
func lessUTF16(a, b string) bool {
	for len(a) > 0 && len(b) > 0 {
		ra, na := utf8.DecodeRuneInString(a)
		rb, nb := utf8.DecodeRuneInString(b)
		ua := utf16.Encode([]rune{ra})
		ub := utf16.Encode([]rune{rb})
		for i := 0; i < len(ua) && i < len(ub); i++ {
			if ua[i] != ub[i] {
				return ua[i] < ub[i]
			}
		}
		if len(ua) != len(ub) {
			return len(ua) < len(ub)
		}
		a = a[na:]
		b = b[nb:]
	}
	return len(a) < len(b)
}

// Canonical returns the canonical map form of a period for golden
// snapshots and hashing. Unset optional fields are omitted entirely;
// canonical JSON forbids nulls.
func Canonical(p Period) map[string]any {
	m := map[string]any{
		"external_id":  p.ExternalID,
		"custody_type": string(p.CustodyType),
		"status":       string(p.Status),
	}
	if p.Jurisdiction != "" {
		m["jurisdiction"] = p.Jurisdiction
	}
	if p.AdmissionDate != nil {
		m["admission_date"] = p.AdmissionDate.String()
	}
	if p.AdmissionReason != AdmissionUnset {
		m["admission_reason"] = string(p.AdmissionReason)
	}
	if p.AdmissionReasonRawText != "" {
		m["admission_reason_raw_text"] = p.AdmissionReasonRawText
	}
	if p.ReleaseDate != nil {
		m["release_date"] = p.ReleaseDate.String()
	}
	if p.ReleaseReason != ReleaseUnset {
		m["release_reason"] = string(p.ReleaseReason)
	}
	if p.ReleaseReasonRawText != "" {
		m["release_reason_raw_text"] = p.ReleaseReasonRawText
	}
	if p.ReleaseDateInferred {
		m["release_date_inferred"] = true
	}
	if p.Facility != "" {
		m["facility"] = p.Facility
	}
	if p.HousingUnit != "" {
		m["housing_unit"] = p.HousingUnit
	}
	if p.SecurityLevel != "" {
		m["security_level"] = p.SecurityLevel
	}
	if p.SecurityLevelRawText != "" {
		m["security_level_raw_text"] = p.SecurityLevelRawText
	}
	if p.ProjectedReleaseReason != ReleaseUnset {
		m["projected_release_reason"] = string(p.ProjectedReleaseReason)
	}
	if p.ProjectedReleaseReasonRawText != "" {
		m["projected_release_reason_raw_text"] = p.ProjectedReleaseReasonRawText
	}
	return m
}

package period

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity. The version suffix
// enables future algorithm migration without colliding with old IDs.
const (
	DomainPeriod = "stint/period/v1"
	DomainEvent  = "stint/event/v1"
)

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null separator prevents
// domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// HashCanonical computes the content hash of any canonical-JSON-encodable
// value under the given domain.
func HashCanonical(domain string, v any) (string, error) {
	canonical, err := MarshalCanonical(v)
	if err != nil {
		return "", fmt.Errorf("hash canonical: %w", err)
	}
	return hashWithDomain(domain, canonical), nil
}

// Fingerprint computes the content-addressed identity of a period's
// canonical form. Two periods with identical canonical fields share a
// fingerprint regardless of how they were constructed, which makes
// persistence writes idempotent.
func Fingerprint(p Period) (string, error) {
	return HashCanonical(DomainPeriod, Canonical(p))
}

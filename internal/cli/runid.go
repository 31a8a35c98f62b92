package cli

import "github.com/google/uuid"

// RunIDGenerator produces run identifiers for derive invocations.
type RunIDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-ordered UUIDv7 run IDs, so runs sort
// chronologically by ID in the store.
type UUIDv7Generator struct{}

// Generate returns a new UUIDv7 string.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedIDGenerator always returns the same ID. Tests use it so derive
// output is reproducible.
type FixedIDGenerator struct {
	ID string
}

// Generate returns the fixed ID.
func (g FixedIDGenerator) Generate() string {
	return g.ID
}

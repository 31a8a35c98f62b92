package cli

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/oakmont/stint/internal/events"
	"github.com/oakmont/stint/internal/period"
)

// Batch is the YAML input format for one person's raw period records plus
// the enrichment side tables.
type Batch struct {
	PersonID     string          `yaml:"person_id"`
	Jurisdiction string          `yaml:"jurisdiction"`
	Periods      []period.Period `yaml:"periods"`
	Enrichment   BatchEnrichment `yaml:"enrichment,omitempty"`
}

// BatchEnrichment is the YAML form of events.Enrichment.
type BatchEnrichment struct {
	CountyOfResidence         string            `yaml:"county_of_residence,omitempty"`
	MostSeriousOffenseStatute map[string]string `yaml:"most_serious_offense_statute,omitempty"`
	SpecializedPurpose        map[string]string `yaml:"specialized_purpose,omitempty"`
}

// ToEnrichment converts the YAML form to the derivation side tables.
func (b BatchEnrichment) ToEnrichment() events.Enrichment {
	return events.Enrichment{
		CountyOfResidence:         b.CountyOfResidence,
		MostSeriousOffenseStatute: b.MostSeriousOffenseStatute,
		SpecializedPurpose:        b.SpecializedPurpose,
	}
}

// LoadBatch reads and parses a batch YAML file with strict field
// validation, so a typo in a field name fails loudly instead of silently
// dropping data.
func LoadBatch(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch file: %w", err)
	}

	var batch Batch
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&batch); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	if batch.PersonID == "" {
		return nil, fmt.Errorf("invalid batch: person_id is required")
	}
	if batch.Jurisdiction == "" {
		return nil, fmt.Errorf("invalid batch: jurisdiction is required")
	}
	if len(batch.Periods) == 0 {
		return nil, fmt.Errorf("invalid batch: periods list is required and must be non-empty")
	}

	return &batch, nil
}

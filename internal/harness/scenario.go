package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/oakmont/stint/internal/period"
)

// Scenario defines a conformance test scenario: one person's raw period
// records plus assertions over the normalized output.
type Scenario struct {
	// Name uniquely identifies this scenario; it is also the golden file name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Jurisdiction selects the authority-filter policy for the batch.
	Jurisdiction string `yaml:"jurisdiction"`

	// Today pins the processing date. Required: a wall-clock date would
	// make future-release handling and stay derivation nondeterministic.
	Today period.Date `yaml:"today"`

	// Policies lists paths to CUE policy pack files to compile and load.
	// Paths are relative to the scenario file location. If empty, the
	// permissive default policy applies.
	Policies []string `yaml:"policies,omitempty"`

	// CollapseTransfers toggles transfer collapsing. Defaults to true
	// when omitted.
	CollapseTransfers *bool `yaml:"collapse_transfers,omitempty"`

	// CollapseTemporaryCustody toggles the temporary-custody/revocation
	// merge. Defaults to false.
	CollapseTemporaryCustody bool `yaml:"collapse_temporary_custody,omitempty"`

	// Periods are the raw input records, in arrival order.
	Periods []period.Period `yaml:"periods"`

	// Enrichment carries the event-derivation side tables.
	Enrichment EnrichmentSpec `yaml:"enrichment,omitempty"`

	// Assertions validate the canonical periods and derived events.
	Assertions []Assertion `yaml:"assertions"`
}

// EnrichmentSpec is the YAML form of the derivation side tables.
type EnrichmentSpec struct {
	CountyOfResidence         string            `yaml:"county_of_residence,omitempty"`
	MostSeriousOffenseStatute map[string]string `yaml:"most_serious_offense_statute,omitempty"`
	SpecializedPurpose        map[string]string `yaml:"specialized_purpose,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, filepath.Dir(path))
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving policy pack paths relative to the provided base path.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}

	// Strict field validation catches typos like "assertion:" vs "assertions:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	for i, policyPath := range scenario.Policies {
		if !filepath.IsAbs(policyPath) && basePath != "" {
			scenario.Policies[i] = filepath.Join(basePath, policyPath)
		}
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// CollapseTransfersEnabled resolves the tri-state YAML flag.
func (s *Scenario) CollapseTransfersEnabled() bool {
	if s.CollapseTransfers == nil {
		return true
	}
	return *s.CollapseTransfers
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Jurisdiction == "" {
		return fmt.Errorf("jurisdiction is required")
	}
	if s.Today.IsZero() {
		return fmt.Errorf("today is required")
	}
	if len(s.Periods) == 0 {
		return fmt.Errorf("periods list is required and must be non-empty")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for _, policyPath := range s.Policies {
		if _, err := os.Stat(policyPath); os.IsNotExist(err) {
			return fmt.Errorf("policy pack not found: %s", policyPath)
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

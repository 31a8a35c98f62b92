package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validBatchYAML = `
person_id: person-1
jurisdiction: US_XX
periods:
  - external_id: ip-1
    jurisdiction: US_XX
    custody_type: STATE_PRISON
    status: NOT_IN_CUSTODY
    admission_date: 2019-11-20
    admission_reason: NEW_ADMISSION
    release_date: 2019-12-04
    release_reason: SENTENCE_SERVED
    facility: PRISON3
enrichment:
  county_of_residence: county-123
  most_serious_offense_statute:
    ip-1: "9999"
`

func writeBatch(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadBatch(t *testing.T) {
	batch, err := LoadBatch(writeBatch(t, validBatchYAML))
	require.NoError(t, err)

	assert.Equal(t, "person-1", batch.PersonID)
	assert.Equal(t, "US_XX", batch.Jurisdiction)
	require.Len(t, batch.Periods, 1)
	assert.Equal(t, "ip-1", batch.Periods[0].ExternalID)

	enrich := batch.Enrichment.ToEnrichment()
	assert.Equal(t, "county-123", enrich.CountyOfResidence)
	assert.Equal(t, "9999", enrich.MostSeriousOffenseStatute["ip-1"])
}

func TestLoadBatchMissingFile(t *testing.T) {
	_, err := LoadBatch(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadBatchRejectsUnknownFields(t *testing.T) {
	_, err := LoadBatch(writeBatch(t, validBatchYAML+"\nperiod_typo: oops\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse YAML")
}

func TestLoadBatchValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			"missing person id",
			"jurisdiction: US_XX\nperiods: [{external_id: ip-1}]\n",
			"person_id is required",
		},
		{
			"missing jurisdiction",
			"person_id: p1\nperiods: [{external_id: ip-1}]\n",
			"jurisdiction is required",
		},
		{
			"empty periods",
			"person_id: p1\njurisdiction: US_XX\nperiods: []\n",
			"periods list is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadBatch(writeBatch(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

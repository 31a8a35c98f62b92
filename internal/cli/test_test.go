package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passingScenarioYAML = `
name: single-closed-period
description: One closed state-prison period derives three events.
jurisdiction: US_XX
today: 2020-01-15
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
assertions:
  - type: period_count
    count: 1
  - type: event_count
    kind: STAY
    count: 1
`

const failingScenarioYAML = `
name: impossible-count
description: Fails on purpose.
jurisdiction: US_XX
today: 2020-01-15
periods:
  - external_id: ip-1
    jurisdiction: US_XX
    custody_type: STATE_PRISON
    status: IN_CUSTODY
    admission_date: 2019-11-20
    admission_reason: NEW_ADMISSION
assertions:
  - type: period_count
    count: 9
`

func writeScenarioDir(t *testing.T, scenarios map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range scenarios {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func TestTestCommandPassing(t *testing.T) {
	dir := writeScenarioDir(t, map[string]string{
		"single-closed-period.yaml": passingScenarioYAML,
	})

	out, err := executeCommand(t, "test", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "single-closed-period")
	assert.Contains(t, out, "1 passed, 0 failed, 1 total")
}

func TestTestCommandFailing(t *testing.T) {
	dir := writeScenarioDir(t, map[string]string{
		"impossible-count.yaml": failingScenarioYAML,
	})

	out, err := executeCommand(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "0 passed, 1 failed, 1 total")
}

func TestTestCommandGoldenWorkflow(t *testing.T) {
	dir := writeScenarioDir(t, map[string]string{
		"single-closed-period.yaml": passingScenarioYAML,
	})
	goldenPath := filepath.Join(dir, "golden", "single-closed-period.golden")

	// First pass writes the golden file.
	_, err := executeCommand(t, "test", dir, "--update")
	require.NoError(t, err)
	require.FileExists(t, goldenPath)

	// Second pass compares against it and matches.
	_, err = executeCommand(t, "test", dir)
	require.NoError(t, err)

	// A corrupted golden file fails the scenario.
	require.NoError(t, os.WriteFile(goldenPath, []byte(`{"stale":true}`), 0644))
	out, err := executeCommand(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "does not match golden file")
}

func TestTestCommandFilter(t *testing.T) {
	dir := writeScenarioDir(t, map[string]string{
		"single-closed-period.yaml": passingScenarioYAML,
		"impossible-count.yaml":     failingScenarioYAML,
	})

	out, err := executeCommand(t, "test", dir, "--filter", "single-*")
	require.NoError(t, err)
	assert.Contains(t, out, "1 passed, 0 failed, 1 total")
}

func TestTestCommandJSON(t *testing.T) {
	dir := writeScenarioDir(t, map[string]string{
		"single-closed-period.yaml": passingScenarioYAML,
		"impossible-count.yaml":     failingScenarioYAML,
	})

	out, err := executeCommand(t, "test", dir, "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var response struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
		Error  *CLIError  `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &response))
	assert.Equal(t, "error", response.Status)
	require.NotNil(t, response.Error)
	assert.Equal(t, "E_TEST_FAILED", response.Error.Code)
	assert.Equal(t, 1, response.Data.Passed)
	assert.Equal(t, 1, response.Data.Failed)
	assert.Equal(t, 2, response.Data.Total)
}

func TestTestCommandEmptyDir(t *testing.T) {
	out, err := executeCommand(t, "test", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found")
}

func TestTestCommandMissingDir(t *testing.T) {
	_, err := executeCommand(t, "test", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

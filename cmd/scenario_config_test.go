package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neutral-sim/neutral-sim/sim"
	"github.com/neutral-sim/neutral-sim/sim/trace"
)

func writeScenarioFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const validScenarios = `
version: "1"
seed: 42
replicates: 5
trace: events
scenarios:
  - name: exact
    model: point-mutation
    theta: 10
    individuals: 500
  - name: slow-speciation
    model: protracted
    theta: 10
    individuals: 500
    tau: 2.5
    replicates: 2
    seed: 7
  - name: fast
    model: vectorized
    theta: 10
    individuals: 5000
    lambda: 4
    output: fast.json.zst
`

func TestLoadScenarioFile_Valid(t *testing.T) {
	f, err := LoadScenarioFile(writeScenarioFile(t, validScenarios))
	require.NoError(t, err)
	require.NoError(t, f.Validate())

	require.Len(t, f.Scenarios, 3)
	assert.Equal(t, sim.SimConfig{Model: sim.ModelProtracted, Theta: 10, Individuals: 500, Tau: 2.5}, f.Scenarios[1].SimConfig())
	assert.Equal(t, "fast.json.zst", f.Scenarios[2].Output)
	assert.Equal(t, 4.0, f.Scenarios[2].SimConfig().Lambda)
	assert.Equal(t, 0.0, f.Scenarios[0].SimConfig().Lambda, "omitted lambda keeps the theta/2 default")
}

func TestLoadScenarioFile_ExplicitZeroLambdaRejected(t *testing.T) {
	// GIVEN a vectorized scenario that sets lambda to 0 explicitly
	path := writeScenarioFile(t, `
scenarios:
  - name: zero
    model: vectorized
    theta: 2
    individuals: 10
    lambda: 0
`)
	f, err := LoadScenarioFile(path)
	require.NoError(t, err)

	// THEN validation fails instead of falling back to theta/2
	err = f.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, sim.ErrInvalidParameter)
	assert.Contains(t, err.Error(), "scenarios[0]")
}

func TestLoadScenarioFile_UnknownFieldRejected(t *testing.T) {
	// GIVEN a typo in a scenario key
	path := writeScenarioFile(t, `
seed: 1
scenarios:
  - name: typo
    model: point-mutation
    thetta: 1
    individuals: 10
`)
	_, err := LoadScenarioFile(path)
	assert.Error(t, err)
}

func TestLoadScenarioFile_Missing(t *testing.T) {
	_, err := LoadScenarioFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestScenarioFile_Validate(t *testing.T) {
	good := Scenario{Name: "a", Model: "point-mutation", Theta: 1, Individuals: 10}
	tests := []struct {
		name    string
		file    ScenarioFile
		wantErr string
	}{
		{"no scenarios", ScenarioFile{}, "at least one scenario"},
		{"bad trace", ScenarioFile{Trace: "all", Scenarios: []Scenario{good}}, "trace level"},
		{"missing name", ScenarioFile{Scenarios: []Scenario{{Model: "point-mutation", Theta: 1, Individuals: 10}}}, "name is required"},
		{"duplicate name", ScenarioFile{Scenarios: []Scenario{good, good}}, "duplicate"},
		{"bad theta", ScenarioFile{Scenarios: []Scenario{{Name: "x", Model: "protracted", Theta: 0, Individuals: 10}}}, "scenarios[0]"},
		{"bad model", ScenarioFile{Scenarios: []Scenario{{Name: "x", Model: "zero-sum", Theta: 1, Individuals: 10}}}, "unknown model"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.file.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestScenarioFile_Options_Precedence(t *testing.T) {
	f, err := LoadScenarioFile(writeScenarioFile(t, validScenarios))
	require.NoError(t, err)

	// file defaults apply
	opts := f.Options(0, nil, 4)
	assert.Equal(t, 5, opts.Replicates)
	assert.Equal(t, int64(42), opts.Seed)
	assert.Equal(t, 4, opts.Workers)
	assert.Equal(t, trace.TraceLevelEvents, opts.TraceLevel)

	// scenario overrides file
	opts = f.Options(1, nil, 0)
	assert.Equal(t, 2, opts.Replicates)
	assert.Equal(t, int64(7), opts.Seed)

	// CLI --seed overrides everything
	cli := int64(100)
	opts = f.Options(1, &cli, 0)
	assert.Equal(t, int64(100), opts.Seed)
}

func TestScenarioFile_Options_DefaultsToOneReplicate(t *testing.T) {
	f := ScenarioFile{Scenarios: []Scenario{{Name: "a", Model: "point-mutation", Theta: 1, Individuals: 10}}}
	assert.Equal(t, 1, f.Options(0, nil, 0).Replicates)
}

// TestLoadScenarioFile_ShippedExample keeps examples/scenarios.yaml in sync
// with the schema.
func TestLoadScenarioFile_ShippedExample(t *testing.T) {
	path := filepath.Join("..", "examples", "scenarios.yaml")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Skip("examples/scenarios.yaml not found, skipping")
	}
	f, err := LoadScenarioFile(path)
	require.NoError(t, err)
	assert.NoError(t, f.Validate())
}

package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neutral-sim/neutral-sim/sim"
	"github.com/neutral-sim/neutral-sim/sim/ensemble"
)

func TestRunScenario_SummaryPrintedToStdout(t *testing.T) {
	// GIVEN a small point-mutation scenario
	cfg := sim.SimConfig{Model: sim.ModelPointMutation, Theta: 2, Individuals: 50}

	// Capture stdout
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	// WHEN runScenario is called without an output path
	report, err := runScenario(context.Background(), "demo", cfg, ensemble.Options{Replicates: 2, Seed: 1}, "")

	// Restore stdout and read captured output
	_ = w.Close()
	os.Stdout = old
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)

	// THEN the summary header appears on stdout
	require.NoError(t, err)
	assert.Equal(t, "demo", report.Name)
	assert.Contains(t, buf.String(), "Species Abundance Distribution")
	assert.Contains(t, buf.String(), "Scenario             : demo")
}

func TestRunScenario_WritesCompressedReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json.zst")
	cfg := sim.SimConfig{Model: sim.ModelVectorized, Theta: 6, Individuals: 80}

	report, err := runScenario(context.Background(), "", cfg, ensemble.Options{Replicates: 3, Seed: 9}, path)
	require.NoError(t, err)

	loaded, err := ensemble.LoadReport(path)
	require.NoError(t, err)
	assert.Equal(t, report.Replicates, loaded.Replicates)
}

func TestRunScenario_InvalidConfig(t *testing.T) {
	_, err := runScenario(context.Background(), "", sim.SimConfig{Model: sim.ModelProtracted, Theta: 1, Individuals: 10, Tau: -1},
		ensemble.Options{Replicates: 1}, "")
	assert.ErrorIs(t, err, sim.ErrInvalidParameter)
}

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["run"])
	assert.True(t, names["batch"])
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("seed"))
	assert.NotNil(t, runCmd.Flags().Lookup("individuals"))
}

func TestResolveLambda(t *testing.T) {
	tests := []struct {
		name    string
		set     bool
		value   float64
		want    float64
		wantErr bool
	}{
		{"unset keeps default", false, 0, 0, false},
		{"explicit positive", true, 3, 3, false},
		{"explicit zero", true, 0, 0, true},
		{"explicit negative", true, -1, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveLambda(tt.set, tt.value)
			if tt.wantErr {
				assert.ErrorIs(t, err, sim.ErrInvalidParameter)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

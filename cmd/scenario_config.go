package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/neutral-sim/neutral-sim/sim"
	"github.com/neutral-sim/neutral-sim/sim/ensemble"
	"github.com/neutral-sim/neutral-sim/sim/trace"
)

// ScenarioFile is the top-level batch configuration.
// Loaded from YAML via LoadScenarioFile(path).
type ScenarioFile struct {
	Version    string     `yaml:"version"`
	Seed       int64      `yaml:"seed"`
	Replicates int        `yaml:"replicates,omitempty"` // default for scenarios that omit it (0 = 1)
	Trace      string     `yaml:"trace,omitempty"`
	Scenarios  []Scenario `yaml:"scenarios"`
}

// Scenario describes one simulation configuration.
type Scenario struct {
	Name        string   `yaml:"name"`
	Model       string   `yaml:"model"`
	Theta       float64  `yaml:"theta"`
	Individuals int      `yaml:"individuals"`
	Tau         float64  `yaml:"tau,omitempty"`
	Lambda      *float64 `yaml:"lambda,omitempty"` // nil = theta/2
	Replicates  int      `yaml:"replicates,omitempty"`
	Seed        *int64   `yaml:"seed,omitempty"` // overrides the file seed
	Output      string   `yaml:"output,omitempty"`
}

// LoadScenarioFile reads and parses a YAML scenario file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadScenarioFile(path string) (*ScenarioFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	var file ScenarioFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("parsing scenario file: %w", err)
	}
	return &file, nil
}

// Validate checks the file-level settings and every scenario.
func (f *ScenarioFile) Validate() error {
	if len(f.Scenarios) == 0 {
		return fmt.Errorf("at least one scenario required")
	}
	if f.Replicates < 0 {
		return fmt.Errorf("replicates must be non-negative, got %d", f.Replicates)
	}
	if !trace.IsValidTraceLevel(f.Trace) {
		return fmt.Errorf("unknown trace level %q; valid: none, events", f.Trace)
	}
	names := make(map[string]bool, len(f.Scenarios))
	for i, s := range f.Scenarios {
		prefix := fmt.Sprintf("scenarios[%d]", i)
		if s.Name == "" {
			return fmt.Errorf("%s: name is required", prefix)
		}
		if names[s.Name] {
			return fmt.Errorf("%s: duplicate scenario name %q", prefix, s.Name)
		}
		names[s.Name] = true
		if s.Replicates < 0 {
			return fmt.Errorf("%s: replicates must be non-negative, got %d", prefix, s.Replicates)
		}
		if s.Lambda != nil {
			if err := sim.ValidateLambda(*s.Lambda); err != nil {
				return fmt.Errorf("%s: %w", prefix, err)
			}
		}
		if err := s.SimConfig().Validate(); err != nil {
			return fmt.Errorf("%s: %w", prefix, err)
		}
	}
	return nil
}

// SimConfig converts the scenario to engine parameters.
func (s Scenario) SimConfig() sim.SimConfig {
	cfg := sim.SimConfig{
		Model:       sim.Model(s.Model),
		Theta:       s.Theta,
		Individuals: s.Individuals,
		Tau:         s.Tau,
	}
	if s.Lambda != nil {
		cfg.Lambda = *s.Lambda
	}
	return cfg
}

// Options resolves the ensemble options for scenario i. seedOverride, when
// non-nil, wins over both the scenario and the file seed.
func (f *ScenarioFile) Options(i int, seedOverride *int64, workers int) ensemble.Options {
	s := f.Scenarios[i]
	opts := ensemble.Options{
		Replicates: 1,
		Workers:    workers,
		Seed:       f.Seed,
		TraceLevel: trace.TraceLevel(f.Trace),
	}
	if f.Replicates > 0 {
		opts.Replicates = f.Replicates
	}
	if s.Replicates > 0 {
		opts.Replicates = s.Replicates
	}
	if s.Seed != nil {
		opts.Seed = *s.Seed
	}
	if seedOverride != nil {
		opts.Seed = *seedOverride
	}
	return opts
}

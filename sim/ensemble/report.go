package ensemble

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"github.com/sirupsen/logrus"

	"github.com/neutral-sim/neutral-sim/sim"
	"github.com/neutral-sim/neutral-sim/sim/sad"
)

// Parameters mirrors sim.SimConfig with JSON field names.
type Parameters struct {
	Model       sim.Model `json:"model"`
	Theta       float64   `json:"theta"`
	Individuals int       `json:"individuals"`
	Tau         float64   `json:"tau,omitempty"`
	Lambda      float64   `json:"lambda,omitempty"`
}

// Report is the serialized outcome of one ensemble run.
type Report struct {
	RunID       string        `json:"run_id"`
	Name        string        `json:"name,omitempty"`
	Parameters  Parameters    `json:"parameters"`
	Seed        int64         `json:"seed"`
	ElapsedSecs float64       `json:"elapsed_s"`
	Aggregate   sad.Aggregate `json:"aggregate"`
	Replicates  []Replicate   `json:"replicates"`
}

// NewReport builds a Report for result. elapsed is wall-clock time and is
// not part of the deterministic output.
func NewReport(name string, result *Result, elapsed time.Duration) *Report {
	cfg := result.Config
	params := Parameters{
		Model:       cfg.Model,
		Theta:       cfg.Theta,
		Individuals: cfg.Individuals,
	}
	switch cfg.Model {
	case sim.ModelProtracted:
		params.Tau = cfg.Tau
	case sim.ModelVectorized:
		params.Lambda = cfg.EffectiveLambda()
	}
	return &Report{
		RunID:       uuid.NewString(),
		Name:        name,
		Parameters:  params,
		Seed:        result.Seed,
		ElapsedSecs: elapsed.Seconds(),
		Aggregate:   result.Aggregate,
		Replicates:  result.Replicates,
	}
}

// Print writes a human-readable summary of the report to w.
func (r *Report) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Species Abundance Distribution ===")
	if r.Name != "" {
		fmt.Fprintf(w, "Scenario             : %s\n", r.Name)
	}
	fmt.Fprintf(w, "Model                : %s\n", r.Parameters.Model)
	fmt.Fprintf(w, "Individuals (J)      : %d\n", r.Parameters.Individuals)
	fmt.Fprintf(w, "Theta                : %g\n", r.Parameters.Theta)
	switch r.Parameters.Model {
	case sim.ModelProtracted:
		fmt.Fprintf(w, "Tau                  : %g\n", r.Parameters.Tau)
	case sim.ModelVectorized:
		fmt.Fprintf(w, "Lambda               : %g\n", r.Parameters.Lambda)
	}
	fmt.Fprintf(w, "Replicates           : %d\n", r.Aggregate.Replicates)
	fmt.Fprintf(w, "Mean Richness        : %.3f (sd %.3f)\n", r.Aggregate.MeanRichness, r.Aggregate.StdDevRichness)
	fmt.Fprintf(w, "Mean Shannon H'      : %.4f (sd %.4f)\n", r.Aggregate.MeanShannon, r.Aggregate.StdDevShannon)
	fmt.Fprintf(w, "Mean Singletons      : %.3f\n", r.Aggregate.MeanSingletons)
	if len(r.Replicates) == 1 {
		fmt.Fprintf(w, "Rank Abundance       : %v\n", sad.RankAbundance(r.Replicates[0].Abundances))
		fmt.Fprintf(w, "Preston Octaves      : %v\n", sad.PrestonOctaves(r.Replicates[0].Abundances))
	}
}

// SaveReport writes r as indented JSON. An empty path or "-" writes to
// stdout; a ".zst" suffix writes zstd-compressed JSON.
func SaveReport(r *Report, path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	data = append(data, '\n')

	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if err := writeReport(file, data, strings.HasSuffix(path, ".zst")); err != nil {
		return err
	}
	logrus.Infof("Report written to %s", path)
	return file.Close()
}

// LoadReport reads a report written by SaveReport, decompressing ".zst" files.
func LoadReport(path string) (*Report, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening report: %w", err)
	}
	defer func() { _ = file.Close() }()

	var r io.Reader = file
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("creating zstd decoder: %w", err)
		}
		defer dec.Close()
		r = dec
	}

	var report Report
	if err := json.NewDecoder(r).Decode(&report); err != nil {
		return nil, fmt.Errorf("parsing report: %w", err)
	}
	return &report, nil
}

// writeReport writes data to dst, through a zstd encoder when compress is set.
// The encoder is closed on every path.
func writeReport(dst io.Writer, data []byte, compress bool) error {
	if !compress {
		if _, err := dst.Write(data); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		return nil
	}
	enc, err := zstd.NewWriter(dst)
	if err != nil {
		return fmt.Errorf("creating zstd encoder: %w", err)
	}
	if _, err := enc.Write(data); err != nil {
		_ = enc.Close()
		return fmt.Errorf("writing report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flushing zstd stream: %w", err)
	}
	return nil
}

package cmd

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/neutral-sim/neutral-sim/sim"
	"github.com/neutral-sim/neutral-sim/sim/ensemble"
	"github.com/neutral-sim/neutral-sim/sim/trace"
)

var (
	// CLI flags shared by run and batch
	seed     int64  // Master seed for all replicate streams
	logLevel string // Log verbosity level
	workers  int    // Concurrent replicate runs (0 = GOMAXPROCS)

	// CLI flags for a single scenario
	modelName   string  // Speciation engine
	theta       float64 // Speciation intensity
	individuals int     // Metacommunity size J
	tau         float64 // Minimum speciation-completion time (protracted)
	lambda      float64 // Per-lineage speciation rate (vectorized; 0 = theta/2)
	replicates  int     // Number of independent runs
	traceLevel  string  // Event trace level for exact engines
	outputPath  string  // Report destination (.json or .json.zst)

	// CLI flags for batch mode
	configPath string // YAML scenario file
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "neutral-sim",
	Short: "Neutral biodiversity simulator producing species abundance distributions",
}

// runCmd executes one scenario using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate one neutral community",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		if !sim.IsValidModel(modelName) {
			logrus.Fatalf("Unknown model %q; valid: point-mutation, protracted, vectorized", modelName)
		}
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Unknown trace level %q; valid: none, events", traceLevel)
		}

		lambdaValue, err := resolveLambda(cmd.Flags().Changed("lambda"), lambda)
		if err != nil {
			logrus.Fatalf("Invalid --lambda: %v", err)
		}
		cfg := sim.SimConfig{
			Model:       sim.Model(modelName),
			Theta:       theta,
			Individuals: individuals,
			Tau:         tau,
			Lambda:      lambdaValue,
		}
		opts := ensemble.Options{
			Replicates: replicates,
			Workers:    workers,
			Seed:       seed,
			TraceLevel: trace.TraceLevel(traceLevel),
		}
		if _, err := runScenario(cmd.Context(), "", cfg, opts, outputPath); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// resolveLambda returns the lambda to hand to the engine. An unset flag
// leaves the Theta/2 default in place; a set one must be finite and positive.
func resolveLambda(set bool, value float64) (float64, error) {
	if !set {
		return 0, nil
	}
	if err := sim.ValidateLambda(value); err != nil {
		return 0, err
	}
	return value, nil
}

// setupLogging applies --log to the global logrus logger.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// runScenario runs one ensemble, prints its summary and saves the report
// when output is set.
func runScenario(ctx context.Context, name string, cfg sim.SimConfig, opts ensemble.Options, output string) (*ensemble.Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	startTime := time.Now()
	result, err := ensemble.Run(ctx, cfg, opts)
	if err != nil {
		return nil, err
	}
	report := ensemble.NewReport(name, result, time.Since(startTime))
	report.Print(os.Stdout)
	if output != "" {
		if err := ensemble.SaveReport(report, output); err != nil {
			return nil, err
		}
	}
	return report, nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 42, "Master seed for random draws")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "Concurrent replicate runs (0 = number of CPUs)")

	runCmd.Flags().StringVar(&modelName, "model", string(sim.ModelPointMutation), "Speciation engine (point-mutation, protracted, vectorized)")
	runCmd.Flags().Float64Var(&theta, "theta", 1.0, "Speciation intensity theta (> 0)")
	runCmd.Flags().IntVar(&individuals, "individuals", 1000, "Metacommunity size J (>= 1)")
	runCmd.Flags().Float64Var(&tau, "tau", 0, "Minimum speciation-completion time (protracted model)")
	runCmd.Flags().Float64Var(&lambda, "lambda", 0, "Per-lineage speciation rate (vectorized model; defaults to theta/2)")
	runCmd.Flags().IntVar(&replicates, "replicates", 1, "Number of independent replicate runs")
	runCmd.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "Event trace level for exact engines (none, events)")
	runCmd.Flags().StringVar(&outputPath, "output", "", "Write the JSON report here (.zst suffix compresses, - for stdout)")

	batchCmd.Flags().StringVar(&configPath, "config", "", "YAML scenario file")

	// Attach subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(batchCmd)
}

package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// batchCmd runs every scenario of a YAML scenario file in order
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run every scenario listed in a YAML file",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		if configPath == "" {
			logrus.Fatalf("--config is required")
		}
		file, err := LoadScenarioFile(configPath)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := file.Validate(); err != nil {
			logrus.Fatalf("Invalid scenario file %s: %v", configPath, err)
		}

		// --seed on the command line overrides every seed in the file
		var seedOverride *int64
		if cmd.Flags().Changed("seed") {
			seedOverride = &seed
		}

		for i, s := range file.Scenarios {
			logrus.Infof("Scenario %d/%d: %s", i+1, len(file.Scenarios), s.Name)
			opts := file.Options(i, seedOverride, workers)
			if _, err := runScenario(cmd.Context(), s.Name, s.SimConfig(), opts, s.Output); err != nil {
				logrus.Fatalf("Scenario %s failed: %v", s.Name, err)
			}
		}
		logrus.Infof("Batch complete: %d scenario(s).", len(file.Scenarios))
	},
}

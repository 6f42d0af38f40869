// cmd/root.go
package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configPath string
	graphPath  string
	featureArg []string
	logLevel   string
	jsonOut    bool
	outPath    string
)

var rootCmd = &cobra.Command{
	Use:   "gcnsim",
	Short: "Cycle-accurate performance simulator for a GCN hardware accelerator",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setLogLevel() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)

	runCmd.Flags().StringVar(&configPath, "config", "", "Path to the accelerator configuration YAML (required)")
	runCmd.Flags().StringVar(&graphPath, "graph", "", "Path to the graph file, overrides the config's graph_path")
	runCmd.Flags().StringArrayVar(&featureArg, "features", nil, "Per-layer feature file path, repeatable; overrides the config's features_paths")
	runCmd.Flags().BoolVar(&jsonOut, "json", false, "Print the result as JSON instead of a human-readable summary")
	runCmd.Flags().StringVar(&outPath, "out", "", "If set, also write the JSON result to this path")
	_ = runCmd.MarkFlagRequired("config")

	validateCmd.Flags().StringVar(&configPath, "config", "", "Path to the accelerator configuration YAML (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

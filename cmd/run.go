package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/gcnsim/gcnsim/accel"
	"github.com/gcnsim/gcnsim/features"
	"github.com/gcnsim/gcnsim/graph"
	"github.com/gcnsim/gcnsim/internal/util"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one accelerator simulation and report cycle-count statistics",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()

		settings, err := accel.LoadSettings(configPath)
		if err != nil {
			logrus.Fatalf("loading config: %v", err)
		}
		if graphPath != "" {
			settings.GraphPath = graphPath
		}
		if len(featureArg) > 0 {
			settings.FeaturesPaths = featureArg
		}
		if err := settings.Validate(); err != nil {
			logrus.Fatalf("invalid config: %v", err)
		}

		logrus.WithFields(util.RunFields(settings.GraphPath, string(settings.AcceleratorSettings.RunningMode), settings.AcceleratorSettings.GcnLayers)).
			Info("loading inputs")

		g, err := graph.Load(settings.GraphPath)
		if err != nil {
			logrus.Fatalf("loading graph: %v", err)
		}

		var nodeFeatures []*features.NodeFeatures
		if settings.AcceleratorSettings.RunningMode != accel.RunningModeDense {
			for _, path := range settings.FeaturesPaths {
				nf, err := features.Load(path)
				if err != nil {
					logrus.Fatalf("loading features %s: %v", path, err)
				}
				logrus.WithFields(logrus.Fields{
					"path":          path,
					"nodes":         nf.NumNodes(),
					"feature_bytes": nf.TotalBytes(),
				}).Debug("loaded feature table")
				nodeFeatures = append(nodeFeatures, nf)
			}
		}

		dram := accel.NewFixedLatencyDRAM(100, 32)
		system := accel.NewSystem(g, nodeFeatures, settings.AcceleratorSettings, dram)

		logrus.Info("starting simulation")
		stats, err := system.Run()
		if err != nil {
			logrus.Fatalf("simulation failed: %v", err)
		}
		logrus.WithField("total_cycle", stats.TotalCycle).Info("simulation complete")
		logPerLayerSpread(stats)

		result := accel.Result{Settings: settings, Stats: stats}
		printResult(result)
		if outPath != "" {
			if err := writeResultJSON(result, outPath); err != nil {
				logrus.Fatalf("writing result: %v", err)
			}
		}
	},
}

// logPerLayerSpread logs the mean and (when more than one layer ran)
// standard deviation of per-layer cycle counts, computed from the
// cumulative PerLayerCycle marks System.Run records.
func logPerLayerSpread(stats *accel.GcnStatistics) {
	if len(stats.PerLayerCycle) == 0 {
		return
	}
	deltas := make([]float64, len(stats.PerLayerCycle))
	var prev int64
	for i, cumulative := range stats.PerLayerCycle {
		deltas[i] = float64(cumulative - prev)
		prev = cumulative
	}

	mean, std := stat.MeanStdDev(deltas, nil)
	fields := logrus.Fields{"layer_cycle_mean": mean}
	if len(deltas) > 1 {
		fields["layer_cycle_stddev"] = std
	}
	logrus.WithFields(fields).Info("per-layer cycle spread")
}

func printResult(result accel.Result) {
	if jsonOut {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			logrus.Fatalf("marshaling result: %v", err)
		}
		fmt.Println(string(data))
		return
	}

	s := result.Stats
	fmt.Printf("total_cycle:       %d\n", s.TotalCycle)
	fmt.Printf("sparse_agg_cycle:  %d\n", s.SparseAggCycle)
	fmt.Printf("dense_agg_cycle:   %d\n", s.DenseAggCycle)
	fmt.Printf("sparse_mlp_cycle:  %d\n", s.SparseMLPCycle)
	fmt.Printf("dense_mlp_cycle:   %d\n", s.DenseMLPCycle)
	fmt.Printf("translation_cycle: %d\n", s.TranslationCycle)
	fmt.Printf("sparsify_cycle:    %d\n", s.SparsifyCycle)
	fmt.Printf("simulation_time:   %s\n", s.SimulationTime)
}

func writeResultJSON(result accel.Result, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

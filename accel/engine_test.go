package accel

import (
	"testing"

	"github.com/gcnsim/gcnsim/features"
	"github.com/gcnsim/gcnsim/graph"
)

// buildTestSettings returns a small single-layer Sparse configuration
// sized generously enough that the whole 3-node test graph fits in one
// output tile and one input tile.
func buildTestSettings() AcceleratorSettings {
	return AcceleratorSettings{
		InputBufferSize: 256,
		AggBufferSize:   256,
		GcnHiddenSize:   nil,
		AggregatorSettings: AggregatorSettings{
			SparseCores: 2,
		},
		MlpSettings: MlpSettings{
			SystolicRows:   4,
			SystolicCols:   4,
			MlpSparseCores: 1,
		},
		SparsifierSettings: SparsifierSettings{
			SparsifierCores: 2,
			SparsifierCols:  1,
			SparsifierWidth: 2,
		},
		RunningMode:   RunningModeSparse,
		MemSendSize:   4,
		GcnLayers:     1,
	}
}

// TestSystem_Run_SparseSingleLayerCompletes runs a minimal single-layer
// Sparse-mode simulation end to end and checks that it terminates with a
// positive cycle count and every per-stage counter that mode's chain
// exercises populated.
func TestSystem_Run_SparseSingleLayerCompletes(t *testing.T) {
	g, err := graph.Load(writeFile(t, "engine_graph.txt", "f 3\n0 1 2\n1 2 0\n2 0 1\nend\n"))
	if err != nil {
		t.Fatalf("graph.Load: %v", err)
	}
	nf, err := features.Load(writeFile(t, "engine_features.txt", "0 0 1 0 1 0\n1 0 0 1 1 1\n1 1 0 0 0 1\n"))
	if err != nil {
		t.Fatalf("features.Load: %v", err)
	}

	dram := NewFixedLatencyDRAM(2, 64)
	settings := buildTestSettings()
	sys := NewSystem(g, []*features.NodeFeatures{nf}, settings, dram)

	stats, err := sys.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.TotalCycle <= 0 {
		t.Fatalf("TotalCycle = %d, want > 0", stats.TotalCycle)
	}
	if stats.SparseAggCycle <= 0 {
		t.Error("expected SparseAggCycle to be populated")
	}
	if stats.SparseMLPCycle <= 0 {
		t.Error("expected SparseMLPCycle to be populated")
	}
	if stats.SparsifyCycle <= 0 {
		t.Error("expected SparsifyCycle to be populated")
	}
	if stats.DenseAggCycle != 0 || stats.DenseMLPCycle != 0 || stats.TranslationCycle != 0 {
		t.Error("sparse-mode run should not populate dense/translation counters")
	}
	if len(stats.PerLayerCycle) != 1 || stats.PerLayerCycle[0] != stats.TotalCycle {
		t.Fatalf("PerLayerCycle = %v, want a single entry equal to TotalCycle (%d)", stats.PerLayerCycle, stats.TotalCycle)
	}
}

// TestSystem_Run_DenseSingleLayerCompletes exercises the Dense chain
// (no sparsifier stage, no node-feature reads).
func TestSystem_Run_DenseSingleLayerCompletes(t *testing.T) {
	g, err := graph.Load(writeFile(t, "engine_dense_graph.txt", "f 3\n0 1 2\n1 2 0\n2 0 1\nend\n"))
	if err != nil {
		t.Fatalf("graph.Load: %v", err)
	}

	dram := NewFixedLatencyDRAM(2, 64)
	settings := buildTestSettings()
	settings.RunningMode = RunningModeDense
	settings.AggregatorSettings.DenseCores = 2
	settings.AggregatorSettings.DenseWidth = 4
	sys := NewSystem(g, nil, settings, dram)

	stats, err := sys.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.TotalCycle <= 0 {
		t.Fatalf("TotalCycle = %d, want > 0", stats.TotalCycle)
	}
	if stats.DenseAggCycle <= 0 {
		t.Error("expected DenseAggCycle to be populated")
	}
	if stats.DenseMLPCycle <= 0 {
		t.Error("expected DenseMLPCycle to be populated")
	}
	if stats.SparseAggCycle != 0 || stats.SparseMLPCycle != 0 || stats.SparsifyCycle != 0 {
		t.Error("dense-mode run should not populate sparse/sparsify counters")
	}
}

package accel

import "time"

// GcnStatistics is the engine's exit report: total and per-stage cycle
// counts plus wall-clock simulation time.
type GcnStatistics struct {
	TotalCycle       int64         `json:"total_cycle"`
	SparseAggCycle   int64         `json:"sparse_agg_cycle"`
	DenseAggCycle    int64         `json:"dense_agg_cycle"`
	SparseMLPCycle   int64         `json:"sparse_mlp_cycle"`
	DenseMLPCycle    int64         `json:"dense_mlp_cycle"`
	TranslationCycle int64         `json:"translation_cycle"`
	SparsifyCycle    int64         `json:"sparsify_cycle"`
	SimulationTime   time.Duration `json:"simulation_time"`

	// PerLayerCycle holds the cumulative cycle count at the end of each
	// GCN layer (entry k is the cycle the k-th layer's last output tile
	// finished on), used to summarize per-layer cost spread.
	PerLayerCycle []int64 `json:"per_layer_cycle"`
}

// Result bundles the settings a run was configured with alongside the
// statistics it produced, mirroring the original driver's
// GcnAggResult{settings, stats} serialized wholesale to JSON.
type Result struct {
	Settings *Settings      `json:"settings"`
	Stats    *GcnStatistics `json:"stats"`
}

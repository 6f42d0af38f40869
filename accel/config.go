package accel

import "fmt"

// RunningMode selects which aggregation path the accelerator runs: a
// sparse path using the set-union cycle model, a dense path whose
// aggregation cost depends only on tile shape, or a mixed path (the sparse
// path with a translation stage ahead of aggregation). One mode applies to
// every layer of a run.
type RunningMode string

const (
	RunningModeSparse RunningMode = "sparse"
	RunningModeDense  RunningMode = "dense"
	RunningModeMixed  RunningMode = "mixed"
)

// Settings is the top-level accelerator run configuration: the graph and
// per-layer feature files plus the hardware parameters below.
type Settings struct {
	Description         string              `yaml:"description" json:"description"`
	GraphPath           string              `yaml:"graph_path" json:"graph_path"`
	FeaturesPaths       []string            `yaml:"features_paths" json:"features_paths"`
	AcceleratorSettings AcceleratorSettings `yaml:"accelerator_settings" json:"accelerator_settings"`
}

// AcceleratorSettings holds the hardware-level parameters shared across
// every pipeline stage.
type AcceleratorSettings struct {
	InputBufferSize    int                `yaml:"input_buffer_size" json:"input_buffer_size"`
	AggBufferSize      int                `yaml:"agg_buffer_size" json:"agg_buffer_size"`
	GcnHiddenSize      []int              `yaml:"gcn_hidden_size" json:"gcn_hidden_size"`
	AggregatorSettings AggregatorSettings `yaml:"aggregator_settings" json:"aggregator_settings"`
	MlpSettings        MlpSettings        `yaml:"mlp_settings" json:"mlp_settings"`
	SparsifierSettings SparsifierSettings `yaml:"sparsifier_settings" json:"sparsifier_settings"`
	RunningMode        RunningMode        `yaml:"running_mode" json:"running_mode"`
	MemConfigName      string             `yaml:"mem_config_name" json:"mem_config_name"`
	MemSendSize        int                `yaml:"mem_send_size" json:"mem_send_size"`
	GcnLayers          int                `yaml:"gcn_layers" json:"gcn_layers"`
}

// AggregatorSettings configures the sparse and dense aggregation cores.
type AggregatorSettings struct {
	SparseCores int `yaml:"sparse_cores" json:"sparse_cores"`
	SparseWidth int `yaml:"sparse_width" json:"sparse_width"`
	DenseCores  int `yaml:"dense_cores" json:"dense_cores"`
	DenseWidth  int `yaml:"dense_width" json:"dense_width"`
}

// MlpSettings configures the systolic MLP array.
type MlpSettings struct {
	SystolicRows   int `yaml:"systolic_rows" json:"systolic_rows"`
	SystolicCols   int `yaml:"systolic_cols" json:"systolic_cols"`
	MlpSparseCores int `yaml:"mlp_sparse_cores" json:"mlp_sparse_cores"`
}

// SparsifierSettings configures the post-MLP sparsification stage.
type SparsifierSettings struct {
	SparsifierCores int `yaml:"sparsifier_cores" json:"sparsifier_cores"`
	SparsifierWidth int `yaml:"sparsifier_width" json:"sparsifier_width"`
	SparsifierCols  int `yaml:"sparsifier_cols" json:"sparsifier_cols"`
}

// Validate enforces the invariants between layer count, hidden-size
// list length, and (for Sparse/Mixed modes) the number of per-layer
// feature files.
func (s *Settings) Validate() error {
	a := s.AcceleratorSettings
	if a.GcnLayers == 0 {
		return fmt.Errorf("gcn_layers must be greater than 0")
	}
	if a.GcnLayers != len(a.GcnHiddenSize)+1 {
		return fmt.Errorf("gcn_layers (%d) must equal len(gcn_hidden_size)+1 (%d)", a.GcnLayers, len(a.GcnHiddenSize)+1)
	}
	switch a.RunningMode {
	case RunningModeDense:
		return nil
	case RunningModeSparse, RunningModeMixed:
		if len(s.FeaturesPaths)-len(a.GcnHiddenSize) != 1 {
			return fmt.Errorf("number of features_paths (%d) must equal len(gcn_hidden_size)+1 (%d)", len(s.FeaturesPaths), len(a.GcnHiddenSize)+1)
		}
		return nil
	default:
		return fmt.Errorf("unknown running_mode %q; valid options: sparse, dense, mixed", a.RunningMode)
	}
}

package accel

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gcnsim/gcnsim/features"
	"github.com/gcnsim/gcnsim/graph"
	"github.com/gcnsim/gcnsim/internal/util"
	"github.com/gcnsim/gcnsim/pipeline"
)

// pipelineStage is the uniform top-level shape every running mode's
// composite chain reduces to: MemRequest in, AggResult out, one Tick per
// simulated cycle. Connect/ConnectWithCost build a different concrete
// Composite[...] type per mode, so System holds this narrower interface
// rather than a concrete struct field.
type pipelineStage interface {
	CanAcceptInput() bool
	HasOutput() bool
	PushInput(req *MemRequest)
	PopOutput() *AggResult
	PeekInputInfo() any
	PeekOutputInfo() any
	Tick()
}

// System owns one run's graph, per-layer node features, hardware
// settings, and DRAM collaborator, and drives the composite pipeline
// those settings describe one simulated cycle at a time.
type System struct {
	graph        *graph.Graph
	nodeFeatures []*features.NodeFeatures // one per layer; unused entries in Dense mode
	settings     AcceleratorSettings

	pipeline pipelineStage
	stats    *GcnStatistics
	cycle    int64
}

// NewSystem builds a System and, per settings.RunningMode, wires the
// composite pipeline:
// MemInterface -> InputBuffer -> [TranslationBuffer?] ->
// AggregationBuffer -> MlpBuffer -> [SparsifyBuffer?] -> OutputBuffer.
func NewSystem(g *graph.Graph, nodeFeatures []*features.NodeFeatures, settings AcceleratorSettings, dram DRAMSimulator) *System {
	s := &System{graph: g, nodeFeatures: nodeFeatures, settings: settings, stats: &GcnStatistics{}}

	mem := NewMemInterface(dram, settings.MemSendSize, false)
	input := newInputBuffer()
	output := newOutputBuffer()
	mlp := newMlpBuffer()

	fedByMem := pipeline.Connect[*MemRequest, *InputWindow, *InputWindow](mem, input)

	switch settings.RunningMode {
	case RunningModeDense:
		agg := NewDenseAggBuffer()
		afterAgg := pipeline.ConnectWithCost[*MemRequest, *InputWindow, *AggResult](
			fedByMem, agg, NewDenseAggCostFn(settings.AggregatorSettings.DenseCores, settings.AggregatorSettings.DenseWidth, &s.stats.DenseAggCycle))
		afterMlp := pipeline.ConnectWithCost[*MemRequest, *AggResult, *AggResult](
			afterAgg, mlp, NewSystolicMlpCostFn(settings.MlpSettings.SystolicRows, settings.MlpSettings.SystolicCols, 1, false, &s.stats.DenseMLPCycle))
		s.pipeline = pipeline.Connect[*MemRequest, *AggResult, *AggResult](afterMlp, output)

	case RunningModeMixed:
		translation := newTranslationBuffer()
		sparsify := newSparsifyBuffer()
		agg := NewSparseAggBuffer(settings.AggregatorSettings.SparseCores, nodeFeatures, &s.stats.SparseAggCycle)

		afterTranslation := pipeline.ConnectWithCost[*MemRequest, *InputWindow, *InputWindow](
			fedByMem, translation, NewTranslationCostFn(&s.stats.TranslationCycle))
		afterAgg := pipeline.Connect[*MemRequest, *InputWindow, *AggResult](afterTranslation, agg)
		afterMlp := pipeline.ConnectWithCost[*MemRequest, *AggResult, *AggResult](
			afterAgg, mlp, NewSystolicMlpCostFn(settings.MlpSettings.SystolicRows, settings.MlpSettings.SystolicCols, settings.MlpSettings.MlpSparseCores, true, &s.stats.SparseMLPCycle))
		afterSparsify := pipeline.ConnectWithCost[*MemRequest, *AggResult, *AggResult](
			afterMlp, sparsify, NewSparsifierCostFn(settings.SparsifierSettings.SparsifierCores, settings.SparsifierSettings.SparsifierCols, settings.SparsifierSettings.SparsifierWidth, &s.stats.SparsifyCycle))
		s.pipeline = pipeline.Connect[*MemRequest, *AggResult, *AggResult](afterSparsify, output)

	default: // RunningModeSparse
		sparsify := newSparsifyBuffer()
		agg := NewSparseAggBuffer(settings.AggregatorSettings.SparseCores, nodeFeatures, &s.stats.SparseAggCycle)

		afterAgg := pipeline.Connect[*MemRequest, *InputWindow, *AggResult](fedByMem, agg)
		afterMlp := pipeline.ConnectWithCost[*MemRequest, *AggResult, *AggResult](
			afterAgg, mlp, NewSystolicMlpCostFn(settings.MlpSettings.SystolicRows, settings.MlpSettings.SystolicCols, settings.MlpSettings.MlpSparseCores, true, &s.stats.SparseMLPCycle))
		afterSparsify := pipeline.ConnectWithCost[*MemRequest, *AggResult, *AggResult](
			afterMlp, sparsify, NewSparsifierCostFn(settings.SparsifierSettings.SparsifierCores, settings.SparsifierSettings.SparsifierCols, settings.SparsifierSettings.SparsifierWidth, &s.stats.SparsifyCycle))
		s.pipeline = pipeline.Connect[*MemRequest, *AggResult, *AggResult](afterSparsify, output)
	}

	return s
}

// Run drives the pipeline layer by layer: for every output tile of every
// layer, every input tile is turned into a MemRequest and fed in once the
// pipeline can accept it, ticking and draining completed tiles as it
// goes. It returns once the final output tile of the final layer has
// emerged from the output stage.
func (s *System) Run() (*GcnStatistics, error) {
	start := time.Now()
	done := false

	drain := func() {
		for s.pipeline.HasOutput() {
			result := s.pipeline.PopOutput()
			if result.Window.IsFinalWindow && result.Window.LastRowCompleted {
				s.stats.PerLayerCycle = append(s.stats.PerLayerCycle, s.cycle)
				if result.Window.IsFinalLayer {
					done = true
				}
			}
		}
	}

	for layer := 0; layer < s.settings.GcnLayers && !done; layer++ {
		isFinalLayer := layer == s.settings.GcnLayers-1
		var nf *features.NodeFeatures
		if s.settings.RunningMode != RunningModeDense {
			nf = s.nodeFeatures[layer]
		}

		logrus.WithFields(util.LayerFields(layer, s.settings.GcnLayers, string(s.settings.RunningMode))).
			Debug("starting layer")

		outIt := NewOutputWindowIterator(s.graph, nf, WindowIterSettings{
			AggBufferSize:   s.settings.AggBufferSize,
			InputBufferSize: s.settings.InputBufferSize,
			Layer:           layer,
			GcnHiddenSize:   s.settings.GcnHiddenSize,
			IsFinalLayer:    isFinalLayer,
			RunningMode:     s.settings.RunningMode,
		})

		for inIt, ok := outIt.Next(); ok && !done; inIt, ok = outIt.Next() {
			for w, ok2 := inIt.Next(); ok2 && !done; w, ok2 = inIt.Next() {
				req := s.buildMemRequest(w, layer, nf)
				for !s.pipeline.CanAcceptInput() && !done {
					s.tick()
					drain()
				}
				if done {
					break
				}
				s.pipeline.PushInput(req)
			}
		}
	}

	for !done {
		s.tick()
		drain()
	}

	s.stats.TotalCycle = s.cycle
	s.stats.SimulationTime = time.Since(start)
	return s.stats, nil
}

func (s *System) tick() {
	s.pipeline.Tick()
	s.cycle++
	logrus.Debugf("%s pipeline transfer", util.TickPrefix(s.cycle))
}

// buildMemRequest computes the DRAM addresses w needs read: per-node
// start_addrs strides in Sparse/Mixed mode, the layer-tagged base offset
// in Dense mode.
func (s *System) buildMemRequest(w *InputWindow, layer int, nf *features.NodeFeatures) *MemRequest {
	var addrs []uint64
	if s.settings.RunningMode == RunningModeDense {
		addrs = DenseReadAddresses(layer, w.StartInputIndex, w.EndInputIndex, w.OutputWindow.InputNodeDim)
	} else {
		addrs = SparseReadAddresses(nf, w.StartInputIndex, w.EndInputIndex)
	}
	return &MemRequest{Window: w, AddrVec: addrs}
}

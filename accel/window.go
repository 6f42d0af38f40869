package accel

import (
	"fmt"

	"github.com/gcnsim/gcnsim/features"
	"github.com/gcnsim/gcnsim/graph"
)

// OutputWindow describes one output-row tile: the row range it covers,
// the feature dimensions on either side of the matrix product, and
// whether this is the layer's last tile.
type OutputWindow struct {
	StartOutputIndex int
	EndOutputIndex   int
	TaskID           WindowId
	OutputNodeDim    int
	InputNodeDim     int
	IsFinalWindow    bool
	IsFinalLayer     bool
	LastRowCompleted bool
}

// OutputLen returns the number of output rows this tile covers.
func (w *OutputWindow) OutputLen() int { return w.EndOutputIndex - w.StartOutputIndex }

// InputWindow is one input-row tile within an output tile: the row range
// it covers and, for each output row in the output tile, the slice of
// contributing input rows restricted to that range.
type InputWindow struct {
	TaskID           WindowId
	Tasks            []graph.ColumnSet
	StartOutputIndex int
	StartInputIndex  int
	EndOutputIndex   int
	EndInputIndex    int
	OutputWindow     *OutputWindow
	IsLastRow        bool
}

// WindowIterSettings parameterizes an OutputWindowIterator: buffer
// capacities, the layer being windowed, per-layer hidden sizes, and the
// aggregation mode.
type WindowIterSettings struct {
	AggBufferSize  int
	InputBufferSize int
	Layer          int
	GcnHiddenSize  []int
	IsFinalLayer   bool
	RunningMode    RunningMode
}

// OutputWindowIterator walks a layer's output rows in tiles sized to fit
// half the aggregation buffer (layer 0) or to the previous layer's hidden
// width (later layers), yielding one InputWindowIterator per output tile.
type OutputWindowIterator struct {
	graph                   *graph.Graph
	nodeFeatures            *features.NodeFeatures
	aggBufferSize           int
	inputBufferSize         int
	currentStartOutputIndex int
	taskID                  WindowId
	gcnHiddenSize           []int
	isFinalLayer            bool
	runningMode             RunningMode
}

// NewOutputWindowIterator builds an iterator over g's output rows.
// nodeFeatures may be nil when running_mode is Dense (dense tiling never
// consults per-row feature byte sizes).
func NewOutputWindowIterator(g *graph.Graph, nodeFeatures *features.NodeFeatures, s WindowIterSettings) *OutputWindowIterator {
	return &OutputWindowIterator{
		graph:           g,
		nodeFeatures:    nodeFeatures,
		aggBufferSize:   s.AggBufferSize,
		inputBufferSize: s.InputBufferSize,
		taskID:          WindowId{LayerID: s.Layer},
		gcnHiddenSize:   s.GcnHiddenSize,
		isFinalLayer:    s.IsFinalLayer,
		runningMode:     s.RunningMode,
	}
}

// Next returns the iterator over the next output tile's input tiles, or
// false once every output row has been covered.
func (it *OutputWindowIterator) Next() (*InputWindowIterator, bool) {
	numNodes := it.graph.NumNodes()
	if it.currentStartOutputIndex >= numNodes {
		return nil, false
	}

	var outputSize int
	if it.taskID.LayerID == 0 {
		outputSize = (it.aggBufferSize / 2) / (it.graph.FeatureSize() * 4)
	} else {
		outputSize = it.gcnHiddenSize[it.taskID.LayerID-1]
	}
	if outputSize == 0 {
		panic(fmt.Sprintf("output tile size is 0 (agg_buffer_size/2=%d, feature_size*4=%d)", it.aggBufferSize/2, it.graph.FeatureSize()*4))
	}

	endOutputIndex := it.currentStartOutputIndex + outputSize
	if endOutputIndex > numNodes {
		endOutputIndex = numNodes
	}
	isFinalIter := endOutputIndex >= numNodes

	inputIter := newInputWindowIterator(it.taskID, it.graph, it.nodeFeatures, inputIterSettings{
		inputBufferSize:  it.inputBufferSize,
		startOutputIndex: it.currentStartOutputIndex,
		endOutputIndex:   endOutputIndex,
		gcnHiddenSize:    it.gcnHiddenSize,
		isFinalIter:      isFinalIter,
		isFinalLayer:     it.isFinalLayer,
		runningMode:      it.runningMode,
	})

	it.taskID.OutputID++
	it.currentStartOutputIndex = endOutputIndex
	return inputIter, true
}

type inputIterSettings struct {
	inputBufferSize  int
	startOutputIndex int
	endOutputIndex   int
	gcnHiddenSize    []int
	isFinalIter      bool
	isFinalLayer     bool
	runningMode      RunningMode
}

// InputWindowIterator walks one output tile's input rows in tiles sized
// to fit half the input buffer, yielding one InputWindow per input tile.
type InputWindowIterator struct {
	taskID           WindowId
	graph            *graph.Graph
	nodeFeatures     *features.NodeFeatures
	inputBufferSize  int
	startOutputIndex int
	endOutputIndex   int

	currentWindowStartInputIndex int
	currentWindowEndInputIndex   int

	gcnHiddenSize []int
	isFinalIter   bool
	isFinalLayer  bool
	runningMode   RunningMode
}

func newInputWindowIterator(taskID WindowId, g *graph.Graph, nodeFeatures *features.NodeFeatures, s inputIterSettings) *InputWindowIterator {
	return &InputWindowIterator{
		taskID:           taskID,
		graph:            g,
		nodeFeatures:     nodeFeatures,
		inputBufferSize:  s.inputBufferSize,
		startOutputIndex: s.startOutputIndex,
		endOutputIndex:   s.endOutputIndex,
		gcnHiddenSize:    s.gcnHiddenSize,
		isFinalIter:      s.isFinalIter,
		isFinalLayer:     s.isFinalLayer,
		runningMode:      s.runningMode,
	}
}

// Next returns the next input tile within this output tile, or false
// once every contributing input row has been covered.
func (it *InputWindowIterator) Next() (*InputWindow, bool) {
	numNodes := it.graph.NumNodes()
	if it.currentWindowStartInputIndex >= numNodes {
		return nil, false
	}

	// Skip rows that contribute nothing within this output tile's column
	// range: they would otherwise force a zero-width, useless tile.
	for it.currentWindowStartInputIndex < numNodes &&
		it.graph.IsRowRangeEmpty(it.currentWindowStartInputIndex, it.startOutputIndex, it.endOutputIndex) {
		it.currentWindowStartInputIndex++
	}
	if it.currentWindowStartInputIndex == numNodes {
		return nil, false
	}

	taskID := it.taskID

	var inputNodeDim int
	if taskID.LayerID == 0 {
		inputNodeDim = it.graph.FeatureSize()
	} else {
		inputNodeDim = it.gcnHiddenSize[taskID.LayerID-1]
	}

	var outputNodeDim int
	if it.isFinalLayer {
		outputNodeDim = 1
	} else {
		outputNodeDim = it.gcnHiddenSize[it.taskID.LayerID]
	}

	xLen := it.sizeInputTile(inputNodeDim)
	if xLen == 0 {
		panic("input tile size is 0: the input buffer cannot fit even one more node")
	}
	it.currentWindowEndInputIndex = it.currentWindowStartInputIndex + xLen
	if it.currentWindowEndInputIndex > numNodes {
		it.currentWindowEndInputIndex = numNodes
	}

	// Shrink back: a row at the tail of the tile that contributes
	// nothing within this output range shouldn't be included.
	for it.graph.IsRowRangeEmpty(it.currentWindowEndInputIndex-1, it.startOutputIndex, it.endOutputIndex) {
		it.currentWindowEndInputIndex--
	}

	tasks := make([]graph.ColumnSet, 0, it.endOutputIndex-it.startOutputIndex)
	for c := it.startOutputIndex; c < it.endOutputIndex; c++ {
		tasks = append(tasks, it.graph.ColumnRange(c, it.currentWindowStartInputIndex, it.currentWindowEndInputIndex))
	}

	isFinalWindow := it.isFinalIter

	nextStartRow := it.currentWindowStartInputIndex + xLen
	isLastRow := true
	for nextStartRow < numNodes {
		if !it.graph.IsRowRangeEmpty(nextStartRow, it.startOutputIndex, it.endOutputIndex) {
			isLastRow = false
			break
		}
		nextStartRow++
	}

	window := &InputWindow{
		TaskID:           taskID,
		Tasks:            tasks,
		StartOutputIndex: it.startOutputIndex,
		StartInputIndex:  it.currentWindowStartInputIndex,
		EndOutputIndex:   it.endOutputIndex,
		EndInputIndex:    it.currentWindowEndInputIndex,
		OutputWindow: &OutputWindow{
			StartOutputIndex: it.startOutputIndex,
			EndOutputIndex:   it.endOutputIndex,
			TaskID:           taskID,
			OutputNodeDim:    outputNodeDim,
			InputNodeDim:     inputNodeDim,
			IsFinalWindow:    isFinalWindow,
			IsFinalLayer:     it.isFinalLayer,
			LastRowCompleted: isLastRow,
		},
		IsLastRow: isLastRow,
	}

	it.currentWindowStartInputIndex = nextStartRow
	it.taskID.InputID++
	return window, true
}

// sizeInputTile computes x_len: the number of input rows the next tile
// should span, before the empty-row shrink-back pass.
func (it *InputWindowIterator) sizeInputTile(inputNodeDim int) int {
	numNodes := it.graph.NumNodes()
	half := it.inputBufferSize / 2

	switch it.runningMode {
	case RunningModeDense:
		return half / (inputNodeDim * 4)
	default: // Sparse, Mixed
		xSize, xLen := 0, 0
		for xSize < half && it.currentWindowStartInputIndex+xLen < numNodes {
			row := it.nodeFeatures.Row(it.currentWindowStartInputIndex + xLen)
			newSize := len(row) * 4
			if xSize+newSize > half {
				break
			}
			xSize += newSize
			xLen++
		}
		return xLen
	}
}

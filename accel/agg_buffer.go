package accel

import (
	"github.com/gcnsim/gcnsim/features"
	"github.com/gcnsim/gcnsim/graph"
)

// AggResult carries one completed output tile out of SparseAggBuffer:
// the tile's descriptor and, per output row, the union of aggregated
// input-feature indices.
type AggResult struct {
	Window *OutputWindow
	Rows   [][]int
}

// SparseAggBuffer implements the set-union cycle model for sparse
// aggregation and conforms to the pipeline Stage protocol: it accepts
// InputWindow tiles and emits AggResult tiles, one per output tile, at
// the rate its internal cycle model allows.
type SparseAggBuffer struct {
	inputQueue  *InputWindow
	dataQueue   *OutputWindow
	outputQueue *AggResult

	tempAggResult [][]int
	cyclesLeft    int64
	working       bool // true while in a Working(n, last) state; false means Done
	isLast        bool
	isFirstRow    bool

	sparseCores  int
	nodeFeatures []*features.NodeFeatures // indexed by layer id

	totalCycle *int64
}

// NewSparseAggBuffer builds an empty buffer. nodeFeatures must have one
// entry per GCN layer; totalCycle accumulates every tile's cost across
// the whole run.
func NewSparseAggBuffer(sparseCores int, nodeFeatures []*features.NodeFeatures, totalCycle *int64) *SparseAggBuffer {
	return &SparseAggBuffer{
		working:      true,
		isFirstRow:   true,
		sparseCores:  sparseCores,
		nodeFeatures: nodeFeatures,
		totalCycle:   totalCycle,
	}
}

func (b *SparseAggBuffer) CanAcceptInput() bool { return b.inputQueue == nil }

func (b *SparseAggBuffer) HasOutput() bool { return b.outputQueue != nil }

func (b *SparseAggBuffer) PushInput(w *InputWindow) { b.inputQueue = w }

func (b *SparseAggBuffer) PopOutput() *AggResult {
	out := b.outputQueue
	b.outputQueue = nil
	return out
}

func (b *SparseAggBuffer) PeekInputInfo() any { return b.tempAggResult }

func (b *SparseAggBuffer) PeekOutputInfo() any { return b.outputQueue }

// Tick advances the buffer's state machine by one cycle: pop_then_price
// a new tile when idle, count down while working, and move a finished
// tile into the output slot once it's free.
func (b *SparseAggBuffer) Tick() {
	if b.working {
		switch {
		case b.cyclesLeft > 0:
			b.cyclesLeft--
		case b.isLast:
			b.working = false
		case b.inputQueue != nil:
			window := b.inputQueue
			b.inputQueue = nil
			if b.isFirstRow {
				b.tempAggResult = make([][]int, len(window.Tasks))
				b.isFirstRow = false
			}
			cycles := b.addSparseCycles(window.Tasks, window.TaskID.LayerID)
			*b.totalCycle += cycles
			b.isLast = window.IsLastRow
			b.dataQueue = window.OutputWindow
			b.cyclesLeft = cycles
		}
		return
	}

	if b.outputQueue != nil {
		return
	}
	result := b.tempAggResult
	b.tempAggResult = nil
	b.outputQueue = &AggResult{Window: b.dataQueue, Rows: result}
	b.dataQueue = nil
	b.working = true
	b.cyclesLeft = 0
	b.isLast = false
	b.isFirstRow = true
}

// addSparseCycles computes the tile's cycle cost: for each output row,
// the streamed-set-union cost of merging every contributing input row's
// feature indices into the row's running union, then distributes the
// per-row totals across sparseCores by greedy longest-processing-time
// assignment and returns the max core load.
func (b *SparseAggBuffer) addSparseCycles(tasks []graph.ColumnSet, layer int) int64 {
	nodeFeatures := b.nodeFeatures[layer]

	rowCycles := make([]int64, len(tasks))
	for k, task := range tasks {
		union := newIntSet(b.tempAggResult[k])
		var cycles int64
		for _, i := range task {
			row := nodeFeatures.Row(i)
			cycles += int64(union.size() + len(row))
			union.insertAll(row)
		}
		b.tempAggResult[k] = union.values()
		rowCycles[k] = cycles
	}

	coreCycles := make([]int64, b.sparseCores)
	for _, c := range rowCycles {
		least := 0
		for i, load := range coreCycles {
			if load < coreCycles[least] {
				least = i
			}
		}
		coreCycles[least] += c
	}

	var max int64
	for _, load := range coreCycles {
		if load > max {
			max = load
		}
	}
	return max
}

// intSet is a small insertion-ordered-irrelevant set of feature column
// indices, used to model the set-union accounting in addSparseCycles
// without caring about the union's eventual iteration order (the
// original accounts cycles from set cardinalities only).
type intSet struct {
	members map[int]struct{}
}

func newIntSet(seed []int) *intSet {
	s := &intSet{members: make(map[int]struct{}, len(seed))}
	s.insertAll(seed)
	return s
}

func (s *intSet) size() int { return len(s.members) }

func (s *intSet) insertAll(values []int) {
	for _, v := range values {
		s.members[v] = struct{}{}
	}
}

func (s *intSet) values() []int {
	out := make([]int, 0, len(s.members))
	for v := range s.members {
		out = append(out, v)
	}
	return out
}

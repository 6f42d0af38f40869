package accel

import "github.com/gcnsim/gcnsim/pipeline"

// InputBuffer, TranslationBuffer, MlpBuffer, SparsifyBuffer, and
// OutputBuffer are plain one-tick latches with no cost state of their own.
// TranslationBuffer, MlpBuffer and SparsifyBuffer get their cycle cost from
// a CostFunc installed at the composite boundary feeding them
// (ConnectWithCost); InputBuffer and OutputBuffer are joined with a plain
// Connect.
type (
	InputBuffer       = pipeline.DoubleBuffer[*InputWindow]
	TranslationBuffer = pipeline.DoubleBuffer[*InputWindow]
	MlpBuffer         = pipeline.DoubleBuffer[*AggResult]
	SparsifyBuffer    = pipeline.DoubleBuffer[*AggResult]
	OutputBuffer      = pipeline.DoubleBuffer[*AggResult]
)

func newInputBuffer() *InputBuffer             { return pipeline.NewDoubleBuffer[*InputWindow]() }
func newTranslationBuffer() *TranslationBuffer { return pipeline.NewDoubleBuffer[*InputWindow]() }
func newMlpBuffer() *MlpBuffer                 { return pipeline.NewDoubleBuffer[*AggResult]() }
func newSparsifyBuffer() *SparsifyBuffer       { return pipeline.NewDoubleBuffer[*AggResult]() }
func newOutputBuffer() *OutputBuffer           { return pipeline.NewDoubleBuffer[*AggResult]() }

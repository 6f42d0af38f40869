package pipeline

// AggBuffer is the generic fold-until-complete stage: it consumes a
// sequence of inputs sharing a key, folding each into an accumulated
// output, until a caller-supplied predicate says the sequence is done. It
// is the zero-latency reference shape of "aggregate N inputs into one
// output": the domain-specific sparse aggregation buffer (accel package)
// has its own cycle-costed state machine and does not build on this type;
// this one is used directly wherever an aggregation stage has no internal
// cycle model of its own and instead relies on an externally installed
// cost (see pipeline.ConnectWithCost).
type AggBuffer[I, O any] struct {
	keyFn      func(I) O
	mergeFn    func(*O, I)
	completeFn func(I) bool

	input     *I
	acc       *O
	output    *O
	emitReady bool
}

// NewAggBuffer builds an AggBuffer from its three pure functions: key
// converts the first input of a sequence into the seed output value,
// merge folds each subsequent input into the accumulator, and complete
// reports whether the just-consumed input closes the sequence.
func NewAggBuffer[I, O any](key func(I) O, merge func(*O, I), complete func(I) bool) *AggBuffer[I, O] {
	return &AggBuffer[I, O]{keyFn: key, mergeFn: merge, completeFn: complete}
}

func (b *AggBuffer[I, O]) CanAcceptInput() bool { return b.input == nil }

func (b *AggBuffer[I, O]) HasOutput() bool { return b.output != nil }

func (b *AggBuffer[I, O]) PushInput(in I) {
	b.input = &in
}

func (b *AggBuffer[I, O]) PopOutput() O {
	out := *b.output
	b.output = nil
	return out
}

func (b *AggBuffer[I, O]) PeekInputInfo() any {
	if b.acc != nil {
		return *b.acc
	}
	return nil
}

func (b *AggBuffer[I, O]) PeekOutputInfo() any {
	if b.output == nil {
		return nil
	}
	return *b.output
}

// Tick consumes at most one queued input per cycle: seeding the
// accumulator via key on the first input of a sequence, folding
// subsequent inputs in via merge, and moving the accumulator to the
// output slot once complete reports true. Emission is gated on the
// output slot being empty, giving a stalled consumer natural
// back-pressure.
func (b *AggBuffer[I, O]) Tick() {
	if b.output == nil && b.emitReady {
		out := *b.acc
		b.output = &out
		b.acc = nil
		b.emitReady = false
	}
	if b.output != nil || b.input == nil {
		return
	}
	item := *b.input
	b.input = nil
	if b.acc == nil {
		seed := b.keyFn(item)
		b.acc = &seed
	} else {
		b.mergeFn(b.acc, item)
	}
	if b.completeFn(item) {
		b.emitReady = true
	}
}

// Package pipeline implements the generic stage-to-stage substrate the
// accelerator's composite pipeline is built from: a uniform 1-slot-queue
// back-pressure contract, a zero-work latch, a generic fold stage, and a
// composition operator that chains stages into a single stage of the same
// protocol.
package pipeline

// Stage is the contract every pipeline stage conforms to. A stage holds a
// 1-slot input queue and a 1-slot output queue plus arbitrary internal
// state; Tick advances it by exactly one simulated cycle.
//
// PeekInputInfo and PeekOutputInfo return implementation-defined snapshots
// of a stage's queued input/output or derived state (used by cost functions
// at composition boundaries). DoubleBuffer returns nil when the
// corresponding queue is empty; other stages may return derived state
// instead (AggBuffer's PeekInputInfo returns its accumulator).
type Stage[In, Out any] interface {
	// CanAcceptInput reports whether the input queue is empty.
	CanAcceptInput() bool
	// HasOutput reports whether the output queue is non-empty.
	HasOutput() bool
	// PushInput enqueues a value. Callers must check CanAcceptInput first.
	PushInput(in In)
	// PopOutput dequeues a value. Callers must check HasOutput first.
	PopOutput() Out
	// PeekInputInfo exposes the queued input (or derived state) without consuming it.
	PeekInputInfo() any
	// PeekOutputInfo exposes the queued output (or derived state) without consuming it.
	PeekOutputInfo() any
	// Tick advances the stage by one simulated cycle.
	Tick()
}

// CostFunc computes the number of cycles a transferred item should be held
// before it becomes visible to the downstream stage. It is consulted with
// the upstream stage's PeekOutputInfo and the downstream stage's
// PeekInputInfo at the moment of transfer. A zero return means the item is
// forwarded immediately (equivalent to a plain Connect).
type CostFunc func(upstreamOutputInfo, downstreamInputInfo any) int64

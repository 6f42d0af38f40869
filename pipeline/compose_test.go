package pipeline

import "testing"

func TestConnectPropagatesThroughTwoStageChain(t *testing.T) {
	a := NewDoubleBuffer[int]()
	b := NewDoubleBuffer[int]()
	chain := Connect(a, b)

	chain.PushInput(7)
	ticks := 0
	for !chain.HasOutput() {
		chain.Tick()
		ticks++
		if ticks > 10 {
			t.Fatal("chain never produced output")
		}
	}
	// a's own latch (1) + the tick where the item is grabbed from a and
	// pushed into b (1) + b's own latch (1): downstream-first ordering
	// means the hand-off itself costs a cycle, on top of each stage's
	// intrinsic one-tick latency.
	if ticks != 3 {
		t.Fatalf("expected the 2-stage chain to take 3 ticks, took %d", ticks)
	}
	if got := chain.PopOutput(); got != 7 {
		t.Fatalf("got %d, want 7", got)
	}
}

func TestConnectPropagatesThroughNestedChain(t *testing.T) {
	a := NewDoubleBuffer[int]()
	b := NewDoubleBuffer[int]()
	c := NewDoubleBuffer[int]()
	chain := Connect(Connect(a, b), c)

	chain.PushInput(7)
	ticks := 0
	for !chain.HasOutput() {
		chain.Tick()
		ticks++
		if ticks > 20 {
			t.Fatal("chain never produced output")
		}
	}
	if got := chain.PopOutput(); got != 7 {
		t.Fatalf("got %d, want 7", got)
	}
	if chain.HasOutput() {
		t.Fatal("expected output queue to be drained by PopOutput")
	}
}

func TestConnectWithCostDelaysVisibility(t *testing.T) {
	a := NewDoubleBuffer[int]()
	b := NewDoubleBuffer[int]()
	const cost = 3
	chain := ConnectWithCost[int, int, int](a, b, func(_, _ any) int64 { return cost })

	chain.PushInput(5)

	ticks := 0
	for !chain.HasOutput() {
		chain.Tick()
		ticks++
		if ticks > 20 {
			t.Fatal("chain never produced output")
		}
	}
	// 1 tick for a's own latch + 1 tick to grab the item and install the
	// cost countdown + `cost` ticks held + 1 tick for b's own latch.
	if want := 1 + 1 + cost + 1; ticks != want {
		t.Fatalf("expected %d ticks, got %d", want, ticks)
	}
	if got := chain.PopOutput(); got != 5 {
		t.Fatalf("got %d, want 5", got)
	}
}

func TestConnectWithCostConsultsCostOncePerItem(t *testing.T) {
	a := NewDoubleBuffer[int]()
	b := NewDoubleBuffer[int]()
	calls := 0
	chain := ConnectWithCost[int, int, int](a, b, func(_, _ any) int64 {
		calls++
		return 2
	})

	chain.PushInput(1)
	for i := 0; i < 10 && !chain.HasOutput(); i++ {
		chain.Tick()
	}
	if calls != 1 {
		t.Fatalf("expected the cost function to be consulted exactly once per item, got %d calls", calls)
	}
}

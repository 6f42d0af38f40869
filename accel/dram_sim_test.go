package accel

import "testing"

// TestFixedLatencyDRAM_CompletesAfterLatencyTicks checks the reference
// DRAMSimulator's basic contract: a sent request becomes retrievable
// exactly `latency` ticks later, and not before.
func TestFixedLatencyDRAM_CompletesAfterLatencyTicks(t *testing.T) {
	const latency = 3
	d := NewFixedLatencyDRAM(latency, 4)
	if !d.Available(0, false) {
		t.Fatal("expected an empty simulator to accept a request")
	}
	d.Send(64, false)

	for i := 0; i < latency; i++ {
		if d.RetAvailable() {
			t.Fatalf("tick %d: request completed early", i)
		}
		d.Tick()
	}
	if !d.RetAvailable() {
		t.Fatal("expected the request to be retrievable after latency ticks")
	}
	if got := d.Pop(); got != 64 {
		t.Fatalf("Pop() = %d, want 64", got)
	}
	if d.RetAvailable() {
		t.Fatal("expected no further completions after draining the one request")
	}
}

// TestFixedLatencyDRAM_RejectsBeyondBandwidth checks that Available
// reports false once bandwidth in-flight requests are outstanding, and
// true again once those requests have completed (independent of
// whether they've been popped).
func TestFixedLatencyDRAM_RejectsBeyondBandwidth(t *testing.T) {
	d := NewFixedLatencyDRAM(5, 2)
	d.Send(0, false)
	d.Send(64, false)
	if d.Available(128, false) {
		t.Fatal("expected the simulator to reject a third in-flight request at bandwidth 2")
	}
	for i := 0; i < 5; i++ {
		d.Tick()
	}
	if !d.Available(128, false) {
		t.Fatal("expected capacity to free up once both requests completed")
	}
}

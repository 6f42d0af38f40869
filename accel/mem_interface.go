package accel

import (
	"fmt"

	"github.com/gcnsim/gcnsim/features"
)

const dramAlignBytes = 64

// SparseReadAddresses builds the 64-byte-aligned address set a Sparse or
// Mixed mode tile's feature rows occupy: node n's row spans
// [start_addrs[n], start_addrs[n+1]), and the schema requests one address
// per 64-byte stride covering that span, rounding the first address down
// to the alignment boundary.
func SparseReadAddresses(nf *features.NodeFeatures, startNode, endNode int) []uint64 {
	var addrs []uint64
	for n := startNode; n < endNode; n++ {
		start := nf.StartAddr(n) / dramAlignBytes * dramAlignBytes
		end := nf.StartAddr(n) + nf.RowByteLen(n)
		for a := start; a < end; a += dramAlignBytes {
			addrs = append(addrs, a)
		}
	}
	return addrs
}

// DenseReadAddresses builds the 64-byte-aligned address set a Dense mode
// tile occupies: the base address encodes the layer in its high bits
// (layer_id * 2^32) so that distinct layers never alias in the simulated
// address space, offset by the tile's starting row times its row width,
// iterated in 64-byte strides up to the tile's end row.
func DenseReadAddresses(layerID, startInputIndex, endInputIndex, inputNodeDim int) []uint64 {
	base := uint64(layerID)<<32 + uint64(startInputIndex*inputNodeDim*4)
	base = base / dramAlignBytes * dramAlignBytes
	end := uint64(layerID)<<32 + uint64(endInputIndex*inputNodeDim*4)
	var addrs []uint64
	for a := base; a < end; a += dramAlignBytes {
		addrs = append(addrs, a)
	}
	return addrs
}

// DRAMSimulator is the narrow interface the memory-interface stage
// drives; a real binding to a cycle-accurate DRAM timing model need
// only implement these four methods plus Tick.
type DRAMSimulator interface {
	// Available reports whether the simulator can accept one more
	// request for addr this cycle.
	Available(addr uint64, isWrite bool) bool
	// Send issues one request for addr.
	Send(addr uint64, isWrite bool)
	// RetAvailable reports whether a completed read is ready to be
	// popped.
	RetAvailable() bool
	// Pop returns the address of the next completed read.
	Pop() uint64
	// Tick advances the simulator's own internal timing model by one
	// cycle.
	Tick()
}

// MemRequest is the memory-interface stage's input: the set of
// addresses a window's data requires, all must be 64-byte aligned.
type MemRequest struct {
	Window  *InputWindow
	AddrVec []uint64
}

type inflightMemReq struct {
	window    *InputWindow
	isWrite   bool
	remaining []uint64
	receiving map[uint64]struct{}
	done      bool
}

// MemInterface coalesces in-flight read requests against a DRAM
// simulator and conforms to the pipeline Stage protocol: it accepts
// MemRequest tiles and emits the carried InputWindow once every address
// has been serviced.
type MemInterface struct {
	inputQueue  *MemRequest
	outputQueue *InputWindow

	mem                 DRAMSimulator
	sendQueue           []*inflightMemReq
	currentInflightAddr map[uint64]struct{}
	sendSize            int
	isWrite             bool
}

// NewMemInterface builds a stage bound to mem, admitting up to sendSize
// concurrent requests, configured for either the read or write path.
func NewMemInterface(mem DRAMSimulator, sendSize int, isWrite bool) *MemInterface {
	return &MemInterface{
		mem:                 mem,
		currentInflightAddr: make(map[uint64]struct{}),
		sendSize:            sendSize,
		isWrite:             isWrite,
	}
}

func (m *MemInterface) CanAcceptInput() bool { return m.inputQueue == nil }

func (m *MemInterface) HasOutput() bool { return m.outputQueue != nil }

func (m *MemInterface) PushInput(req *MemRequest) { m.inputQueue = req }

func (m *MemInterface) PopOutput() *InputWindow {
	out := m.outputQueue
	m.outputQueue = nil
	return out
}

func (m *MemInterface) PeekInputInfo() any { return nil }

func (m *MemInterface) PeekOutputInfo() any { return m.outputQueue }

// Tick runs one cycle of: admission, completed-request hand-off,
// address issue (coalescing reads against in-flight addresses, never
// coalescing writes), completion drain, and the DRAM simulator's own
// tick.
func (m *MemInterface) Tick() {
	if len(m.sendQueue) < m.sendSize && m.inputQueue != nil {
		req := m.inputQueue
		m.inputQueue = nil
		m.sendQueue = append(m.sendQueue, &inflightMemReq{
			window:    req.Window,
			isWrite:   m.isWrite,
			remaining: append([]uint64(nil), req.AddrVec...),
			receiving: make(map[uint64]struct{}),
		})
	}

	if m.outputQueue == nil && len(m.sendQueue) > 0 && m.sendQueue[0].done {
		m.outputQueue = m.sendQueue[0].window
		m.sendQueue = m.sendQueue[1:]
	}

	if len(m.sendQueue) > 0 {
		m.issue(m.sendQueue[0])
	}

	for m.mem.RetAvailable() {
		addr := m.mem.Pop()
		delete(m.currentInflightAddr, addr)
		for _, req := range m.sendQueue {
			if _, ok := req.receiving[addr]; ok {
				delete(req.receiving, addr)
				if len(req.receiving) == 0 && len(req.remaining) == 0 {
					req.done = true
				}
			}
		}
	}

	if len(m.sendQueue) > 0 {
		req := m.sendQueue[0]
		if len(req.remaining) == 0 && len(req.receiving) == 0 {
			req.done = true
		}
	}

	m.mem.Tick()
}

// issue tries to issue as many of req's remaining addresses as the DRAM
// simulator will accept this cycle, popping from the back of remaining
// in either case. Writes never coalesce and never wait for a response;
// reads coalesce against any address already in flight from any request
// and wait for that address's eventual completion.
func (m *MemInterface) issue(req *inflightMemReq) {
	if req.isWrite {
		for len(req.remaining) > 0 {
			addr := req.remaining[len(req.remaining)-1]
			if !m.mem.Available(addr, true) {
				break
			}
			req.remaining = req.remaining[:len(req.remaining)-1]
			m.mem.Send(addr, true)
		}
		return
	}

	for len(req.remaining) > 0 {
		addr := req.remaining[len(req.remaining)-1]
		if addr%64 != 0 {
			panic(fmt.Sprintf("DRAM address %d is not 64-byte aligned", addr))
		}
		if _, inflight := m.currentInflightAddr[addr]; inflight {
			req.receiving[addr] = struct{}{}
			req.remaining = req.remaining[:len(req.remaining)-1]
			continue
		}
		if !m.mem.Available(addr, false) {
			break
		}
		m.currentInflightAddr[addr] = struct{}{}
		req.receiving[addr] = struct{}{}
		req.remaining = req.remaining[:len(req.remaining)-1]
		m.mem.Send(addr, false)
	}
}
